package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kcutil/otpsweep/config"
)

const tokenEndpointPath = "/realms/" + config.TokenRealm + "/protocol/openid-connect/token"

// AccessToken exchanges the operator credentials for a bearer token on
// first call and hands out the cached token afterwards. The token is never
// refreshed; a sweep is expected to finish within its lifetime.
func (g *KeycloakGateway) AccessToken(ctx context.Context) (string, error) {
	g.tokenMu.Lock()
	defer g.tokenMu.Unlock()

	if g.accessToken != "" {
		return g.accessToken, nil
	}

	token, err := g.requestToken(ctx)
	if err != nil {
		return "", err
	}
	g.accessToken = token
	return token, nil
}

func (g *KeycloakGateway) requestToken(ctx context.Context) (string, error) {
	formValues := url.Values{}
	formValues.Set("username", g.username)
	formValues.Set("password", g.password)
	formValues.Set("grant_type", "password")
	formValues.Set("client_id", config.AdminClientID)

	target := *g.baseURL
	setEscapedPath(&target, joinBaseAndRequestPath(g.baseURL.EscapedPath(), tokenEndpointPath))
	target.RawQuery = ""

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		target.String(),
		strings.NewReader(formValues.Encode()),
	)
	if err != nil {
		return "", internalError("failed to create token request", err)
	}
	request.Header.Set("Accept", defaultMediaType)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := g.doRequest(ctx, "token", request)
	if err != nil {
		return "", authError("token request failed", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return "", authError("failed to read token response", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return "", authError(
			fmt.Sprintf("token request failed with status %d: %s", response.StatusCode, summarizeBody(body)),
			nil,
		)
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResponse); err != nil {
		return "", authError("token response is not valid JSON", err)
	}
	if strings.TrimSpace(tokenResponse.AccessToken) == "" {
		return "", authError("token response does not include access_token", nil)
	}

	return tokenResponse.AccessToken, nil
}

func (g *KeycloakGateway) applyAuth(ctx context.Context, request *http.Request) error {
	token, err := g.AccessToken(ctx)
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+token)
	return nil
}
