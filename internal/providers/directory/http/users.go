package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kcutil/otpsweep/directory"
)

func (g *KeycloakGateway) ListUsers(ctx context.Context) ([]directory.User, error) {
	body, err := g.execute(ctx, http.MethodGet, g.adminPath("users"), nil, nil)
	if err != nil {
		return nil, err
	}

	var users []directory.User
	if err := decodeInto(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers decodes the count endpoint's bare integer body.
func (g *KeycloakGateway) CountUsers(ctx context.Context) (int, error) {
	body, err := g.execute(ctx, http.MethodGet, g.adminPath("users", "count"), nil, nil)
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, internalError("user count response is not an integer", err)
	}
	return count, nil
}

func (g *KeycloakGateway) PageUsers(ctx context.Context, first, max int) ([]directory.User, error) {
	query := map[string]string{
		"first": strconv.Itoa(first),
		"max":   strconv.Itoa(max),
	}
	body, err := g.execute(ctx, http.MethodGet, g.adminPath("users"), query, nil)
	if err != nil {
		return nil, err
	}

	var users []directory.User
	if err := decodeInto(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (g *KeycloakGateway) GetUser(ctx context.Context, userID string) (directory.User, error) {
	body, err := g.execute(ctx, http.MethodGet, g.adminPath("users", userID), nil, nil)
	if err != nil {
		return directory.User{}, err
	}

	var user directory.User
	if err := decodeInto(body, &user); err != nil {
		return directory.User{}, err
	}
	return user, nil
}

// UpdateRequiredActions replaces the account's required-action list and
// nothing else. Keycloak applies the user update as a whole-record merge of
// the provided fields, so the payload is restricted to the one field this
// tool owns. A non-empty response body means the update was not accepted.
func (g *KeycloakGateway) UpdateRequiredActions(ctx context.Context, userID string, requiredActions []string) error {
	if requiredActions == nil {
		requiredActions = []string{}
	}
	payload := struct {
		RequiredActions []string `json:"requiredActions"`
	}{RequiredActions: requiredActions}

	body, err := g.execute(ctx, http.MethodPut, g.adminPath("users", userID), nil, payload)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) > 0 {
		return internalError(fmt.Sprintf("update was not accepted: %s", summarizeBody(body)), nil)
	}
	return nil
}
