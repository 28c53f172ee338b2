package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/kcutil/otpsweep/debugctx"
)

func (g *KeycloakGateway) execute(
	ctx context.Context,
	method string,
	endpointPath string,
	query map[string]string,
	body any,
) ([]byte, error) {
	request, err := g.newRequest(ctx, method, endpointPath, query, body)
	if err != nil {
		return nil, err
	}

	response, err := g.doRequest(ctx, "admin", request)
	if err != nil {
		return nil, transportError("admin request failed", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, transportError("failed to read admin response body", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return nil, classifyStatusError(response.StatusCode, responseBody)
	}
	return responseBody, nil
}

func (g *KeycloakGateway) newRequest(
	ctx context.Context,
	method string,
	endpointPath string,
	query map[string]string,
	body any,
) (*http.Request, error) {
	targetURL := g.resolveRequestURL(endpointPath, query)

	var bodyReader io.Reader
	hasBody := body != nil
	if hasBody {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, internalError("failed to encode request body", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, targetURL, bodyReader)
	if err != nil {
		return nil, internalError("failed to create admin request", err)
	}

	request.Header.Set("Accept", defaultMediaType)
	if hasBody {
		request.Header.Set("Content-Type", defaultMediaType)
	}

	if err := g.applyAuth(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (g *KeycloakGateway) resolveRequestURL(endpointPath string, query map[string]string) string {
	target := *g.baseURL
	setEscapedPath(&target, joinBaseAndRequestPath(g.baseURL.EscapedPath(), endpointPath))

	values := target.Query()
	if len(query) > 0 {
		keys := make([]string, 0, len(query))
		for key := range query {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			values.Set(key, query[key])
		}
	}
	target.RawQuery = values.Encode()

	return target.String()
}

func (g *KeycloakGateway) doRequest(ctx context.Context, purpose string, request *http.Request) (*http.Response, error) {
	debugctx.Printf(
		ctx,
		"http request purpose=%q method=%q url=%q",
		purpose,
		request.Method,
		redactURLForDebug(request.URL),
	)

	response, err := g.client.Do(request)
	if err != nil {
		debugctx.Printf(
			ctx,
			"http request failed purpose=%q method=%q url=%q error=%v",
			purpose,
			request.Method,
			redactURLForDebug(request.URL),
			err,
		)
		return nil, err
	}

	debugctx.Printf(
		ctx,
		"http response purpose=%q method=%q url=%q status=%d",
		purpose,
		request.Method,
		redactURLForDebug(request.URL),
		response.StatusCode,
	)
	return response, nil
}

// setEscapedPath installs an already percent-escaped path on target.
// Assigning the escaped form to URL.Path alone would make URL.String
// escape it again, mangling segments such as role names with spaces.
func setEscapedPath(target *url.URL, escaped string) {
	target.RawPath = escaped
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		target.Path = unescaped
	} else {
		target.Path = escaped
	}
}

func joinBaseAndRequestPath(basePath string, requestPath string) string {
	normalizedBase := basePath
	if normalizedBase == "" {
		normalizedBase = "/"
	}

	if requestPath == "" || requestPath == "/" {
		return normalizedBase
	}

	joined := path.Join(normalizedBase, strings.TrimPrefix(requestPath, "/"))
	if !strings.HasPrefix(joined, "/") {
		return "/" + joined
	}
	return joined
}

// redactURLForDebug blanks query values so credentials and search terms
// never land in debug output.
func redactURLForDebug(value *url.URL) string {
	if value == nil {
		return ""
	}

	cloned := *value
	cloned.User = nil

	query := cloned.Query()
	if len(query) > 0 {
		for key, values := range query {
			redacted := make([]string, len(values))
			for idx := range values {
				redacted[idx] = "<redacted>"
			}
			query[key] = redacted
		}
		cloned.RawQuery = query.Encode()
	}

	return cloned.String()
}
