package http

import (
	"context"
	"net/http"

	"github.com/kcutil/otpsweep/directory"
)

func (g *KeycloakGateway) SearchGroups(ctx context.Context, name string) ([]directory.Group, error) {
	query := map[string]string{"search": name}
	body, err := g.execute(ctx, http.MethodGet, g.adminPath("groups"), query, nil)
	if err != nil {
		return nil, err
	}

	var groups []directory.Group
	if err := decodeInto(body, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (g *KeycloakGateway) GroupMembers(ctx context.Context, groupID string) ([]directory.User, error) {
	body, err := g.execute(ctx, http.MethodGet, g.adminPath("groups", groupID, "members"), nil, nil)
	if err != nil {
		return nil, err
	}

	var members []directory.User
	if err := decodeInto(body, &members); err != nil {
		return nil, err
	}
	return members, nil
}
