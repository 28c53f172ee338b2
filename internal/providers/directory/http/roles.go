package http

import (
	"context"
	"net/http"

	"github.com/kcutil/otpsweep/directory"
)

func (g *KeycloakGateway) UserRealmRoles(ctx context.Context, userID string) ([]directory.Role, error) {
	endpoint := g.adminPath("users", userID, "role-mappings", "realm")
	body, err := g.execute(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}

	var roles []directory.Role
	if err := decodeInto(body, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (g *KeycloakGateway) RoleByName(ctx context.Context, name string) (directory.Role, error) {
	body, err := g.execute(ctx, http.MethodGet, g.adminPath("roles", name), nil, nil)
	if err != nil {
		return directory.Role{}, err
	}

	var role directory.Role
	if err := decodeInto(body, &role); err != nil {
		return directory.Role{}, err
	}
	return role, nil
}

func (g *KeycloakGateway) RoleUsers(ctx context.Context, roleName string) ([]directory.User, error) {
	body, err := g.execute(ctx, http.MethodGet, g.adminPath("roles", roleName, "users"), nil, nil)
	if err != nil {
		return nil, err
	}

	var users []directory.User
	if err := decodeInto(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}
