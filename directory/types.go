// Package directory models the identity provider's administrative surface:
// users, groups, and realm roles, plus the queries and the single mutation
// the reconciliation pipeline needs.
package directory

import "context"

// User is the schema-typed projection of a Keycloak user representation.
// Only the fields this tool reads are decoded; the update path never sends
// anything besides the required-action list, so the remaining fields cannot
// be clobbered by a whole-record replacement.
type User struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email,omitempty"`
	FirstName       string   `json:"firstName,omitempty"`
	LastName        string   `json:"lastName,omitempty"`
	Enabled         bool     `json:"enabled,omitempty"`
	RequiredActions []string `json:"requiredActions,omitempty"`
}

// DisplayName is the identifier used in narration and failure reports.
func (u User) DisplayName() string {
	switch {
	case u.Username != "":
		return u.Username
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Display: u.DisplayName()}
}

// UserRef is one member of the target set: just enough to fetch the account
// again and to report on it.
type UserRef struct {
	ID      string
	Display string
}

type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Service is the administrative API consumed by the resolver and the
// reconciliation driver. Implementations authenticate on first use and
// reuse the same bearer token for the whole run.
type Service interface {
	SearchGroups(ctx context.Context, name string) ([]Group, error)
	GroupMembers(ctx context.Context, groupID string) ([]User, error)

	ListUsers(ctx context.Context) ([]User, error)
	CountUsers(ctx context.Context) (int, error)
	PageUsers(ctx context.Context, first, max int) ([]User, error)

	UserRealmRoles(ctx context.Context, userID string) ([]Role, error)
	RoleByName(ctx context.Context, name string) (Role, error)
	RoleUsers(ctx context.Context, roleName string) ([]User, error)

	GetUser(ctx context.Context, userID string) (User, error)
	UpdateRequiredActions(ctx context.Context, userID string, actions []string) error
}

// AccessTokenProvider is implemented by gateways that authenticate lazily.
// Callers can force the credential exchange up front so a bad credential
// fails before any directory traffic.
type AccessTokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}
