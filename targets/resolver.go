// Package targets resolves the immutable set of accounts a sweep will touch.
package targets

import (
	"context"
	"fmt"
	"io"

	"github.com/kcutil/otpsweep/config"
	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/faults"
)

// Resolver computes the target set before any mutation begins. Every
// strategy returns an ordered, de-duplicated list of account references.
type Resolver struct {
	Directory directory.Service

	// Out receives progress and warning narration. Nil discards it.
	Out io.Writer

	// PageSize bounds the paged role strategy. Zero means config.DefaultPageSize.
	PageSize int
}

// ByGroup resolves the members of a single group, found by name search.
// An empty search result is fatal. When the search matches several groups
// the first one wins; whether exact-name matching should be required
// instead is an open question, so the ambiguity is narrated rather than
// resolved.
func (r *Resolver) ByGroup(ctx context.Context, name string) ([]directory.UserRef, error) {
	groups, err := r.Directory.SearchGroups(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, notFoundError(fmt.Sprintf("group %q was not found", name), nil)
	}
	if len(groups) > 1 {
		r.printf("warning: group search %q matched %d groups, using %q", name, len(groups), groups[0].Name)
	}

	members, err := r.Directory.GroupMembers(ctx, groups[0].ID)
	if err != nil {
		return nil, err
	}
	return dedupe(members), nil
}

// Realm resolves every user of the realm in a single unpaginated call.
func (r *Resolver) Realm(ctx context.Context) ([]directory.UserRef, error) {
	users, err := r.Directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return dedupe(users), nil
}

// ByRolesPaged walks the whole user directory in fixed-size pages and keeps
// the users whose realm roles intersect roleNames (exact match). The total
// is taken from a count query before paging starts; drift between that
// count and the number of users actually seen is reported as a warning,
// never as a failure.
func (r *Resolver) ByRolesPaged(ctx context.Context, roleNames []string) ([]directory.UserRef, error) {
	total, err := r.Directory.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(roleNames))
	for _, name := range roleNames {
		wanted[name] = struct{}{}
	}

	size := r.pageSize()
	seenIDs := make(map[string]struct{})
	processed := 0
	var refs []directory.UserRef

	for first := 0; first < total; first += size {
		users, err := r.Directory.PageUsers(ctx, first, size)
		if err != nil {
			return nil, err
		}
		if len(users) == 0 {
			break
		}

		for _, user := range users {
			processed++
			roles, err := r.Directory.UserRealmRoles(ctx, user.ID)
			if err != nil {
				r.printf("warning: skipping %s: role lookup failed: %v", user.DisplayName(), err)
				continue
			}
			if !hasAnyRole(roles, wanted) {
				continue
			}
			if _, seen := seenIDs[user.ID]; seen {
				continue
			}
			seenIDs[user.ID] = struct{}{}
			refs = append(refs, user.Ref())
			r.printf("user %s holds a targeted role", user.DisplayName())
		}
	}

	if processed != total {
		r.printf("warning: user count changed during resolution: expected %d, processed %d", total, processed)
	}
	return refs, nil
}

// ByRoles resolves each requested role to its member list directly. A role
// name that does not exist is skipped with a warning. Users holding more
// than one targeted role appear once.
func (r *Resolver) ByRoles(ctx context.Context, roleNames []string) ([]directory.UserRef, error) {
	seenIDs := make(map[string]struct{})
	var refs []directory.UserRef

	for _, name := range roleNames {
		role, err := r.Directory.RoleByName(ctx, name)
		if faults.IsCategory(err, faults.NotFoundError) {
			r.printf("warning: role %q does not exist, skipping", name)
			continue
		}
		if err != nil {
			return nil, err
		}

		users, err := r.Directory.RoleUsers(ctx, role.Name)
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			if _, seen := seenIDs[user.ID]; seen {
				continue
			}
			seenIDs[user.ID] = struct{}{}
			refs = append(refs, user.Ref())
		}
	}
	return refs, nil
}

func (r *Resolver) pageSize() int {
	if r.PageSize <= 0 {
		return config.DefaultPageSize
	}
	return r.PageSize
}

func (r *Resolver) printf(format string, args ...any) {
	if r.Out == nil {
		return
	}
	_, _ = fmt.Fprintf(r.Out, format+"\n", args...)
}

func dedupe(users []directory.User) []directory.UserRef {
	seenIDs := make(map[string]struct{}, len(users))
	refs := make([]directory.UserRef, 0, len(users))
	for _, user := range users {
		if _, seen := seenIDs[user.ID]; seen {
			continue
		}
		seenIDs[user.ID] = struct{}{}
		refs = append(refs, user.Ref())
	}
	return refs
}

func hasAnyRole(roles []directory.Role, wanted map[string]struct{}) bool {
	for _, role := range roles {
		if _, ok := wanted[role.Name]; ok {
			return true
		}
	}
	return false
}

func notFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.NotFoundError, message, cause)
}
