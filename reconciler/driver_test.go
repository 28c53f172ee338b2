package reconciler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/faults"
)

// memoryDirectory is an in-memory directory.Service covering only the calls
// the driver makes.
type memoryDirectory struct {
	mu      sync.Mutex
	users   map[string]directory.User
	updates map[string][][]string
	failOn  map[string]error
}

func newMemoryDirectory(users ...directory.User) *memoryDirectory {
	dir := &memoryDirectory{
		users:   make(map[string]directory.User, len(users)),
		updates: make(map[string][][]string),
		failOn:  make(map[string]error),
	}
	for _, user := range users {
		dir.users[user.ID] = user
	}
	return dir
}

func (m *memoryDirectory) GetUser(_ context.Context, userID string) (directory.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return directory.User{}, faults.NewTypedError(faults.NotFoundError, fmt.Sprintf("user %s not found", userID), nil)
	}
	return user, nil
}

func (m *memoryDirectory) UpdateRequiredActions(_ context.Context, userID string, requiredActions []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failOn[userID]; ok {
		return err
	}
	user := m.users[userID]
	user.RequiredActions = requiredActions
	m.users[userID] = user
	m.updates[userID] = append(m.updates[userID], requiredActions)
	return nil
}

func (m *memoryDirectory) SearchGroups(context.Context, string) ([]directory.Group, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryDirectory) GroupMembers(context.Context, string) ([]directory.User, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryDirectory) ListUsers(context.Context) ([]directory.User, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryDirectory) CountUsers(context.Context) (int, error) {
	return 0, errors.New("not implemented")
}

func (m *memoryDirectory) PageUsers(context.Context, int, int) ([]directory.User, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryDirectory) UserRealmRoles(context.Context, string) ([]directory.Role, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryDirectory) RoleByName(context.Context, string) (directory.Role, error) {
	return directory.Role{}, errors.New("not implemented")
}

func (m *memoryDirectory) RoleUsers(context.Context, string) ([]directory.User, error) {
	return nil, errors.New("not implemented")
}

func refs(users ...directory.User) []directory.UserRef {
	out := make([]directory.UserRef, 0, len(users))
	for _, user := range users {
		out = append(out, user.Ref())
	}
	return out
}

func TestRunGroupScenario(t *testing.T) {
	t.Parallel()

	alice := directory.User{ID: "u1", Username: "alice"}
	bob := directory.User{ID: "u2", Username: "bob", RequiredActions: []string{"VERIFY_EMAIL", "CONFIGURE_TOTP"}}
	carol := directory.User{ID: "u3", Username: "carol", RequiredActions: []string{"UPDATE_PASSWORD"}}
	dir := newMemoryDirectory(alice, bob, carol)

	narration := &bytes.Buffer{}
	driver := &Driver{Directory: dir, Action: "CONFIGURE_TOTP", Out: narration}
	summary := driver.Run(context.Background(), refs(alice, bob, carol))

	if summary.Targeted != 3 || summary.Applied != 2 || summary.Skipped != 1 || summary.Failed() != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	// The already-compliant account must not be written at all.
	if len(dir.updates["u2"]) != 0 {
		t.Fatalf("unexpected write to compliant user: %v", dir.updates["u2"])
	}
	if got, want := dir.users["u2"].RequiredActions, bob.RequiredActions; !reflect.DeepEqual(got, want) {
		t.Fatalf("compliant user's actions changed: got %v want %v", got, want)
	}

	if got, want := dir.users["u1"].RequiredActions, []string{"CONFIGURE_TOTP"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected actions for alice: %v", got)
	}
	if got, want := dir.users["u3"].RequiredActions, []string{"UPDATE_PASSWORD", "CONFIGURE_TOTP"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("existing actions disturbed: %v", got)
	}

	if !strings.Contains(narration.String(), "user bob: required action CONFIGURE_TOTP already present") {
		t.Fatalf("missing skip narration: %q", narration.String())
	}
}

func TestRunIsolatesPartialFailure(t *testing.T) {
	t.Parallel()

	first := directory.User{ID: "u1", Username: "first"}
	second := directory.User{ID: "u2", Username: "second"}
	third := directory.User{ID: "u3", Username: "third"}
	dir := newMemoryDirectory(first, second, third)
	dir.failOn["u2"] = faults.NewTypedError(faults.InternalError, "update response was not empty", nil)

	driver := &Driver{Directory: dir, Action: "CONFIGURE_TOTP"}
	summary := driver.Run(context.Background(), refs(first, second, third))

	if summary.Applied != 2 {
		t.Fatalf("accounts after the failure were not attempted: %+v", summary)
	}
	if summary.Failed() != 1 {
		t.Fatalf("expected one failure, got %+v", summary.Failures)
	}
	failure := summary.Failures[0]
	if failure.Outcome != OutcomeUpdateFailed || failure.User.ID != "u2" {
		t.Fatalf("unexpected failure record: %+v", failure)
	}
	if len(dir.updates["u3"]) != 1 {
		t.Fatalf("third account was not updated after the failure")
	}
}

func TestRunRecordsVanishedAccounts(t *testing.T) {
	t.Parallel()

	present := directory.User{ID: "u1", Username: "present"}
	dir := newMemoryDirectory(present)

	driver := &Driver{Directory: dir, Action: "CONFIGURE_TOTP"}
	summary := driver.Run(context.Background(), []directory.UserRef{
		{ID: "gone", Display: "ghost"},
		present.Ref(),
	})

	if summary.Applied != 1 || summary.Failed() != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Failures[0].Outcome != OutcomeNotFound {
		t.Fatalf("expected not-found outcome, got %+v", summary.Failures[0])
	}
}

func TestRunDryRunNeverWrites(t *testing.T) {
	t.Parallel()

	pending := directory.User{ID: "u1", Username: "pending"}
	dir := newMemoryDirectory(pending)

	driver := &Driver{Directory: dir, Action: "CONFIGURE_TOTP", DryRun: true}
	summary := driver.Run(context.Background(), refs(pending))

	if summary.Applied != 1 {
		t.Fatalf("dry run must count would-be updates: %+v", summary)
	}
	if len(dir.updates) != 0 {
		t.Fatalf("dry run issued writes: %v", dir.updates)
	}
}

func TestRunParallelMatchesSequentialOutcome(t *testing.T) {
	t.Parallel()

	var users []directory.User
	for i := 0; i < 40; i++ {
		user := directory.User{ID: fmt.Sprintf("u%02d", i), Username: fmt.Sprintf("user%02d", i)}
		if i%4 == 0 {
			user.RequiredActions = []string{"CONFIGURE_TOTP"}
		}
		users = append(users, user)
	}
	dir := newMemoryDirectory(users...)

	driver := &Driver{Directory: dir, Action: "CONFIGURE_TOTP", Workers: 8}
	summary := driver.Run(context.Background(), refs(users...))

	if summary.Targeted != 40 || summary.Applied != 30 || summary.Skipped != 10 || summary.Failed() != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	summary := Summary{Targeted: 3, Applied: 2, Skipped: 1}
	buffer := &bytes.Buffer{}
	summary.WriteReport(buffer, "CONFIGURE_TOTP")

	report := buffer.String()
	if !strings.Contains(report, "3 targeted, 2 applied, 1 already compliant, 0 failed") {
		t.Fatalf("unexpected report: %q", report)
	}
	if !strings.Contains(report, "next sign-in") {
		t.Fatalf("missing enrollment note: %q", report)
	}
}
