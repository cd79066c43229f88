package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/asre459/menna/internal/events"
	"github.com/asre459/menna/internal/models"
)

// fakeUserStore is an in-memory UserStore for exercising the service rules
// without a database.
type fakeUserStore struct {
	users map[bson.ObjectID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[bson.ObjectID]*models.User)}
	for _, u := range users {
		store.users[u.ID] = u
	}
	return store
}

func (s *fakeUserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Insert(ctx context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindAll(ctx context.Context, page, limit int) ([]*models.User, error) {
	users := []*models.User{}
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *fakeUserStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func newTestUserService(t *testing.T, store UserStore) *UserService {
	t.Helper()

	publisher, err := events.NewEventPublisher("")
	if err != nil {
		t.Fatalf("NewEventPublisher: %v", err)
	}
	return NewUserService(store, nil, publisher)
}

func storedUser(username, role string) *models.User {
	return &models.User{
		ID:       bson.NewObjectID(),
		Username: username,
		Role:     role,
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "s3cret-pass" {
		t.Fatal("Password was not hashed")
	}
	if !CheckPassword("s3cret-pass", hash) {
		t.Error("Expected correct password to verify")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Error("Expected wrong password to fail")
	}
	if CheckPassword("s3cret-pass", "not-a-bcrypt-hash") {
		t.Error("Expected garbage hash to fail")
	}
}

func TestDeleteRejectsSelf(t *testing.T) {
	self := storedUser("admin", models.RoleAdmin)
	us := newTestUserService(t, newFakeUserStore(self))

	err := us.Delete(context.Background(), self.ID.Hex(), self.ID)
	if !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("Expected ErrSelfDelete, got %v", err)
	}
}

func TestDeleteRejectsLastAdmin(t *testing.T) {
	lastAdmin := storedUser("admin", models.RoleAdmin)
	editor := storedUser("editor", models.RoleEditor)
	store := newFakeUserStore(lastAdmin, editor)
	us := newTestUserService(t, store)

	err := us.Delete(context.Background(), editor.ID.Hex(), lastAdmin.ID)
	if !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("Expected ErrLastAdmin, got %v", err)
	}
	if store.users[lastAdmin.ID] == nil {
		t.Error("Last admin must not be removed")
	}
}

func TestDeleteAllowsAdminWhenAnotherRemains(t *testing.T) {
	first := storedUser("first", models.RoleAdmin)
	second := storedUser("second", models.RoleAdmin)
	store := newFakeUserStore(first, second)
	us := newTestUserService(t, store)

	if err := us.Delete(context.Background(), first.ID.Hex(), second.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.users[second.ID] != nil {
		t.Error("Expected the deleted admin to be removed")
	}
	if store.users[first.ID] == nil {
		t.Error("Expected the remaining admin to survive")
	}
}

func TestDeleteMissingUserReturnsNotFound(t *testing.T) {
	caller := storedUser("admin", models.RoleAdmin)
	us := newTestUserService(t, newFakeUserStore(caller))

	err := us.Delete(context.Background(), caller.ID.Hex(), bson.NewObjectID())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	existing := storedUser("taken", models.RoleEditor)
	store := newFakeUserStore(existing)
	us := newTestUserService(t, store)

	_, err := us.Create(context.Background(), "taken", "some-password", models.RoleEditor)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Expected ErrUsernameTaken, got %v", err)
	}
	if got, _ := store.Count(context.Background()); got != 1 {
		t.Errorf("Expected existing record untouched, have %d users", got)
	}
	if store.users[existing.ID].ID != existing.ID {
		t.Error("Expected the original record to survive")
	}
}

func TestCreateAndRegisterRoleDefaults(t *testing.T) {
	testCases := []struct {
		name     string
		role     string
		register bool
		wantRole string
		wantErr  error
	}{
		{"create defaults to editor", "", false, models.RoleEditor, nil},
		{"register defaults to admin", "", true, models.RoleAdmin, nil},
		{"explicit admin", "admin", false, models.RoleAdmin, nil},
		{"unknown role", "superuser", false, "", ErrInvalidRole},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			us := newTestUserService(t, newFakeUserStore())

			var user *models.User
			var err error
			if tc.register {
				user, err = us.Register(context.Background(), "newuser", "some-password", tc.role)
			} else {
				user, err = us.Create(context.Background(), "newuser", "some-password", tc.role)
			}

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil && user.Role != tc.wantRole {
				t.Errorf("Expected role %q, got %q", tc.wantRole, user.Role)
			}
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	hash, err := HashPassword("right-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	known := storedUser("known", models.RoleAdmin)
	known.PasswordHash = hash
	us := newTestUserService(t, newFakeUserStore(known))

	_, wrongPassErr := us.Login(context.Background(), "known", "wrong-password")
	_, unknownUserErr := us.Login(context.Background(), "nobody", "whatever")

	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPassErr)
	}
	if !errors.Is(unknownUserErr, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown username, got %v", unknownUserErr)
	}

	user, err := us.Login(context.Background(), "known", "right-password")
	if err != nil {
		t.Fatalf("Login with correct credentials: %v", err)
	}
	if user.Username != "known" {
		t.Errorf("Expected user known, got %s", user.Username)
	}
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("Expected different hashes for repeated hashing of the same password")
	}
}
