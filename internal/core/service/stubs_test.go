package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pressroom/auth-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	seq     int
	findErr error // if set, every lookup returns this error
	skipPre bool  // if set, FindByUsernameOrEmail always misses (simulates a racing signup)
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) put(u *domain.User) *domain.User {
	r.seq++
	stored := cloneUser(u)
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.byID[stored.ID] = stored
	return cloneUser(stored)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByUsernameOrEmail mirrors the Mongo $or query: first match in insertion order.
func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.skipPre {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.ordered() {
		if u.Username == username || u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create enforces the same uniqueness the unique indexes give the real store.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	return r.put(user), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.User
	for _, u := range r.ordered() {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) ordered() []*domain.User {
	users := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// ---------------------------------------------------------------------------
// Hasher and token stubs
// ---------------------------------------------------------------------------

type stubHasher struct {
	hashErr error
}

func (h *stubHasher) Hash(_ context.Context, plaintext string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plaintext, nil
}

func (h *stubHasher) Compare(_ context.Context, hash, plaintext string) (bool, error) {
	if !strings.HasPrefix(hash, "hashed:") {
		return false, errors.New("malformed hash")
	}
	return hash == "hashed:"+plaintext, nil
}

type stubTokens struct {
	issued []string
}

func (t *stubTokens) Issue(userID string) (string, error) {
	t.issued = append(t.issued, userID)
	return "token-for-" + userID, nil
}

func (t *stubTokens) Verify(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "token-for-")
	if !ok {
		return "", domain.ErrInvalidToken
	}
	return id, nil
}
