package service

import (
	"context"
	"testing"
	"time"

	"github.com/AlyonaQA/ptm-server/internal/auth"
	dom "github.com/AlyonaQA/ptm-server/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo keeps users in a map, enforcing username uniqueness the way
// the database would.
type fakeUserRepo struct {
	byUsername map[string]dom.User
	createErr  error
	deleteOut  bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: map[string]dom.User{}, deleteOut: true}
}

func (f *fakeUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	if f.createErr != nil {
		return dom.User{}, f.createErr
	}
	if _, exists := f.byUsername[u.Username]; exists {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	f.byUsername[u.Username] = u
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleteOut, nil
}

func newUserService(repo *fakeUserRepo) *UserService {
	return NewUserService(repo, []byte("test-secret"), time.Hour)
}

func TestRegister_StoresSaltedHash(t *testing.T) {
	f := newFakeUserRepo()
	s := newUserService(f)

	u, err := s.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEmpty(t, u.Salt)
	require.NotEqual(t, []byte("pw1"), u.PasswordHash)
	require.True(t, auth.VerifyPassword("pw1", u.Salt, u.PasswordHash))
	require.False(t, auth.VerifyPassword("pw2", u.Salt, u.PasswordHash))
}

func TestRegister_DistinctSaltsPerUser(t *testing.T) {
	f := newFakeUserRepo()
	s := newUserService(f)

	a, err := s.Register(context.Background(), "alice", "same-pw")
	require.NoError(t, err)
	b, err := s.Register(context.Background(), "bob", "same-pw")
	require.NoError(t, err)
	require.NotEqual(t, a.Salt, b.Salt)
	require.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFakeUserRepo()
	s := newUserService(f)

	first, err := s.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "alice", "pw2")
	require.ErrorIs(t, err, ErrUsernameTaken)

	// first registration untouched
	stored := f.byUsername["alice"]
	require.Equal(t, first.ID, stored.ID)
	require.True(t, auth.VerifyPassword("pw1", stored.Salt, stored.PasswordHash))
}

func TestRegister_EmptyInput(t *testing.T) {
	s := newUserService(newFakeUserRepo())

	_, err := s.Register(context.Background(), "", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Register(context.Background(), "alice", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateCredentials(t *testing.T) {
	f := newFakeUserRepo()
	s := newUserService(f)

	_, err := s.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	u, err := s.ValidateCredentials(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	_, err = s.ValidateCredentials(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown user is indistinguishable from a wrong password
	_, err = s.ValidateCredentials(context.Background(), "nobody", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_IssuesVerifiableToken(t *testing.T) {
	f := newFakeUserRepo()
	s := newUserService(f)

	u, err := s.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	token, err := s.SignIn(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := auth.IdentityFromToken(token, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, u.ID, id.UserID)
	require.Equal(t, "alice", id.Username)
}

func TestSignIn_BadCredentials(t *testing.T) {
	s := newUserService(newFakeUserRepo())

	_, err := s.SignIn(context.Background(), "alice", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUser(t *testing.T) {
	f := newFakeUserRepo()
	s := newUserService(f)

	require.NoError(t, s.Delete(context.Background(), "u1"))

	f.deleteOut = false
	require.ErrorIs(t, s.Delete(context.Background(), "u1"), ErrNotFound)
}
