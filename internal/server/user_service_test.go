package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya/resume-builder/internal/config"
	"github.com/priya/resume-builder/internal/db"
	"github.com/priya/resume-builder/internal/types"
)

// fakeDBClient keeps users in memory for service tests.
type fakeDBClient struct {
	users map[uuid.UUID]*db.User
}

func newFakeDBClient() *fakeDBClient {
	return &fakeDBClient{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeDBClient) CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, Phone: phone, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeDBClient) GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error) {
	return f.users[userID], nil
}

func (f *fakeDBClient) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDBClient) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(ctx, email)
	return u != nil, nil
}

func (f *fakeDBClient) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if u, ok := f.users[userID]; ok {
		u.PasswordHash = passwordHash
		u.PasswordSet = true
	}
	return nil
}

func newTestUserService() (*UserService, *fakeDBClient) {
	fake := newFakeDBClient()
	return NewUserService(fake, &config.PasswordConfig{BcryptCost: 10}), fake
}

func registerReq() *types.CreateUserRequest {
	return &types.CreateUserRequest{
		Name:     "Priya Raman",
		Email:    "priya@example.com",
		Password: "s3cure-password",
	}
}

func TestRegister(t *testing.T) {
	svc, fake := newTestUserService()

	user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, "Priya Raman", user.Name)
	assert.Equal(t, "priya@example.com", user.Email)

	stored := fake.users[user.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.PasswordSet)
	assert.NotEqual(t, "s3cure-password", stored.PasswordHash, "password must be stored hashed")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	var exists *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "priya@example.com", exists.Email)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	user, err := svc.Login(ctx, &types.LoginRequest{Email: "priya@example.com", Password: "s3cure-password"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	cases := []struct {
		name string
		req  *types.LoginRequest
	}{
		{"wrong password", &types.LoginRequest{Email: "priya@example.com", Password: "wrong"}},
		{"unknown email", &types.LoginRequest{Email: "nobody@example.com", Password: "s3cure-password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.req)
			var invalid *ErrInvalidCredentials
			assert.ErrorAs(t, err, &invalid, "both failures must look identical to the caller")
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "s3cure-password", "new-password"))

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "priya@example.com", Password: "new-password"})
	assert.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "priya@example.com", Password: "s3cure-password"})
	assert.Error(t, err, "the old password must stop working")
}

func TestUpdatePassword_WrongCurrent(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "not-my-password", "new-password")
	var mismatch *ErrPasswordMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestUpdatePassword_UnknownUser(t *testing.T) {
	svc, _ := newTestUserService()

	err := svc.UpdatePassword(context.Background(), uuid.New(), "a", "b")
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}
