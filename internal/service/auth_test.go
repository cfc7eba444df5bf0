package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_SuccessAndConflict(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: testRepo(t)}
	ctx := context.Background()

	req := RegisterRequest{
		FullName: "Maria Lopez",
		Email:    "maria@example.com",
		Password: "Secret123",
		Phone:    "555-0101",
		Address:  "Calle 10 #5",
	}

	user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "Maria Lopez", user.FullName)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "Secret123", user.PasswordHash)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: testRepo(t)}
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{name: "empty name", req: RegisterRequest{Email: "a@b.com", Password: "Secret123"}},
		{name: "empty email", req: RegisterRequest{FullName: "A", Password: "Secret123"}},
		{name: "empty password", req: RegisterRequest{FullName: "A", Email: "a@b.com"}},
		{name: "malformed email", req: RegisterRequest{FullName: "A", Email: "not-an-email", Password: "Secret123"}},
		{name: "short password", req: RegisterRequest{FullName: "A", Email: "a@b.com", Password: "12345"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &AuthService{Repo: r}
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		FullName: "Maria Lopez",
		Email:    "maria@example.com",
		Password: "Secret123",
	})
	require.NoError(t, err)

	user, err := svc.Login(ctx, "maria@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Unknown email and wrong password must be indistinguishable.
	_, err = svc.Login(ctx, "nobody@example.com", "Secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "maria@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
