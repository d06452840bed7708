package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/user"
)

type usersStub struct {
	users map[string]user.User
}

func (s usersStub) Authenticate(_ context.Context, email, pwd string) (user.User, error) {
	usr, ok := s.users[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if err := usr.CheckPassword(pwd); err != nil {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func TestDevService(t *testing.T) {
	svc := NewDevService()
	ctx := context.Background()

	id, err := svc.Authenticate(ctx, "prof@iiitd.ac.in", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "prof@iiitd.ac.in", id.Email)
	assert.Equal(t, "Mock", id.FirstName)
	assert.Equal(t, "admin", id.Role)

	id, err = svc.Authenticate(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", id.Email)

	token, err := svc.IssueToken(id)
	require.NoError(t, err)
	assert.Equal(t, DevToken, token)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "", wantErr: ErrInvalidToken},
		{name: "blank", token: "   ", wantErr: ErrInvalidToken},
		{name: "static token", token: DevToken},
		{name: "any token", token: "lol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.Verify(ctx, tt.token)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, devIdentity, id)
		})
	}
}

func TestJWTService(t *testing.T) {
	usr := user.User{ID: 7, Name: "Ada Lovelace", Email: "ada@test.cd", Role: user.RoleEditor}
	require.NoError(t, usr.SetPassword("s3cr3t-pwd"))

	conf := &core.Config{AppName: "test", Auth: core.AuthConfig{SecretKey: "secret", JWTExpiration: time.Hour}}
	svc := NewJWTService(usersStub{users: map[string]user.User{usr.Email: usr}}, conf)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, usr.Email, "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
	_, err = svc.Authenticate(ctx, "nobody@test.cd", "s3cr3t-pwd")
	assert.Equal(t, ErrInvalidCredentials, err)

	id, err := svc.Authenticate(ctx, usr.Email, "s3cr3t-pwd")
	require.NoError(t, err)
	want := Identity{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@test.cd", Role: user.RoleEditor}
	assert.Equal(t, want, id)

	token, err := svc.IssueToken(id)
	require.NoError(t, err)

	got, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	t.Run("tampered", func(t *testing.T) {
		_, err := svc.Verify(ctx, token+"x")
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("other key", func(t *testing.T) {
		other := NewJWTService(nil, &core.Config{AppName: "test", Auth: core.AuthConfig{SecretKey: "other", JWTExpiration: time.Hour}})
		_, err := other.Verify(ctx, token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("expired", func(t *testing.T) {
		NowFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { NowFunc = time.Now }()
		_, err := svc.Verify(ctx, token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("dev token", func(t *testing.T) {
		_, err := svc.Verify(ctx, DevToken)
		assert.Equal(t, ErrInvalidToken, err)
	})
}
