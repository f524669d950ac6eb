//go:build unit

package user_test

import (
	"testing"

	"vehicle-rental/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		email, err := user.NewEmail("  Alice@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email.Value())
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, bad := range []string{"", "no-at-sign", "@missing-local.com", "user@", "user@host", "user @example.com"} {
			_, err := user.NewEmail(bad)
			assert.ErrorIs(t, err, user.ErrInvalidEmail, "input: %q", bad)
		}
	})
}

func TestNewPassword(t *testing.T) {
	_, err := user.NewPassword("short")
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)

	p, err := user.NewPassword("long-enough-secret")
	require.NoError(t, err)
	assert.Equal(t, "long-enough-secret", p.Value())
}

func TestNewPhone(t *testing.T) {
	_, err := user.NewPhone("")
	require.ErrorIs(t, err, user.ErrInvalidPhone)

	_, err = user.NewPhone("123456789012345678901")
	require.ErrorIs(t, err, user.ErrInvalidPhone)

	p, err := user.NewPhone(" +81-90-1234-5678 ")
	require.NoError(t, err)
	assert.Equal(t, "+81-90-1234-5678", p.Value())
}

func TestNewRole(t *testing.T) {
	admin, err := user.NewRole("admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	customer, err := user.NewRole("customer")
	require.NoError(t, err)
	assert.False(t, customer.IsAdmin())

	_, err = user.NewRole("superuser")
	require.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("bob@example.com")
	require.NoError(t, err)
	phone, err := user.NewPhone("090-0000-0000")
	require.NoError(t, err)

	u := user.NewUser("Bob", email, "hashed", phone, user.RoleCustomer)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "Bob", u.Name())
	assert.Equal(t, "bob@example.com", u.Email().Value())
	assert.Equal(t, user.RoleCustomer, u.Role())
}
