//go:build unit

package user_test

import (
	"testing"

	"gearshare/internal/domain/user"
	"gearshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Olga Owner", actual.Name())
		assert.Equal(t, "olga@example.com", actual.Email())
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.UserBuilder) { b.WithName("") },
				errIs:  user.ErrEmptyName,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.UserBuilder) { b.WithName("   ") },
				errIs:  user.ErrEmptyName,
			},
			{
				name:   "name is trimmed but kept",
				mutate: func(b *builder.UserBuilder) { b.WithName("  Olga  ") },
			},
		})
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("olga.example.com") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing local part",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("@example.com") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing domain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("olga@") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "domain without dot",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("olga@example") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "valid address",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("olga@example.com") },
			},
		})
	})

	t.Run("email normalization", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().WithEmail("  Olga@Example.COM  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "olga@example.com", actual.Email())
	})

	t.Run("patch", func(t *testing.T) {
		t.Run("nil fields leave values untouched", func(t *testing.T) {
			actual, err := builder.NewUserBuilder().BuildDomain()
			require.NoError(t, err)

			require.NoError(t, actual.Patch(nil, nil))
			assert.Equal(t, "Olga Owner", actual.Name())
			assert.Equal(t, "olga@example.com", actual.Email())
		})

		t.Run("updates provided fields", func(t *testing.T) {
			actual, err := builder.NewUserBuilder().BuildDomain()
			require.NoError(t, err)

			name := "Bea Borrower"
			email := "Bea@Example.com"
			require.NoError(t, actual.Patch(&name, &email))
			assert.Equal(t, "Bea Borrower", actual.Name())
			assert.Equal(t, "bea@example.com", actual.Email())
		})

		t.Run("rejects invalid replacement", func(t *testing.T) {
			actual, err := builder.NewUserBuilder().BuildDomain()
			require.NoError(t, err)

			empty := " "
			require.ErrorIs(t, actual.Patch(&empty, nil), user.ErrEmptyName)
			assert.Equal(t, "Olga Owner", actual.Name())

			bad := "not-an-email"
			require.ErrorIs(t, actual.Patch(nil, &bad), user.ErrInvalidEmail)
			assert.Equal(t, "olga@example.com", actual.Email())
		})
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
