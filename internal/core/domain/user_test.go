package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	params := NewUserParams{
		FirstName:          " Ada ",
		LastName:           "Lovelace",
		Email:              "Ada@Example.COM",
		Phone:              "+33600000000",
		PasswordHash:       "hash",
		ArticlePreferences: []string{"Tech", " Tech", "", "Science"},
	}

	u, err := NewUser(params)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, []string{"Tech", "Science"}, u.ArticlePreferences)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, UserActive, u.Status)
	assert.Equal(t, "Ada Lovelace", u.DisplayName())
}

func TestNewUser_Invalid(t *testing.T) {
	base := NewUserParams{FirstName: "A", LastName: "B", Email: "a@b.c", Phone: "1"}

	bad := base
	bad.Email = "not-an-email"
	_, err := NewUser(bad)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	bad = base
	bad.LastName = " "
	_, err = NewUser(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = base
	bad.Phone = ""
	_, err = NewUser(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUser_ApplyProfile(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace"}

	blank := "  "
	assert.False(t, u.ApplyProfile(ProfilePatch{FirstName: &blank}))
	assert.Equal(t, "Ada", u.FirstName)

	name := "Grace"
	assert.True(t, u.ApplyProfile(ProfilePatch{FirstName: &name}))
	assert.Equal(t, "Grace", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", JoinName("Ada", "Lovelace"))
	assert.Equal(t, "Lovelace", JoinName("", "Lovelace"))
	assert.Equal(t, "", JoinName(" ", ""))
}

func TestErrorFamilies(t *testing.T) {
	assert.ErrorIs(t, ErrArticleNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrPreferencesNotFound, ErrInvalidState)
	assert.ErrorIs(t, ErrEmailAlreadyExists, ErrConflict)
	assert.ErrorIs(t, ErrNotOwner, ErrForbidden)
	assert.ErrorIs(t, InvalidInput("field %s", "x"), ErrInvalidInput)
	assert.Equal(t, "field x", InvalidInput("field %s", "x").Error())

	cause := errors.New("connection reset")
	err := NewStorageError("find article", cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsStorageError(err))
	assert.Equal(t, "storage: find article: connection reset", err.Error())
	assert.Nil(t, NewStorageError("noop", nil))
}
