package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() *User {
	return &User{Email: "x@y.co", Name: "Al", Password: "password1"}
}

func TestValidateUser_Valid(t *testing.T) {
	result := ValidateUser(validUser())
	assert.True(t, result.IsSuccess())
	assert.Empty(t, result.Messages())
	assert.Nil(t, result.Data())
}

func TestValidateUser_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *User)
		want   string
	}{
		{"negative id", func(u *User) { u.UserID = -1 }, "userId cannot be negative"},
		{"missing email", func(u *User) { u.Email = "" }, "email is required"},
		{"blank email", func(u *User) { u.Email = "   " }, "email is required"},
		{"bad email", func(u *User) { u.Email = "bad-email" }, "email must be a valid email address"},
		{"short tld", func(u *User) { u.Email = "a@b.c" }, "email must be a valid email address"},
		{"long email", func(u *User) { u.Email = strings.Repeat("a", 250) + "@b.co" }, "email must be shorter than 255 characters"},
		{"missing name", func(u *User) { u.Name = "" }, "name is required"},
		{"long name", func(u *User) { u.Name = strings.Repeat("n", 51) }, "name cannot be greater than 50 characters"},
		{"missing password", func(u *User) { u.Password = "" }, "password is required"},
		{"short password", func(u *User) { u.Password = "short" }, "password must have at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)

			result := ValidateUser(u)
			require.False(t, result.IsSuccess())
			assert.Equal(t, ResultInvalid, result.Type())
			assert.Contains(t, result.Messages(), tt.want)
		})
	}
}

func TestValidateUser_BoundaryLengths(t *testing.T) {
	u := validUser()
	u.Name = strings.Repeat("n", 50)
	u.Password = "12345678"
	u.Email = strings.Repeat("a", 249) + "@b.co"
	require.Len(t, u.Email, 254)

	assert.True(t, ValidateUser(u).IsSuccess())
}

func TestValidateUser_ReportsAllViolations(t *testing.T) {
	result := ValidateUser(&User{UserID: -4, Email: "nope", Name: strings.Repeat("n", 60), Password: "tiny"})

	assert.ElementsMatch(t, []string{
		"userId cannot be negative",
		"email must be a valid email address",
		"name cannot be greater than 50 characters",
		"password must have at least 8 characters",
	}, result.Messages())
}

func TestValidateUser_EmptyRecordReportsRequiredOnly(t *testing.T) {
	result := ValidateUser(&User{})

	assert.Equal(t, []string{
		"email is required",
		"name is required",
		"password is required",
	}, result.Messages())
}

func TestValidateUser_NilTreatedAsEmpty(t *testing.T) {
	result := ValidateUser(nil)
	assert.Len(t, result.Messages(), 3)
}

func TestValidate_Deterministic(t *testing.T) {
	u := &User{Email: "bad", Password: "x"}
	first := ValidateUser(u).Messages()
	second := ValidateUser(u).Messages()
	assert.Equal(t, first, second)
}

func TestValidate_CustomRules(t *testing.T) {
	rules := []Rule[int]{
		{Message: "must be positive", Valid: func(n int) bool { return n > 0 }},
		{Message: "must be even", Valid: func(n int) bool { return n%2 == 0 }},
	}

	assert.Equal(t, []string{"must be positive", "must be even"}, Validate(-3, rules).Messages())
	assert.True(t, Validate(4, rules).IsSuccess())
}
