package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxEmailLength    = 254
	maxNameLength     = 50
	minPasswordLength = 8
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@.]{2,}$`)

// Rule pairs a predicate with the message reported when it does not hold.
type Rule[T any] struct {
	Message string
	Valid   func(T) bool
}

// Validate evaluates every rule against candidate in order and records one INVALID
// message per failing rule. The returned result never carries data.
func Validate[T any](candidate T, rules []Rule[T]) *Result[T] {
	result := NewResult[T]()
	for _, rule := range rules {
		if !rule.Valid(candidate) {
			result.AddMessage(rule.Message, ResultInvalid)
		}
	}
	return result
}

// Length and format rules skip empty values; the required rule reports those.
var userRules = []Rule[*User]{
	{
		Message: "userId cannot be negative",
		Valid:   func(u *User) bool { return u.UserID >= 0 },
	},
	{
		Message: "email is required",
		Valid:   func(u *User) bool { return !isBlank(u.Email) },
	},
	{
		Message: "email must be shorter than 255 characters",
		Valid:   func(u *User) bool { return utf8.RuneCountInString(u.Email) <= maxEmailLength },
	},
	{
		Message: "email must be a valid email address",
		Valid:   func(u *User) bool { return u.Email == "" || emailPattern.MatchString(u.Email) },
	},
	{
		Message: "name is required",
		Valid:   func(u *User) bool { return !isBlank(u.Name) },
	},
	{
		Message: "name cannot be greater than 50 characters",
		Valid:   func(u *User) bool { return utf8.RuneCountInString(u.Name) <= maxNameLength },
	},
	{
		Message: "password is required",
		Valid:   func(u *User) bool { return !isBlank(u.Password) },
	},
	{
		Message: "password must have at least 8 characters",
		Valid: func(u *User) bool {
			return u.Password == "" || utf8.RuneCountInString(u.Password) >= minPasswordLength
		},
	},
}

// ValidateUser runs the user field constraints.
func ValidateUser(u *User) *Result[*User] {
	if u == nil {
		u = &User{}
	}
	return Validate(u, userRules)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
