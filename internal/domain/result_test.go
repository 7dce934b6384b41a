package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_StartsSuccessful(t *testing.T) {
	r := NewResult[*User]()
	assert.True(t, r.IsSuccess())
	assert.Equal(t, ResultSuccess, r.Type())
	assert.Empty(t, r.Messages())
	assert.Nil(t, r.Data())
}

func TestResult_ZeroValueIsSuccessful(t *testing.T) {
	var r Result[int]
	assert.True(t, r.IsSuccess())
	assert.Equal(t, ResultSuccess, r.Type())
}

func TestResult_AddInvalidMarksFailed(t *testing.T) {
	r := NewResult[string]()
	r.AddMessage("email is required", ResultInvalid)

	assert.False(t, r.IsSuccess())
	assert.Equal(t, ResultInvalid, r.Type())
	assert.Equal(t, []string{"email is required"}, r.Messages())
}

func TestResult_NeverDowngradesToSuccess(t *testing.T) {
	r := NewResult[string]()
	r.AddMessage("bad", ResultInvalid)
	r.AddMessage("informational", ResultSuccess)

	assert.False(t, r.IsSuccess())
	assert.Equal(t, ResultInvalid, r.Type())
	assert.Equal(t, []string{"bad", "informational"}, r.Messages())
}

func TestResult_KeepsFirstFailureKind(t *testing.T) {
	r := NewResult[string]()
	r.AddMessage("missing", ResultNotFound)
	r.AddMessage("bad", ResultInvalid)

	assert.Equal(t, ResultNotFound, r.Type())
}

func TestResult_MessagesReturnsCopy(t *testing.T) {
	r := NewResult[string]()
	r.AddMessage("one", ResultInvalid)

	msgs := r.Messages()
	msgs[0] = "mutated"

	assert.Equal(t, []string{"one"}, r.Messages())
}

func TestResult_SetData(t *testing.T) {
	r := NewResult[*User]()
	u := &User{UserID: 3}
	r.SetData(u)
	assert.Same(t, u, r.Data())
}
