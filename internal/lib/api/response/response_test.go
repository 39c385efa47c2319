package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func TestValidationError(t *testing.T) {
	err := validator.New().Struct(sample{Email: "not-an-email"})
	require.Error(t, err)

	errs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	got := ValidationError(errs)
	assert.Equal(t, "field email is not a valid email, field name is a required field", got.Msg)
}

func TestErrorAndOK(t *testing.T) {
	assert.Equal(t, Response{Msg: "Todo deleted"}, OK("Todo deleted"))
	assert.Equal(t, Response{Msg: "Internal error"}, Error("Internal error"))
}
