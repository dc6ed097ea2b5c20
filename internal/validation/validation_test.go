package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Phone  string   `validate:"omitempty,phone"`
	State  string   `validate:"required,usstate"`
	Genres []string `validate:"required,min=1,dive,genre"`
	Start  string   `validate:"omitempty,showtime"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterOn(v))
	return v
}

func TestCustomRulesAccept(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(sample{
		Phone:  "326-123-5000",
		State:  "CA",
		Genres: []string{"Jazz", "Reggae"},
		Start:  "2035-04-01 20:00:00",
	})
	assert.NoError(t, err)
}

func TestCustomRulesReject(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(sample{
		Phone:  "3261235000",
		State:  "ZZ",
		Genres: []string{"Jazz", "Polka"},
		Start:  "tomorrow",
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	msgs := Messages(err)
	assert.Contains(t, msgs, "Phone must look like 123-456-7890")
	assert.Contains(t, msgs, "State must be a US state code")
	assert.Contains(t, msgs, "Genres[1] contains an unknown genre")
	assert.Contains(t, msgs, "Start must look like 2006-01-02 15:04:05")
}

func TestRegisterIsIdempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}
