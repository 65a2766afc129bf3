package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	ShopName string `json:"shop_name" validate:"max=100"`
}

func TestValidate_OK(t *testing.T) {
	p := signupPayload{Email: "a@b.com", Password: "longenough"}
	assert.NoError(t, Validate(p))
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(signupPayload{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Email"])
	assert.Equal(t, "is required", fields["Password"])
}

func TestValidate_TooShort(t *testing.T) {
	err := Validate(signupPayload{Email: "a@b.com", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestDecodeAndValidate_OK(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","password":"longenough"}`))
	var p signupPayload
	assert.NoError(t, DecodeAndValidate(r, &p))
	assert.Equal(t, "a@b.com", p.Email)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{nope`))
	var p signupPayload
	assert.Error(t, DecodeAndValidate(r, &p))
}
