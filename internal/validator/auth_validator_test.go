package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("demo@storefront.local", "x"))
	assert.NoError(t, ValidateLogin("  demo@storefront.local ", "x"))

	assert.ErrorIs(t, ValidateLogin("", "x"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateLogin("demo@storefront.local", ""), ErrInvalidInput)
	assert.ErrorIs(t, ValidateLogin("not-an-email", "x"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateLogin("a@b", "x"), ErrInvalidInput)
}

func TestValidateRegister(t *testing.T) {
	assert.NoError(t, ValidateRegister("New User", "new@example.com", "secret1"))

	assert.ErrorIs(t, ValidateRegister(" ", "new@example.com", "secret1"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateRegister("New User", "new@", "secret1"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateRegister("New User", "new@example.com", "abc"), ErrWeakPassword)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("reset1"))
	assert.ErrorIs(t, ValidatePassword("     "), ErrInvalidInput)
	assert.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
}
