package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("  User@Example.CL  "))
	assert.True(t, ValidateEmail("a.b+c@sub.domain.cl"))

	assert.False(t, ValidateEmail("user@example"))
	assert.False(t, ValidateEmail("user example@test.cl"))
	assert.False(t, ValidateEmail("user@@test.cl"))
	assert.False(t, ValidateEmail("@test.cl"))
	assert.False(t, ValidateEmail(""))
}

func TestValidateDNI(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateDNI("1234567"))
	assert.True(t, ValidateDNI("12.345.678"))
	assert.True(t, ValidateDNI("123456789"))

	assert.False(t, ValidateDNI("123456"))
	assert.False(t, ValidateDNI("1234567890"))
	assert.False(t, ValidateDNI("12345a7"))
}

func TestValidate_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
		typ   Type
		msg   string
	}{
		{"email", "user@example.com", true, TypeEmail, ""},
		{"bad email", "user@example", false, TypeEmail, msgEmailInvalid},
		{"rut with dash", "12345678-5", true, TypeRUT, ""},
		{"rut formatted", "12.345.678-5", true, TypeRUT, ""},
		{"rut K", "1.000.005-k", true, TypeRUT, ""},
		{"rut bare digits", "123456785", true, TypeRUT, ""},
		{"rut wrong digit", "12345678-4", false, TypeRUT, msgRUTInvalid},
		{"rut short body", "12345-6", false, TypeRUT, msgRUTTooShort},
		{"rut wrong K", "12345678-K", false, TypeRUT, msgRUTInvalid},
		// RUT-shaped, but 8 is not the check digit of 1234567, so it falls
		// through to DNI.
		{"dni bare digits", "12345678", true, TypeDNI, ""},
		{"dni too short", "12345", false, TypeDNI, msgDNILength},
		{"dni too long", "1234567890", false, TypeDNI, msgDNILength},
		{"username", "abcdef", true, TypeUsername, ""},
		{"username with symbols", "juan.perez_01-x", true, TypeUsername, ""},
		{"username too short", "ab", false, TypeUsername, msgUsernameTooShort},
		{"username bad chars", "juan perez!", false, TypeUsername, msgUsernameChars},
		{"blank", "  ", false, TypeUsername, msgEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.typ, res.Type)
			assert.Equal(t, tt.msg, res.Message)
		})
	}
}

func TestValidate_EmailWinsOverOtherShapes(t *testing.T) {
	t.Parallel()

	res := Validate("12345678-5@x.cl")
	assert.Equal(t, TypeEmail, res.Type)
	assert.True(t, res.Valid)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user@example.com", Format("  User@Example.COM "))
	assert.Equal(t, "12.345.678-5", Format("123456785"))
	assert.Equal(t, "12.345.678-5", Format("12345678-5"))
	assert.Equal(t, "juan.perez", Format(" juan.perez "))
	assert.Equal(t, "12345678-4", Format("12345678-4"), "invalid RUT is only trimmed")
}

func TestHelpText(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypeEmail, TypeRUT, TypeDNI, TypeUsername} {
		assert.True(t, typ.IsValid())
		assert.NotEmpty(t, HelpText(typ))
	}
	assert.False(t, Type("passport").IsValid())
	assert.Equal(t, "Enter your email, RUT, DNI or username", HelpText("passport"))
}
