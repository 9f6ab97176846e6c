package identifier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Type is the kind of identifier a string was classified as.
type Type string

const (
	TypeEmail    Type = "email"
	TypeRUT      Type = "rut"
	TypeDNI      Type = "dni"
	TypeUsername Type = "username"
)

// IsValid reports whether t is one of the known identifier types.
func (t Type) IsValid() bool {
	switch t {
	case TypeEmail, TypeRUT, TypeDNI, TypeUsername:
		return true
	}
	return false
}

const (
	minDNILen      = 7
	maxDNILen      = 9
	minUsernameLen = 3
)

const (
	msgEmpty            = "identifier cannot be empty"
	msgEmailInvalid     = "invalid email format"
	msgDNILength        = "DNI must have between 7 and 9 digits"
	msgUsernameTooShort = "username must be at least 3 characters"
	msgUsernameChars    = "username may only contain letters, digits, dots, hyphens and underscores"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rutShapePattern = regexp.MustCompile(`^\d{1,8}-?[0-9Kk]$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// Result is the classification of a single identifier.
type Result struct {
	Valid   bool   `json:"isValid"`
	Type    Type   `json:"type"`
	Message string `json:"message,omitempty"`
}

// ValidateEmail reports whether s looks like local@domain.tld once trimmed
// and lower-cased. No DNS or mailbox checks are made.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(strings.ToLower(strings.TrimSpace(s)))
}

// ValidateDNI reports whether s is a numeric document number of 7 to 9
// digits. Periods and spaces used as visual separators are ignored.
func ValidateDNI(s string) bool {
	compact := compactNumeric(s)
	return digitsPattern.MatchString(compact) && len(compact) >= minDNILen && len(compact) <= maxDNILen
}

// Validate classifies s and checks it against the rules for its kind.
//
// Shapes are tried in a fixed priority: email, RUT, DNI, username. A
// RUT-shaped string that carries an explicit "-" or a K check character
// stays a RUT even when its check digit is wrong; a bare run of digits that
// is not a valid RUT is judged as a DNI instead.
func Validate(s string) Result {
	input := strings.TrimSpace(s)
	if input == "" {
		return Result{Type: TypeUsername, Message: msgEmpty}
	}

	if strings.Contains(input, "@") {
		if ValidateEmail(input) {
			return Result{Valid: true, Type: TypeEmail}
		}
		return Result{Type: TypeEmail, Message: msgEmailInvalid}
	}

	if res, ok := classifyRUT(input); ok {
		return res
	}
	if res, ok := classifyDNI(input); ok {
		return res
	}
	return classifyUsername(input)
}

func classifyRUT(input string) (Result, bool) {
	compact := compactNumeric(input)
	if !rutShapePattern.MatchString(compact) {
		return Result{}, false
	}
	if ValidateFullRUT(compact) {
		return Result{Valid: true, Type: TypeRUT}, true
	}

	explicit := strings.Contains(compact, "-") || strings.HasSuffix(strings.ToUpper(compact), "K")
	if !explicit {
		return Result{}, false
	}

	msg := RUTValidationError(SplitRUT(compact))
	if msg == "" {
		msg = msgRUTInvalid
	}
	return Result{Type: TypeRUT, Message: msg}, true
}

func classifyDNI(input string) (Result, bool) {
	compact := compactNumeric(input)
	if !digitsPattern.MatchString(compact) {
		return Result{}, false
	}
	if len(compact) < minDNILen || len(compact) > maxDNILen {
		return Result{Type: TypeDNI, Message: msgDNILength}, true
	}
	return Result{Valid: true, Type: TypeDNI}, true
}

func classifyUsername(input string) Result {
	if utf8.RuneCountInString(input) < minUsernameLen {
		return Result{Type: TypeUsername, Message: msgUsernameTooShort}
	}
	if !usernamePattern.MatchString(input) {
		return Result{Type: TypeUsername, Message: msgUsernameChars}
	}
	return Result{Valid: true, Type: TypeUsername}
}

// Format normalizes s for storage or display: emails are lower-cased, valid
// RUTs are reformatted as 12.345.678-5, anything else is only trimmed.
func Format(s string) string {
	input := strings.TrimSpace(s)
	if strings.Contains(input, "@") {
		return strings.ToLower(input)
	}
	if res := CheckRUT(input); res.Valid {
		return res.Formatted
	}
	return input
}

// HelpText returns an example value to show next to an identifier field.
func HelpText(t Type) string {
	switch t {
	case TypeEmail:
		return "Example: vecino@cuentasclaras.cl"
	case TypeRUT:
		return "Example: 12.345.678-5"
	case TypeDNI:
		return "Example: 12345678"
	case TypeUsername:
		return "Example: juan.perez"
	default:
		return "Enter your email, RUT, DNI or username"
	}
}

// compactNumeric drops periods and whitespace, the separators people type
// inside RUTs and DNIs.
func compactNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
