package identifier

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	minRUTBodyLen = 7
	maxRUTBodyLen = 8
)

// RUT validation messages, in checklist order.
const (
	msgRUTBodyRequired = "RUT body is required"
	msgRUTDVRequired   = "RUT check digit is required"
	msgRUTBodyNumeric  = "RUT body must contain only digits"
	msgRUTDVInvalid    = "RUT check digit must be a digit or K"
	msgRUTTooShort     = "RUT body must have at least 7 digits"
	msgRUTTooLong      = "RUT body must have at most 8 digits"
	msgRUTInvalid      = "invalid RUT, verify the check digit"
)

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	rutDVPattern  = regexp.MustCompile(`^[0-9K]$`)
)

// RUTResult is the outcome of CheckRUT.
type RUTResult struct {
	Valid     bool   `json:"isValid"`
	Formatted string `json:"formatted,omitempty"`
}

// CleanRUT removes periods, hyphens and whitespace and upper-cases the rest.
func CleanRUT(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '.' || r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// CheckDigit computes the Módulo-11 check digit for a RUT body. Digits are
// weighted 2..7 starting from the rightmost one. Non-digit characters are
// skipped; a body without digits yields "".
func CheckDigit(body string) string {
	sum, multiplier, digits := 0, 2, 0
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			continue
		}
		sum += int(c-'0') * multiplier
		digits++
		multiplier++
		if multiplier > 7 {
			multiplier = 2
		}
	}
	if digits == 0 {
		return ""
	}

	switch result := 11 - sum%11; result {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(result)
	}
}

// ValidateRUT reports whether dv is the correct check digit for body.
// The body must have 7 or 8 digits once cleaned.
func ValidateRUT(body, dv string) bool {
	if body == "" || dv == "" {
		return false
	}

	body, dv = CleanRUT(body), CleanRUT(dv)
	if !digitsPattern.MatchString(body) || !rutDVPattern.MatchString(dv) {
		return false
	}
	if len(body) < minRUTBodyLen || len(body) > maxRUTBodyLen {
		return false
	}

	return CheckDigit(body) == dv
}

// ValidateFullRUT validates a RUT written as a single string, with or
// without punctuation: "12.345.678-5", "12345678-5" and "123456785" are
// all accepted forms.
func ValidateFullRUT(full string) bool {
	cleaned := []rune(CleanRUT(full))
	if len(cleaned) < minRUTBodyLen+1 || len(cleaned) > maxRUTBodyLen+1 {
		return false
	}
	last := len(cleaned) - 1
	return ValidateRUT(string(cleaned[:last]), string(cleaned[last:]))
}

// FormatRUT inserts thousands separators into body and appends "-dv" when
// dv is not empty. No validation is performed.
func FormatRUT(body, dv string) string {
	digits := []rune(CleanRUT(body))

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if dv = CleanRUT(dv); dv != "" {
		b.WriteByte('-')
		b.WriteString(dv)
	}
	return b.String()
}

// SplitRUT cleans full and splits off the trailing check character.
// Inputs shorter than two characters come back whole as the body.
func SplitRUT(full string) (body, dv string) {
	cleaned := []rune(CleanRUT(full))
	if len(cleaned) < 2 {
		return string(cleaned), ""
	}
	last := len(cleaned) - 1
	return string(cleaned[:last]), string(cleaned[last:])
}

// CheckRUT validates a combined body+check-digit string and returns its
// canonical formatting when valid.
func CheckRUT(s string) RUTResult {
	body, dv := SplitRUT(s)
	if !ValidateRUT(body, dv) {
		return RUTResult{}
	}
	return RUTResult{Valid: true, Formatted: FormatRUT(body, dv)}
}

// RUTValidationError returns the first rule the RUT breaks. It returns ""
// when the RUT is valid and also when both parts are empty, so optional
// form fields left blank are not reported.
func RUTValidationError(body, dv string) string {
	body, dv = CleanRUT(body), CleanRUT(dv)

	switch {
	case body == "" && dv == "":
		return ""
	case body == "":
		return msgRUTBodyRequired
	case dv == "":
		return msgRUTDVRequired
	case !digitsPattern.MatchString(body):
		return msgRUTBodyNumeric
	case !rutDVPattern.MatchString(dv):
		return msgRUTDVInvalid
	case len(body) < minRUTBodyLen:
		return msgRUTTooShort
	case len(body) > maxRUTBodyLen:
		return msgRUTTooLong
	case CheckDigit(body) != dv:
		return msgRUTInvalid
	}
	return ""
}
