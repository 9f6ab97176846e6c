// Package identifier classifies and validates the free-text identifiers a
// resident types into a login or registration form.
//
// An identifier is exactly one of four kinds: an email address, a Chilean
// RUT, a generic numeric DNI, or a username. Every function in this package
// is total: malformed input yields a Result with Valid set to false and a
// human-readable Message, never a panic or an error value.
//
// # Classification
//
//	res := identifier.Validate("12.345.678-5")
//	// res.Type == identifier.TypeRUT, res.Valid == true
//
// The dispatcher checks shape in a fixed priority: email (contains "@"),
// RUT-shaped, purely numeric (DNI), and finally username.
//
// # RUT helpers
//
// RUTs are checked with the Módulo-11 check digit:
//
//	identifier.CheckDigit("12345678")          // "5"
//	identifier.ValidateFullRUT("12.345.678-5") // true
//	identifier.FormatRUT("12345678", "5")      // "12.345.678-5"
//	body, dv := identifier.SplitRUT("12.345.678-5")
//
// RUTValidationError returns the first rule a RUT breaks, or "" when the RUT
// is valid or when both parts are empty (an optional field left blank).
package identifier
