// internal/app/system/normalize/normalize.go

// Package normalize trims and canonicalizes user-supplied strings
// before they are stored or compared. Lowercasing is applied only to
// fields compared case-insensitively (emails, enums); display fields
// keep their case and are folded separately into *_ci shadow fields.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person's display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Place trims a stake or ward name, preserving case.
func Place(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims a phone number.
func Phone(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LeaderStatus lowercases and trims a leader status value.
func LeaderStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims an application or recommendation status.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AuthMethod lowercases and trims an auth method value.
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Gender lowercases and trims a gender value.
func Gender(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
