// Package htmlsanitize strips unsafe HTML from user-supplied text
// before it is stored: the free-form more_info field and memo/comment
// bodies round-trip to other users and must never carry script.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy allows basic formatting only. Built once; bluemonday
// policies are safe for concurrent use.
var policy = bluemonday.UGCPolicy()

// Sanitize removes unsafe HTML from s, keeping common user-generated
// formatting (paragraphs, emphasis, lists, links with safe schemes).
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// StripAll removes every tag, leaving plain text. Used for fields
// that should never contain markup at all (names, stake, ward).
func StripAll(s string) string {
	if s == "" {
		return ""
	}
	return bluemonday.StrictPolicy().Sanitize(s)
}
