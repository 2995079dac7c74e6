// internal/app/system/reconcile/match.go

// Package reconcile decides whether a recommendation and an
// application describe the same candidate, and maintains the link
// between them.
//
// Matching is exact on folded (email, stake, ward); when either side
// has no email, folded name equality stands in for it. There is no
// fuzzy or partial matching.
package reconcile

import (
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Key is the folded identity of one record for matching purposes.
// Fields are lowercase, trimmed, diacritics-stripped; Email may be
// empty (recommendations can omit it).
type Key struct {
	Name  string
	Email string
	Stake string
	Ward  string
}

// KeyOf folds raw field values into a Key.
func KeyOf(name, email, stake, ward string) Key {
	return Key{
		Name:  text.Fold(name),
		Email: text.Fold(email),
		Stake: text.Fold(stake),
		Ward:  text.Fold(ward),
	}
}

// ApplicationKey builds the match key from an application's stored
// folded shadow fields.
func ApplicationKey(a models.Application) Key {
	return Key{Name: a.FullNameCI, Email: a.EmailCI, Stake: a.StakeCI, Ward: a.WardCI}
}

// RecommendationKey builds the match key from a recommendation's
// stored folded shadow fields.
func RecommendationKey(r models.Recommendation) Key {
	return Key{Name: r.FullNameCI, Email: r.EmailCI, Stake: r.StakeCI, Ward: r.WardCI}
}

// Matches reports whether two keys describe the same candidate.
// Stake and ward must always agree. When both sides carry an email,
// email equality decides; otherwise folded name equality does.
// Symmetric: Matches(a, b) == Matches(b, a).
func Matches(a, b Key) bool {
	if a.Stake == "" || a.Ward == "" {
		return false
	}
	if a.Stake != b.Stake || a.Ward != b.Ward {
		return false
	}
	if a.Email != "" && b.Email != "" {
		return a.Email == b.Email
	}
	return a.Name != "" && a.Name == b.Name
}
