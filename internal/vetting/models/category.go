package models

import (
	"strings"

	dErrors "vetting/pkg/domain-errors"
)

// Kind is the entry kind of a category, and the tagged variant of a nominee.
type Kind string

const (
	KindFic   Kind = "fic"
	KindArt   Kind = "art"
	KindOther Kind = "other"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case KindFic, KindArt, KindOther:
		return true
	}
	return false
}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid kind %q: must be fic, art, or other", s)
	}
	return k, nil
}

// Category is an award category nominees are vetted in.
type Category struct {
	ID   CategoryID `json:"id"`
	Name string     `json:"name"`
	Kind Kind       `json:"type"`
}

// Flags lists the boolean attributes reviewers may toggle for nominees shown in
// this category.
func (c Category) Flags() []string {
	switch c.Kind {
	case KindArt:
		return []string{FlagNSFW, FlagSpoiler}
	case KindFic:
		return []string{FlagNSFW}
	default:
		return nil
	}
}

// Well-known boolean flags.
const (
	FlagNSFW    = "nsfw"
	FlagSpoiler = "spoiler"
)
