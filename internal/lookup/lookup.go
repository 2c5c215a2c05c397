// Package lookup decides how a product lookup term is matched against the store.
package lookup

import (
	"strings"

	"github.com/google/uuid"
)

// Kind tells which key a Term resolves against.
type Kind int

const (
	// ByID matches the product identifier exactly.
	ByID Kind = iota
	// ByTitleOrSlug matches the title case-insensitively or the slug in lower case.
	ByTitleOrSlug
)

func (k Kind) String() string {
	switch k {
	case ByID:
		return "id"
	case ByTitleOrSlug:
		return "title_or_slug"
	default:
		return "unknown"
	}
}

// Term is a classified lookup term.
type Term struct {
	Kind  Kind
	Raw   string
	ID    string // set for ByID
	Title string // upper-cased term, set for ByTitleOrSlug
	Slug  string // lower-cased term, set for ByTitleOrSlug
}

// Classify returns ByID for terms in canonical UUID text form
// (8-4-4-4-12 hex) and ByTitleOrSlug for everything else.
func Classify(term string) Term {
	if IsIdentifier(term) {
		return Term{Kind: ByID, Raw: term, ID: strings.ToLower(term)}
	}
	return Term{
		Kind:  ByTitleOrSlug,
		Raw:   term,
		Title: strings.ToUpper(term),
		Slug:  strings.ToLower(term),
	}
}

// IsIdentifier reports whether term is a canonical UUID. uuid.Parse also
// accepts urn, braced and undashed forms, which are treated as descriptive.
func IsIdentifier(term string) bool {
	if len(term) != 36 {
		return false
	}
	_, err := uuid.Parse(term)
	return err == nil
}
