package lookup_test

import (
	"testing"

	"teslo/internal/lookup"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		kind  lookup.Kind
		id    string
		title string
		slug  string
	}{
		{
			name: "canonical uuid",
			term: "0b9c4c2e-8d4f-4a8a-9d57-2c8a3f1e6b10",
			kind: lookup.ByID,
			id:   "0b9c4c2e-8d4f-4a8a-9d57-2c8a3f1e6b10",
		},
		{
			name: "upper case uuid is still an identifier",
			term: "0B9C4C2E-8D4F-4A8A-9D57-2C8A3F1E6B10",
			kind: lookup.ByID,
			id:   "0b9c4c2e-8d4f-4a8a-9d57-2c8a3f1e6b10",
		},
		{
			name:  "slug",
			term:  "teslo-shirt",
			kind:  lookup.ByTitleOrSlug,
			title: "TESLO-SHIRT",
			slug:  "teslo-shirt",
		},
		{
			name:  "mixed case title",
			term:  "Teslo Shirt",
			kind:  lookup.ByTitleOrSlug,
			title: "TESLO SHIRT",
			slug:  "teslo shirt",
		},
		{
			name:  "undashed uuid is descriptive",
			term:  "0b9c4c2e8d4f4a8a9d572c8a3f1e6b10",
			kind:  lookup.ByTitleOrSlug,
			title: "0B9C4C2E8D4F4A8A9D572C8A3F1E6B10",
			slug:  "0b9c4c2e8d4f4a8a9d572c8a3f1e6b10",
		},
		{
			name:  "36 characters that are not a uuid",
			term:  "this-is-not-a-uuid-but-36-chars-long",
			kind:  lookup.ByTitleOrSlug,
			title: "THIS-IS-NOT-A-UUID-BUT-36-CHARS-LONG",
			slug:  "this-is-not-a-uuid-but-36-chars-long",
		},
		{
			name: "empty term",
			term: "",
			kind: lookup.ByTitleOrSlug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lookup.Classify(tt.term)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.term, got.Raw)
			assert.Equal(t, tt.id, got.ID)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.slug, got.Slug)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for _, term := range []string{"teslo-shirt", "0b9c4c2e-8d4f-4a8a-9d57-2c8a3f1e6b10", "Men's Chill Crew Neck"} {
		assert.Equal(t, lookup.Classify(term), lookup.Classify(term))
	}
}
