package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vetting/pkg/domain-errors"
)

func TestParseCategoryID(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected CategoryID
	}{
		{name: "native int", input: 7, expected: 7},
		{name: "json float", input: float64(7), expected: 7},
		{name: "json number", input: json.Number("7"), expected: 7},
		{name: "decimal string", input: "7", expected: 7},
		{name: "padded string", input: " 12 ", expected: 12},
		{name: "negative", input: "-3", expected: -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategoryID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("rejects non-numeric strings", func(t *testing.T) {
		_, err := ParseCategoryID("seven")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects fractional numbers", func(t *testing.T) {
		_, err := ParseCategoryID(7.5)
		require.Error(t, err)
	})
}

func TestCategoryIDJSON(t *testing.T) {
	t.Run("accepts number and string forms", func(t *testing.T) {
		var payload struct {
			A CategoryID `json:"a"`
			B CategoryID `json:"b"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a": 4, "b": "4"}`), &payload))
		assert.Equal(t, payload.A, payload.B)
	})

	t.Run("status map keys decode to canonical ids", func(t *testing.T) {
		var n Nominee
		require.NoError(t, json.Unmarshal([]byte(`{"id":"n1","data":{},"statuses":{"3":1,"10":-1}}`), &n))
		assert.Equal(t, StatusApproved, n.Status(3))
		assert.Equal(t, StatusRejected, n.Status(10))
		assert.Equal(t, []CategoryID{3, 10}, n.CategoryIDs())
	})
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Rejected", StatusRejected.Label())
	assert.Equal(t, "Unvetted", StatusUnvetted.Label())
	assert.Equal(t, "Approved", StatusApproved.Label())
	assert.Equal(t, "Selected via typeahead", StatusSelectedExternally.Label())
	assert.Equal(t, "Unvetted", StatusCode(9).Label())
	assert.Equal(t, StatusUnvetted, NormalizeStatus(StatusCode(9)))
}

func TestNomineeStatusDefaults(t *testing.T) {
	n := Nominee{ID: "n1", Statuses: map[CategoryID]StatusCode{1: StatusApproved, 2: StatusCode(42)}}
	assert.Equal(t, StatusApproved, n.Status(1))
	assert.Equal(t, StatusUnvetted, n.Status(2), "unrecognized codes read as unvetted")
	assert.Equal(t, StatusUnvetted, n.Status(99), "absent categories read as unvetted")
}

func TestClone(t *testing.T) {
	original := Nominee{
		ID:         "n1",
		Data:       Data{"title": "A", "tags": []any{"x"}, "meta": map[string]any{"words": 10}},
		Statuses:   map[CategoryID]StatusCode{1: StatusUnvetted},
		Duplicates: []NomineeID{"n2"},
	}

	clone := original.Clone()
	clone.Data["title"] = "B"
	clone.Data["meta"].(map[string]any)["words"] = float64(20)
	clone.Data["tags"].([]any)[0] = "y"
	clone.Statuses[1] = StatusApproved
	clone.Duplicates[0] = "n3"

	assert.Equal(t, "A", original.Data["title"])
	assert.Equal(t, 10, original.Data["meta"].(map[string]any)["words"])
	assert.Equal(t, "x", original.Data["tags"].([]any)[0])
	assert.Equal(t, StatusUnvetted, original.Statuses[1])
	assert.Equal(t, NomineeID("n2"), original.Duplicates[0])
}

func TestCloneNormalizesNumbers(t *testing.T) {
	d := Data{"count": 3, "nested": map[string]any{"n": int64(4)}, "num": json.Number("5")}
	c := d.Clone()
	assert.Equal(t, float64(3), c["count"])
	assert.Equal(t, float64(4), c["nested"].(map[string]any)["n"])
	assert.Equal(t, float64(5), c["num"])
}

func TestContainsNull(t *testing.T) {
	tests := []struct {
		name     string
		data     Data
		expected bool
		paths    []string
	}{
		{name: "nil data", data: nil, expected: false},
		{name: "flat values", data: Data{"title": "A", "nsfw": true}, expected: false},
		{name: "top-level null", data: Data{"title": nil}, expected: true, paths: []string{"title"}},
		{name: "nested null", data: Data{"links": map[string]any{"ao3": nil}}, expected: true, paths: []string{"links.ao3"}},
		{name: "null in list", data: Data{"tags": []any{"a", nil}}, expected: true, paths: []string{"tags[1]"}},
		{name: "null in nested list", data: Data{"matrix": []any{[]any{"x", nil}}}, expected: true, paths: []string{"matrix[0][1]"}},
		{name: "null in Data list item", data: Data{"entries": []any{Data{"url": nil}}}, expected: true, paths: []string{"entries[0].url"}},
		{name: "null in map list item", data: Data{"entries": []any{map[string]any{"url": "u", "alt": nil}}}, expected: true, paths: []string{"entries[0].alt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsNull(tt.data))
			assert.Equal(t, tt.paths, NullPaths(tt.data))
		})
	}
}

func TestInferKind(t *testing.T) {
	assert.Equal(t, KindArt, InferKind(Data{"artist": "someone", "links": []any{"x"}}))
	assert.Equal(t, KindFic, InferKind(Data{"links": []any{"x"}}))
	assert.Equal(t, KindOther, InferKind(Data{"name": "x"}))
	assert.Equal(t, KindOther, InferKind(Data{"artist": ""}), "empty artist is not art")
}

func TestNormalizeNominee(t *testing.T) {
	n := NormalizeNominee(Nominee{
		ID:         "n1",
		Data:       Data{"links": []any{"https://example.org"}},
		Duplicates: []NomineeID{" n2 ", "n1", "", "n3", "n2"},
	})

	assert.Equal(t, []NomineeID{"n2", "n3"}, n.Duplicates)
	assert.Equal(t, KindFic, n.Kind)
	assert.NotNil(t, n.Statuses)
}

func TestMergeAndWithout(t *testing.T) {
	base := Data{"title": "A", "author": "X"}
	merged := Merge(base, Data{"title": "B"})
	assert.Equal(t, Data{"title": "B", "author": "X"}, merged)
	assert.Equal(t, "A", base["title"], "merge must not touch base")

	trimmed := merged.Without("author")
	assert.Equal(t, Data{"title": "B"}, trimmed)
	assert.Contains(t, merged, "author")
}

func TestCategoryFlags(t *testing.T) {
	assert.Equal(t, []string{FlagNSFW, FlagSpoiler}, Category{Kind: KindArt}.Flags())
	assert.Equal(t, []string{FlagNSFW}, Category{Kind: KindFic}.Flags())
	assert.Empty(t, Category{Kind: KindOther}.Flags())
}
