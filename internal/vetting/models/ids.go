package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	dErrors "vetting/pkg/domain-errors"
)

// NomineeID identifies a nominee independently of the categories it entered.
type NomineeID string

func (id NomineeID) String() string { return string(id) }

// IsZero reports whether the ID is empty.
func (id NomineeID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// ParseNomineeID trims and validates a nominee identifier.
func ParseNomineeID(s string) (NomineeID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "nominee id is required")
	}
	return NomineeID(s), nil
}

// CategoryID is the canonical category identifier. Status maps arrive with string
// keys from JSON and numeric keys from the database; both collapse to this type
// at the boundary so comparisons never need coercion.
type CategoryID int

func (id CategoryID) String() string { return strconv.Itoa(int(id)) }

// ParseCategoryID normalizes the representations a category identifier can take
// (native integers, JSON numbers, and their decimal string form).
func ParseCategoryID(v any) (CategoryID, error) {
	switch t := v.(type) {
	case CategoryID:
		return t, nil
	case int:
		return CategoryID(t), nil
	case int32:
		return CategoryID(t), nil
	case int64:
		return CategoryID(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, dErrors.Newf(dErrors.CodeInvalidInput, "category id %v is not an integer", t)
		}
		return CategoryID(int(t)), nil
	case json.Number:
		return ParseCategoryID(t.String())
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, dErrors.Newf(dErrors.CodeInvalidInput, "category id %q is not numeric", t)
		}
		return CategoryID(n), nil
	default:
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "unsupported category id type %T", v)
	}
}

// UnmarshalJSON accepts both 3 and "3".
func (id *CategoryID) UnmarshalJSON(b []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode category id: %w", err)
	}
	parsed, err := ParseCategoryID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
