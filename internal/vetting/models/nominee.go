package models

import (
	"sort"
	"strings"
)

// Nominee is a submitted entry under review.
type Nominee struct {
	ID          NomineeID                 `json:"id"`
	Data        Data                      `json:"data"`
	Statuses    map[CategoryID]StatusCode `json:"statuses"`
	Duplicates  []NomineeID               `json:"duplicates,omitempty"`
	NominatedBy string                    `json:"nominatedBy,omitempty"`
	Kind        Kind                      `json:"kind"`

	// StatusChanges is only populated on records inside a status batch.
	StatusChanges []StatusChange `json:"statusChanges,omitempty"`
}

// Clone returns an independent deep copy of n.
func (n Nominee) Clone() Nominee {
	out := n
	out.Data = n.Data.Clone()
	if n.Statuses != nil {
		out.Statuses = make(map[CategoryID]StatusCode, len(n.Statuses))
		for k, v := range n.Statuses {
			out.Statuses[k] = v
		}
	}
	if n.Duplicates != nil {
		out.Duplicates = append([]NomineeID(nil), n.Duplicates...)
	}
	if n.StatusChanges != nil {
		out.StatusChanges = append([]StatusChange(nil), n.StatusChanges...)
	}
	return out
}

// Status returns the status for a category, defaulting to Unvetted when absent
// or unrecognized.
func (n Nominee) Status(category CategoryID) StatusCode {
	code, ok := n.Statuses[category]
	if !ok {
		return StatusUnvetted
	}
	return NormalizeStatus(code)
}

// CategoryIDs returns the categories the nominee was entered into, ascending.
func (n Nominee) CategoryIDs() []CategoryID {
	ids := make([]CategoryID, 0, len(n.Statuses))
	for id := range n.Statuses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// InferKind tags a nominee from its attributes. It runs once at load time.
func InferKind(d Data) Kind {
	if truthy(d["artist"]) {
		return KindArt
	}
	if truthy(d["links"]) {
		return KindFic
	}
	return KindOther
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// NormalizeNominee prepares a freshly loaded nominee: numbers become float64,
// duplicates are trimmed and deduplicated (self references dropped), and the
// kind tag is computed when missing.
func NormalizeNominee(n Nominee) Nominee {
	out := n.Clone()
	if out.Data == nil {
		out.Data = Data{}
	}
	if out.Statuses == nil {
		out.Statuses = map[CategoryID]StatusCode{}
	}
	out.Duplicates = normalizeDuplicates(out.ID, out.Duplicates)
	if !out.Kind.IsValid() {
		out.Kind = InferKind(out.Data)
	}
	return out
}

func normalizeDuplicates(self NomineeID, ids []NomineeID) []NomineeID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[NomineeID]struct{}, len(ids))
	result := make([]NomineeID, 0, len(ids))
	for _, id := range ids {
		trimmed := NomineeID(strings.TrimSpace(string(id)))
		if trimmed == "" || trimmed == self {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
