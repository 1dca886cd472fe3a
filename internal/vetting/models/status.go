package models

// StatusCode is a nominee's approval status within one category.
type StatusCode int

const (
	StatusRejected StatusCode = -1
	StatusUnvetted StatusCode = 0
	StatusApproved StatusCode = 1
	// StatusSelectedExternally marks entries picked through the public intake
	// typeahead. It is only ever read; no transition produces it.
	StatusSelectedExternally StatusCode = 2
)

// IsKnown reports whether c is one of the defined status codes.
func (c StatusCode) IsKnown() bool {
	switch c {
	case StatusRejected, StatusUnvetted, StatusApproved, StatusSelectedExternally:
		return true
	}
	return false
}

// Label returns the reviewer-facing name. Unknown codes read as Unvetted.
func (c StatusCode) Label() string {
	switch c {
	case StatusRejected:
		return "Rejected"
	case StatusApproved:
		return "Approved"
	case StatusSelectedExternally:
		return "Selected via typeahead"
	default:
		return "Unvetted"
	}
}

// NormalizeStatus maps unrecognized codes to Unvetted.
func NormalizeStatus(c StatusCode) StatusCode {
	if !c.IsKnown() {
		return StatusUnvetted
	}
	return c
}

// StatusChange is the per-category delta attached to a status batch.
type StatusChange struct {
	Category CategoryID `json:"category"`
	Status   StatusCode `json:"status"`
}

// UpdateKind tags a submitted batch.
type UpdateKind string

const (
	UpdateKindData   UpdateKind = "data"
	UpdateKindStatus UpdateKind = "status"
)

// IsValid reports whether k is a known batch kind.
func (k UpdateKind) IsValid() bool {
	return k == UpdateKindData || k == UpdateKindStatus
}
