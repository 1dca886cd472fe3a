// Package status implements the per-category approval transitions.
package status

import (
	"strings"

	"vetting/internal/vetting/models"
	dErrors "vetting/pkg/domain-errors"
)

// Action is a reviewer's status command.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionReset   Action = "reset"
)

// ParseAction validates an action name. Unknown actions are rejected instead of
// defaulting to Unvetted so caller bugs surface.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Transition(a); err != nil {
		return "", err
	}
	return a, nil
}

// Transition returns the status an action leads to. Transitions are direct and
// independent of the prior status.
func Transition(a Action) (models.StatusCode, error) {
	switch a {
	case ActionApprove:
		return models.StatusApproved, nil
	case ActionReject:
		return models.StatusRejected, nil
	case ActionReset:
		return models.StatusUnvetted, nil
	default:
		return 0, dErrors.Newf(dErrors.CodeUnrecognizedAction, "unrecognized status action %q: must be approve, reject, or reset", string(a))
	}
}

// Apply sets the status of one category on a copy of nominee and attaches the
// single-element change list the status batch carries. The input is not modified.
func Apply(nominee models.Nominee, category models.CategoryID, a Action) (models.Nominee, models.StatusChange, error) {
	code, err := Transition(a)
	if err != nil {
		return models.Nominee{}, models.StatusChange{}, err
	}
	change := models.StatusChange{Category: category, Status: code}

	next := nominee.Clone()
	if next.Statuses == nil {
		next.Statuses = map[models.CategoryID]models.StatusCode{}
	}
	next.Statuses[category] = code
	next.StatusChanges = []models.StatusChange{change}
	return next, change, nil
}

// ApplyAll applies the action to every category the nominee was entered into.
// Changes are ordered by category ID.
func ApplyAll(nominee models.Nominee, a Action) (models.Nominee, []models.StatusChange, error) {
	code, err := Transition(a)
	if err != nil {
		return models.Nominee{}, nil, err
	}
	categories := nominee.CategoryIDs()
	if len(categories) == 0 {
		return models.Nominee{}, nil, dErrors.Newf(dErrors.CodeValidation, "nominee %s is not entered in any category", nominee.ID)
	}

	next := nominee.Clone()
	changes := make([]models.StatusChange, 0, len(categories))
	for _, category := range categories {
		next.Statuses[category] = code
		changes = append(changes, models.StatusChange{Category: category, Status: code})
	}
	next.StatusChanges = changes
	return next, changes, nil
}
