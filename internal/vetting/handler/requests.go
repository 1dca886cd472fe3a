package handler

import (
	"strings"

	"vetting/internal/vetting/models"
	"vetting/internal/vetting/status"
	dErrors "vetting/pkg/domain-errors"
)

// OpenRequest is the HTTP request body for POST /review/open.
type OpenRequest struct {
	NomineeID  string             `json:"nominee_id"`
	CategoryID *models.CategoryID `json:"category_id"`

	parsedNomineeID models.NomineeID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *OpenRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	id, err := models.ParseNomineeID(r.NomineeID)
	if err != nil {
		return err
	}
	r.parsedNomineeID = id
	if r.CategoryID == nil {
		return dErrors.New(dErrors.CodeValidation, "category_id is required")
	}
	return nil
}

// EditRequest is the HTTP request body for POST /review/edits.
type EditRequest struct {
	Fields  models.Data `json:"fields"`
	Replace bool        `json:"replace"`
}

// Validate validates the request.
func (r *EditRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Fields == nil {
		return dErrors.New(dErrors.CodeValidation, "fields is required")
	}
	r.Fields = r.Fields.Clone()
	return nil
}

// AddFieldRequest is the HTTP request body for POST /review/fields.
// Existing defaults to the current working data when omitted.
type AddFieldRequest struct {
	Existing models.Data `json:"existing,omitempty"`
	Updated  models.Data `json:"updated"`
}

// Validate validates the request.
func (r *AddFieldRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Updated) == 0 {
		return dErrors.New(dErrors.CodeValidation, "updated is required")
	}
	r.Existing = r.Existing.Clone()
	r.Updated = r.Updated.Clone()
	return nil
}

// CommitRequest is the HTTP request body for POST /review/commit.
type CommitRequest struct {
	IncludeDuplicates bool `json:"include_duplicates"`
}

// Validate implements Validatable; every body is valid.
func (r *CommitRequest) Validate() error {
	return nil
}

// StatusRequest is the HTTP request body for POST /review/statuses.
// NomineeID defaults to the open nominee; CategoryID is required unless All.
type StatusRequest struct {
	NomineeID  string             `json:"nominee_id,omitempty"`
	CategoryID *models.CategoryID `json:"category_id,omitempty"`
	Action     string             `json:"action"`
	All        bool               `json:"all"`

	parsedNomineeID models.NomineeID
}

// Validate validates and parses the request.
func (r *StatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Action = strings.TrimSpace(r.Action)
	if r.Action == "" {
		return dErrors.New(dErrors.CodeValidation, "action is required")
	}
	if _, err := status.ParseAction(r.Action); err != nil {
		return err
	}
	if !r.All && r.CategoryID == nil {
		return dErrors.New(dErrors.CodeValidation, "category_id is required unless all is set")
	}
	r.parsedNomineeID = models.NomineeID(strings.TrimSpace(r.NomineeID))
	return nil
}
