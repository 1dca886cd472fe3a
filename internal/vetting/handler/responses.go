package handler

import (
	"vetting/internal/vetting/models"
	"vetting/internal/vetting/service"
)

// ReviewResponse is the HTTP response body for every review endpoint.
type ReviewResponse struct {
	Nominee         models.Nominee     `json:"nominee"`
	Category        models.Category    `json:"category"`
	Working         models.Data        `json:"working"`
	HasPending      bool               `json:"has_pending"`
	ContainsNull    bool               `json:"contains_null"`
	Status          models.StatusCode  `json:"status"`
	StatusLabel     string             `json:"status_label"`
	Duplicates      []*models.Nominee  `json:"duplicates"`
	OtherCategories []*models.Category `json:"other_categories"`
	AvailableFlags  []string           `json:"available_flags"`
}

// FromReview converts a service review into its response body. Unresolved
// duplicates and categories stay in place as JSON nulls.
func FromReview(r *service.Review) *ReviewResponse {
	resp := &ReviewResponse{
		Nominee:         r.Nominee,
		Category:        r.Category,
		Working:         r.Working,
		HasPending:      r.HasPending,
		ContainsNull:    r.ContainsNull,
		Status:          r.Status,
		StatusLabel:     r.StatusLabel,
		Duplicates:      r.Duplicates,
		OtherCategories: r.OtherCategories,
		AvailableFlags:  r.AvailableFlags,
	}
	if resp.Working == nil {
		resp.Working = models.Data{}
	}
	if resp.Duplicates == nil {
		resp.Duplicates = []*models.Nominee{}
	}
	if resp.OtherCategories == nil {
		resp.OtherCategories = []*models.Category{}
	}
	if resp.AvailableFlags == nil {
		resp.AvailableFlags = []string{}
	}
	return resp
}
