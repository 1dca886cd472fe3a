package testutil

import (
	"net/http"

	"vetting/pkg/requestcontext"
)

// WithReviewerID adds a reviewer ID to the request context, as the auth
// middleware does for authenticated requests. Blank IDs are not added.
func WithReviewerID(req *http.Request, reviewerID string) *http.Request {
	if reviewerID == "" {
		return req
	}
	return req.WithContext(requestcontext.WithReviewerID(req.Context(), reviewerID))
}

// WithBearer sets the Authorization header to a bearer token.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
