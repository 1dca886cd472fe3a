package review

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "vetting/internal/jwt_token"
	"vetting/internal/vetting/adapters"
	"vetting/internal/vetting/handler"
	"vetting/internal/vetting/models"
	"vetting/internal/vetting/service"
	categorystore "vetting/internal/vetting/store/category"
	nomineestore "vetting/internal/vetting/store/nominee"
	audit "vetting/pkg/platform/audit"
	"vetting/pkg/platform/audit/publisher"
	auditmemory "vetting/pkg/platform/audit/store/memory"
	authmw "vetting/pkg/platform/middleware/auth"
	"vetting/pkg/platform/middleware/request"
	"vetting/pkg/testutil"
)

type stack struct {
	router   http.Handler
	nominees *nomineestore.InMemoryStore
	audit    *auditmemory.InMemoryStore
	token    string
}

func newStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	categories := categorystore.NewInMemoryStore()
	require.NoError(t, categories.Save(ctx, models.Category{ID: 1, Name: "Best Fic", Kind: models.KindFic}))
	require.NoError(t, categories.Save(ctx, models.Category{ID: 2, Name: "Best Longfic", Kind: models.KindFic}))

	nominees := nomineestore.NewInMemoryStore()
	require.NoError(t, nominees.Save(ctx, models.Nominee{
		ID:         "n1",
		Data:       models.Data{"title": "Small Hours", "author": "Rin"},
		Statuses:   map[models.CategoryID]models.StatusCode{1: models.StatusUnvetted, 2: models.StatusUnvetted},
		Duplicates: []models.NomineeID{"n2"},
		Kind:       models.KindFic,
	}))
	require.NoError(t, nominees.Save(ctx, models.Nominee{
		ID:       "n2",
		Data:     models.Data{"title": "small hours", "author": "rin"},
		Statuses: map[models.CategoryID]models.StatusCode{2: models.StatusUnvetted},
		Kind:     models.KindFic,
	}))

	auditStore := auditmemory.NewInMemoryStore()
	auditPublisher := publisher.NewPublisher(auditStore)

	submitter, err := adapters.NewStoreSubmitter(nominees,
		adapters.WithAuditPublisher(auditPublisher),
		adapters.WithSubmitterLogger(logger),
	)
	require.NoError(t, err)
	svc, err := service.New(nominees, categories, submitter,
		service.WithLogger(logger),
		service.WithAuditPublisher(auditPublisher),
	)
	require.NoError(t, err)

	tokens := jwttoken.NewJWTService("integration-signing-key", "vetting", "vetting-api")
	token, err := tokens.GenerateReviewerToken("rev-1", "Rin", time.Hour)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireReviewer(tokens, logger))
		handler.New(svc, logger).Register(r)
	})

	return &stack{router: r, nominees: nominees, audit: auditStore, token: token}
}

func (s *stack) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	req := testutil.WithBearer(testutil.NewJSONRequest(t, method, path, body), s.token)
	return testutil.DoRequest(s.router, req).Result()
}

func TestReviewFlow(t *testing.T) {
	testutil.Given(t, "a nominee with one duplicate", func(t *testing.T) {
		s := newStack(t)
		ctx := context.Background()

		testutil.When(t, "the request carries no token", func(t *testing.T) {
			rr := testutil.DoRequest(s.router, testutil.NewRequest(t, http.MethodGet, "/review"))

			testutil.Then(t, "it is rejected", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusUnauthorized)
			})
		})

		testutil.When(t, "the reviewer opens, edits and commits with duplicates", func(t *testing.T) {
			resp := s.do(t, http.MethodPost, "/review/open", map[string]any{"nominee_id": "n1", "category_id": 2})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			resp = s.do(t, http.MethodPost, "/review/edits", map[string]any{"fields": map[string]any{"title": "Small Hours (revised)"}})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			resp = s.do(t, http.MethodPost, "/review/commit", map[string]any{"include_duplicates": true})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			testutil.Then(t, "both records carry the new title and the review is clean", func(t *testing.T) {
				for _, id := range []models.NomineeID{"n1", "n2"} {
					n, err := s.nominees.FindByID(ctx, id)
					require.NoError(t, err)
					assert.Equal(t, "Small Hours (revised)", n.Data["title"])
				}
				rr := testutil.DoRequest(s.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/review"), s.token))
				testutil.AssertStatusOK(t, rr)
				testutil.AssertJSONContains(t, rr, "has_pending", false)
			})
		})

		testutil.When(t, "the reviewer rejects the duplicate in every category", func(t *testing.T) {
			resp := s.do(t, http.MethodPost, "/review/statuses", map[string]any{"nominee_id": "n2", "action": "reject", "all": true})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			testutil.Then(t, "the duplicate is rejected and audited", func(t *testing.T) {
				n, err := s.nominees.FindByID(ctx, "n2")
				require.NoError(t, err)
				assert.Equal(t, models.StatusRejected, n.Statuses[2])

				events, err := s.audit.ListBySubject(ctx, "n2")
				require.NoError(t, err)
				var actions []string
				for _, e := range events {
					actions = append(actions, e.Action)
				}
				assert.Contains(t, actions, string(audit.EventNomineeStatusChanged))
				assert.Contains(t, actions, string(audit.EventNomineeDataUpdated))
			})
		})

		testutil.When(t, "the reviewer sends an unknown action", func(t *testing.T) {
			rr := testutil.DoRequest(s.router, testutil.WithBearer(
				testutil.NewJSONRequest(t, http.MethodPost, "/review/statuses", map[string]any{"category_id": 1, "action": "promote"}),
				s.token,
			))

			testutil.Then(t, "it is a client error", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "unrecognized_action")
			})
		})
	})
}
