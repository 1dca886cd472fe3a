// Package service runs the per-reviewer review workspace.
//
// Each reviewer has at most one open review: a nominee, the category it is
// being vetted in, and a lazily created edit session. Opening another nominee
// replaces the review and drops its uncommitted edits. Edits are synchronous
// in-memory transitions; only commits and status changes reach the submitter.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"vetting/internal/vetting/commit"
	"vetting/internal/vetting/edit"
	vettingmetrics "vetting/internal/vetting/metrics"
	"vetting/internal/vetting/models"
	"vetting/internal/vetting/ports"
	"vetting/internal/vetting/resolve"
	dErrors "vetting/pkg/domain-errors"
	"vetting/pkg/platform/audit"
	"vetting/pkg/platform/sentinel"
)

const tracerName = "vetting/internal/vetting/service"

// Review is the state a reviewer sees for their open nominee.
type Review struct {
	Nominee         models.Nominee
	Category        models.Category
	Working         models.Data
	HasPending      bool
	ContainsNull    bool
	Status          models.StatusCode
	StatusLabel     string
	Duplicates      []*models.Nominee
	OtherCategories []*models.Category
	AvailableFlags  []string
}

// reviewContext is one reviewer's open nominee. mu serializes operations on it.
type reviewContext struct {
	mu       sync.Mutex
	nominee  models.Nominee
	category models.Category
	session  *edit.Session
}

// workingSession returns the edit session, creating it on first use.
func (rc *reviewContext) workingSession() *edit.Session {
	if rc.session == nil {
		rc.session = edit.New(rc.nominee.Data)
	}
	return rc.session
}

// Service orchestrates review contexts over the vetting engine.
type Service struct {
	nominees       ports.NomineeLookup
	categories     ports.CategoryDirectory
	resolver       *resolve.Resolver
	committer      *commit.Committer
	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *vettingmetrics.Metrics
	tracer         trace.Tracer

	mu      sync.Mutex
	reviews map[string]*reviewContext
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *vettingmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(nominees ports.NomineeLookup, categories ports.CategoryDirectory, submitter ports.Submitter, opts ...Option) (*Service, error) {
	if nominees == nil {
		return nil, errors.New("nominee store is required")
	}
	if categories == nil {
		return nil, errors.New("category store is required")
	}
	committer, err := commit.New(submitter)
	if err != nil {
		return nil, err
	}

	s := &Service{
		nominees:   nominees,
		categories: categories,
		committer:  committer,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
		reviews:    make(map[string]*reviewContext),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.resolver, err = resolve.New(nominees, categories, resolve.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Open loads a nominee for review in a category and makes it the reviewer's
// open review. Any previous review and its uncommitted edits are dropped.
func (s *Service) Open(ctx context.Context, reviewer string, nomineeID models.NomineeID, categoryID models.CategoryID) (*Review, error) {
	if err := requireReviewer(reviewer); err != nil {
		return nil, err
	}
	if nomineeID.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "nominee id is required")
	}

	nominee, err := s.loadNominee(ctx, nomineeID)
	if err != nil {
		return nil, err
	}
	category, err := s.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	rc := &reviewContext{nominee: *nominee, category: *category}

	s.mu.Lock()
	previous, hadPrevious := s.reviews[reviewer]
	s.reviews[reviewer] = rc
	open := len(s.reviews)
	s.mu.Unlock()
	s.metrics.SetOpenReviews(open)

	if hadPrevious {
		previous.mu.Lock()
		dropped := previous.session != nil && previous.session.HasPending()
		previousID := previous.nominee.ID
		previous.mu.Unlock()
		if dropped {
			ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventEditsDiscarded,
				"nominee_id", previousID,
				"reason", "review_replaced",
			)
		}
	}

	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventNomineeOpened,
		"nominee_id", nomineeID,
		"category_id", categoryID,
	)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	return s.view(ctx, rc), nil
}

// View returns the reviewer's open review.
func (s *Service) View(ctx context.Context, reviewer string) (*Review, error) {
	rc, err := s.review(reviewer)
	if err != nil {
		return nil, err
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return s.view(ctx, rc), nil
}

// Close drops the reviewer's open review, discarding uncommitted edits.
func (s *Service) Close(ctx context.Context, reviewer string) error {
	rc, err := s.review(reviewer)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.reviews[reviewer] == rc {
		delete(s.reviews, reviewer)
	}
	open := len(s.reviews)
	s.mu.Unlock()
	s.metrics.SetOpenReviews(open)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.session != nil && rc.session.HasPending() {
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventEditsDiscarded,
			"nominee_id", rc.nominee.ID,
			"reason", "review_closed",
		)
	}
	return nil
}

func (s *Service) review(reviewer string) (*reviewContext, error) {
	if err := requireReviewer(reviewer); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rc, ok := s.reviews[reviewer]
	if !ok {
		return nil, dErrors.New(dErrors.CodeConflict, "no nominee is open for review")
	}
	return rc, nil
}

// view builds the Review for rc. The caller holds rc.mu.
func (s *Service) view(ctx context.Context, rc *reviewContext) *Review {
	v := &Review{
		Nominee:         rc.nominee.Clone(),
		Category:        rc.category,
		Working:         rc.nominee.Data.Clone(),
		ContainsNull:    models.ContainsNull(rc.nominee.Data),
		Status:          rc.nominee.Status(rc.category.ID),
		Duplicates:      s.resolver.Duplicates(ctx, rc.nominee),
		OtherCategories: s.resolver.OtherCategories(ctx, rc.nominee, rc.category.ID),
		AvailableFlags:  rc.category.Flags(),
	}
	v.StatusLabel = v.Status.Label()
	if rc.session != nil {
		v.Working = rc.session.Working()
		v.HasPending = rc.session.HasPending()
		v.ContainsNull = rc.session.ContainsNull()
	}
	return v
}

func (s *Service) loadNominee(ctx context.Context, id models.NomineeID) (*models.Nominee, error) {
	n, err := s.nominees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "nominee %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load nominee")
	}
	normalized := models.NormalizeNominee(*n)
	return &normalized, nil
}

func (s *Service) loadCategory(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "category %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load category")
	}
	return c, nil
}

func requireReviewer(reviewer string) error {
	if strings.TrimSpace(reviewer) == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "reviewer identity is required")
	}
	return nil
}
