package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"vetting/internal/vetting/models"
	categorystore "vetting/internal/vetting/store/category"
	nomineestore "vetting/internal/vetting/store/nominee"
)

type failingLookup struct{}

func (failingLookup) FindByID(context.Context, models.NomineeID) (*models.Nominee, error) {
	return nil, errors.New("connection refused")
}

type ResolverSuite struct {
	suite.Suite
	ctx        context.Context
	nominees   *nomineestore.InMemoryStore
	categories *categorystore.InMemoryStore
	resolver   *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.nominees = nomineestore.NewInMemoryStore()
	s.categories = categorystore.NewInMemoryStore()

	for _, id := range []models.NomineeID{"d1", "d3"} {
		s.Require().NoError(s.nominees.Save(s.ctx, models.Nominee{ID: id, Data: models.Data{"title": string(id)}}))
	}
	for _, c := range []models.Category{
		{ID: 1, Name: "Fic", Kind: models.KindFic},
		{ID: 3, Name: "Art", Kind: models.KindArt},
		{ID: 5, Name: "Other", Kind: models.KindOther},
	} {
		s.Require().NoError(s.categories.Save(s.ctx, c))
	}

	var err error
	s.resolver, err = New(s.nominees, s.categories, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)
}

func (s *ResolverSuite) TestNewRequiresCollaborators() {
	_, err := New(nil, s.categories)
	s.Error(err)
	_, err = New(s.nominees, nil)
	s.Error(err)
}

func (s *ResolverSuite) TestDuplicatesPreserveOrderAndMisses() {
	nominee := models.Nominee{ID: "n", Duplicates: []models.NomineeID{"d3", "d2", "d1"}}

	got := s.resolver.Duplicates(s.ctx, nominee)

	s.Require().Len(got, 3)
	s.Equal(models.NomineeID("d3"), got[0].ID)
	s.Nil(got[1])
	s.Equal(models.NomineeID("d1"), got[2].ID)
	s.Len(Resolved(got), 2)
}

func (s *ResolverSuite) TestDuplicatesDegradeOnLookupErrors() {
	resolver, err := New(failingLookup{}, s.categories, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)

	got := resolver.Duplicates(s.ctx, models.Nominee{ID: "n", Duplicates: []models.NomineeID{"d1"}})
	s.Require().Len(got, 1)
	s.Nil(got[0])
}

func (s *ResolverSuite) TestNoDuplicates() {
	s.Nil(s.resolver.Duplicates(s.ctx, models.Nominee{ID: "n"}))
}

func (s *ResolverSuite) TestOtherCategoriesExcludesCurrent() {
	var nominee models.Nominee
	s.Require().NoError(json.Unmarshal([]byte(`{"id":"n","statuses":{"1":0,"3":1,"5":-1,"7":0}}`), &nominee))

	for _, current := range []any{3, "3", float64(3), json.Number("3")} {
		id, err := models.ParseCategoryID(current)
		s.Require().NoError(err)

		got := s.resolver.OtherCategories(s.ctx, nominee, id)

		s.Require().Len(got, 3)
		s.Equal(models.CategoryID(1), got[0].ID)
		s.Equal(models.CategoryID(5), got[1].ID)
		s.Nil(got[2], "category 7 is not in the directory")
		for _, c := range Resolved(got) {
			s.NotEqual(models.CategoryID(3), c.ID)
		}
	}
}
