package commit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vetting/internal/vetting/edit"
	"vetting/internal/vetting/models"
	"vetting/internal/vetting/ports/mocks"
	"vetting/internal/vetting/status"
	dErrors "vetting/pkg/domain-errors"
)

type CommitterSuite struct {
	suite.Suite
	ctx       context.Context
	submitter *mocks.MockSubmitter
	committer *Committer
	nominee   models.Nominee
}

func TestCommitterSuite(t *testing.T) {
	suite.Run(t, new(CommitterSuite))
}

func (s *CommitterSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.submitter = mocks.NewMockSubmitter(ctrl)

	var err error
	s.committer, err = New(s.submitter)
	s.Require().NoError(err)

	s.nominee = models.NormalizeNominee(models.Nominee{
		ID:         "n",
		Data:       models.Data{"title": "A"},
		Statuses:   map[models.CategoryID]models.StatusCode{3: models.StatusUnvetted},
		Duplicates: []models.NomineeID{"d1", "d2"},
	})
}

func (s *CommitterSuite) TestNewRequiresSubmitter() {
	_, err := New(nil)
	s.Error(err)
}

// =============================================================================
// Data commits
// =============================================================================

func (s *CommitterSuite) TestCommitDataSubmitsPending() {
	session := edit.New(s.nominee.Data)
	_, err := session.ApplyEdit(models.Data{"title": "B"}, false)
	s.Require().NoError(err)

	s.submitter.EXPECT().
		Submit(gomock.Any(), gomock.Any(), models.UpdateKindData).
		DoAndReturn(func(_ context.Context, records []models.Nominee, _ models.UpdateKind) error {
			s.Require().Len(records, 1)
			s.Equal(models.NomineeID("n"), records[0].ID)
			s.Equal(models.Data{"title": "B"}, records[0].Data)
			return nil
		})

	records, err := s.committer.CommitData(s.ctx, session, s.nominee)
	s.Require().NoError(err)
	s.Len(records, 1)
	s.False(session.HasPending())
	s.Equal(models.Data{"title": "B"}, session.Original())
}

func (s *CommitterSuite) TestCommitDataWithoutPendingIsLegal() {
	session := edit.New(s.nominee.Data)

	s.submitter.EXPECT().
		Submit(gomock.Any(), gomock.Any(), models.UpdateKindData).
		DoAndReturn(func(_ context.Context, records []models.Nominee, _ models.UpdateKind) error {
			s.Equal(models.Data{"title": "A"}, records[0].Data)
			return nil
		})

	_, err := s.committer.CommitData(s.ctx, session, s.nominee)
	s.NoError(err)
}

func (s *CommitterSuite) TestCommitDataWithDuplicatesFansOut() {
	session := edit.New(s.nominee.Data)
	_, err := session.ApplyEdit(models.Data{"title": "Corrected"}, false)
	s.Require().NoError(err)

	d1 := models.NormalizeNominee(models.Nominee{ID: "d1", Data: models.Data{"title": "a"}})
	d2 := models.NormalizeNominee(models.Nominee{ID: "d2", Data: models.Data{"name": "other"}})

	var submitted []models.Nominee
	s.submitter.EXPECT().
		Submit(gomock.Any(), gomock.Any(), models.UpdateKindData).
		DoAndReturn(func(_ context.Context, records []models.Nominee, _ models.UpdateKind) error {
			submitted = records
			return nil
		})

	_, err = s.committer.CommitDataWithDuplicates(s.ctx, session, s.nominee, []*models.Nominee{&d1, nil, &d2})
	s.Require().NoError(err)

	s.Require().Len(submitted, 3)
	ids := map[models.NomineeID]bool{}
	for _, r := range submitted {
		ids[r.ID] = true
		s.Equal(models.Data{"title": "Corrected"}, r.Data)
	}
	s.Equal(map[models.NomineeID]bool{"n": true, "d1": true, "d2": true}, ids)

	submitted[1].Data["title"] = "mutated"
	s.Equal("Corrected", submitted[0].Data["title"], "records must not share data")
	s.Equal("a", d1.Data["title"], "inputs are not modified")
}

func (s *CommitterSuite) TestCommitFailurePreservesPending() {
	session := edit.New(s.nominee.Data)
	_, err := session.ApplyEdit(models.Data{"title": "B"}, false)
	s.Require().NoError(err)

	s.submitter.EXPECT().
		Submit(gomock.Any(), gomock.Any(), models.UpdateKindData).
		Return(errors.New("upstream unavailable"))

	_, err = s.committer.CommitData(s.ctx, session, s.nominee)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeCommitFailure))
	s.True(session.HasPending())
	s.Equal(models.Data{"title": "B"}, session.Pending())
}

func (s *CommitterSuite) TestNullValuesBlockCommit() {
	s.Run("in pending", func() {
		session := edit.New(s.nominee.Data)
		_, err := session.ApplyEdit(models.Data{"year": nil}, false)
		s.Require().NoError(err)

		_, err = s.committer.CommitData(s.ctx, session, s.nominee)
		s.True(dErrors.HasCode(err, dErrors.CodeNullAttributeValue))
		s.Contains(err.Error(), "year")
		s.True(session.HasPending())
	})

	s.Run("in original data", func() {
		nominee := s.nominee.Clone()
		nominee.Data["links"] = []any{"x", nil}
		session := edit.New(nominee.Data)

		_, err := s.committer.CommitDataWithDuplicates(s.ctx, session, nominee, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeNullAttributeValue))
	})

	s.Run("in a list nested in a list", func() {
		session := edit.New(s.nominee.Data)
		_, err := session.ApplyEdit(models.Data{"matrix": []any{[]any{"x", nil}}}, false)
		s.Require().NoError(err)
		s.Require().True(session.ContainsNull())

		_, err = s.committer.CommitData(s.ctx, session, s.nominee)
		s.True(dErrors.HasCode(err, dErrors.CodeNullAttributeValue))
		s.Contains(err.Error(), "matrix[0][1]")
		s.True(session.HasPending())
	})
}

// =============================================================================
// Status commits
// =============================================================================

func (s *CommitterSuite) TestCommitStatus() {
	next, _, err := status.Apply(s.nominee, 3, status.ActionApprove)
	s.Require().NoError(err)

	s.submitter.EXPECT().
		Submit(gomock.Any(), gomock.Any(), models.UpdateKindStatus).
		DoAndReturn(func(_ context.Context, records []models.Nominee, _ models.UpdateKind) error {
			s.Require().Len(records, 1)
			s.Equal([]models.StatusChange{{Category: 3, Status: models.StatusApproved}}, records[0].StatusChanges)
			return nil
		})

	s.NoError(s.committer.CommitStatus(s.ctx, next))
}

func (s *CommitterSuite) TestCommitStatusRequiresChanges() {
	err := s.committer.CommitStatus(s.ctx, s.nominee)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *CommitterSuite) TestCommitStatusFailure() {
	next, _, err := status.Apply(s.nominee, 3, status.ActionReject)
	s.Require().NoError(err)

	s.submitter.EXPECT().
		Submit(gomock.Any(), gomock.Any(), models.UpdateKindStatus).
		Return(errors.New("timeout"))

	err = s.committer.CommitStatus(s.ctx, next)
	s.True(dErrors.HasCode(err, dErrors.CodeCommitFailure))
}
