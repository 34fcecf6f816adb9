package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
)

// DefaultEscalationThreshold is the number of supporting votes that escalates a pending report.
const DefaultEscalationThreshold = 5

// CastVote records one vote per (report, voter). The vote that brings a
// pending report to the threshold escalates it in the same transaction, and
// admins hear about it once that transaction has committed.
func (s *lifecycleService) CastVote(ctx context.Context, actor models.Actor, reportID uuid.UUID, support bool) (*models.Report, error) {
	vote := &models.Vote{
		ReportID: reportID,
		UserID:   actor.ID,
		Support:  support,
	}
	var (
		escalated  bool
		supporters int64
	)
	report, err := s.voteRepo.RecordVote(ctx, vote,
		func(r *models.Report) error {
			if r.UserID == actor.ID {
				return apiError.ErrOwnReportVote
			}
			if r.Status == models.StatusResolved {
				return apiError.InvalidState("voting is closed on resolved reports")
			}
			return nil
		},
		func(r *models.Report, supportVotes int64) error {
			escalated, supporters = false, supportVotes
			if r.Status != models.StatusPending || supportVotes < int64(s.threshold) {
				return nil
			}
			next, err := nextStatus(r.Status, eventEscalate)
			if err != nil {
				return err
			}
			r.Status = next
			escalated = true
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	if escalated {
		s.logger.Infow("report escalated", "report_id", report.ID, "support_votes", supporters)
		s.notifyAdmins(ctx, report.ID, fmt.Sprintf(
			"Report %q reached %d supporting votes and has been escalated for review.",
			report.Title, supporters,
		))
	}
	return report, nil
}
