package services

import (
	"context"

	"github.com/google/uuid"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
)

func (s *lifecycleService) CreateReport(ctx context.Context, actor models.Actor, req *models.CreateReportRequest) (*models.Report, error) {
	if msgs := models.ValidateStruct(req); len(msgs) > 0 {
		return nil, apiError.BadRequest("%s", models.JoinValidation(msgs))
	}
	if !req.Type.Valid() {
		return nil, apiError.BadRequest("unknown report type %q", req.Type)
	}

	report := &models.Report{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Address:     req.Address,
		Landmark:    req.Landmark,
		Status:      models.StatusPending,
		UserID:      actor.ID,
	}
	saved, err := s.reportRepo.CreateReport(ctx, report)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("report created", "report_id", saved.ID, "type", saved.Type, "creator_id", actor.ID)
	return saved, nil
}

func (s *lifecycleService) GetReport(ctx context.Context, reportID uuid.UUID) (*models.Report, error) {
	return s.reportRepo.GetReportByID(ctx, reportID)
}

// WithdrawReport removes a still-pending report and its votes. The returned
// projection carries the withdrawn status; the row itself no longer exists.
func (s *lifecycleService) WithdrawReport(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error) {
	report, err := s.reportRepo.DeleteReportTx(ctx, reportID, func(r *models.Report) error {
		if r.UserID != actor.ID {
			return apiError.ErrNotCreator
		}
		next, err := nextStatus(r.Status, eventWithdraw)
		if err != nil {
			return err
		}
		r.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("report withdrawn", "report_id", reportID, "creator_id", actor.ID)
	return report, nil
}
