package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
)

func requireAssignedWorker(actor models.Actor, r *models.Report) error {
	if r.AssignedWorkerID == nil || *r.AssignedWorkerID != actor.ID {
		return apiError.ErrNotAssigned
	}
	return nil
}

// UploadResolutionEvidence attaches the worker's proof of remediation. The
// status does not change; admins are told evidence is waiting.
func (s *lifecycleService) UploadResolutionEvidence(ctx context.Context, actor models.Actor, reportID uuid.UUID, imageURL, notes string) (*models.Report, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, apiError.BadRequest("an evidence image is required")
	}
	notes = strings.TrimSpace(notes)

	updated, err := s.reportRepo.UpdateReportTx(ctx, reportID, func(r *models.Report) error {
		if err := requireAssignedWorker(actor, r); err != nil {
			return err
		}
		next, err := nextStatus(r.Status, eventUploadEvidence)
		if err != nil {
			return err
		}
		r.ResolutionImageURL = &imageURL
		r.ResolutionNotes = &notes
		r.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("resolution evidence uploaded", "report_id", reportID, "worker_id", actor.ID)
	s.notifyAdmins(ctx, reportID, fmt.Sprintf("A worker uploaded resolution evidence for report %q.", updated.Title))
	return updated, nil
}

// WorkerMarkResolved hands the report to admins for confirmation.
func (s *lifecycleService) WorkerMarkResolved(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error) {
	updated, err := s.reportRepo.UpdateReportTx(ctx, reportID, func(r *models.Report) error {
		if err := requireAssignedWorker(actor, r); err != nil {
			return err
		}
		next, err := nextStatus(r.Status, eventMarkResolved)
		if err != nil {
			return err
		}
		if !r.HasEvidence() {
			return apiError.ErrEvidenceMissing
		}
		r.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("report marked resolved by worker", "report_id", reportID, "worker_id", actor.ID)
	s.notifyAdmins(ctx, reportID, fmt.Sprintf("Report %q was marked resolved and is awaiting your confirmation.", updated.Title))
	return updated, nil
}

// AdminConfirmResolution closes a report after worker completion or, for
// infrastructure requests, after admin-driven work.
func (s *lifecycleService) AdminConfirmResolution(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	updated, err := s.reportRepo.UpdateReportTx(ctx, reportID, func(r *models.Report) error {
		next, err := nextStatus(r.Status, eventConfirm)
		if err != nil {
			return err
		}
		r.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("report resolved", "report_id", reportID, "admin_id", actor.ID)
	s.fanOut(ctx, []uint{updated.UserID}, reportID, fmt.Sprintf("Your report %q has been resolved. Thank you!", updated.Title))
	return updated, nil
}

// AdminStartWorking moves a bin or toilet request straight into work,
// bypassing worker assignment.
func (s *lifecycleService) AdminStartWorking(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	updated, err := s.reportRepo.UpdateReportTx(ctx, reportID, func(r *models.Report) error {
		if !r.Type.IsInfraRequest() {
			return apiError.ErrNotInfraRequest
		}
		next, err := nextStatus(r.Status, eventStartWorking)
		if err != nil {
			return err
		}
		r.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("infrastructure request in progress", "report_id", reportID, "admin_id", actor.ID)
	s.fanOut(ctx, []uint{updated.UserID}, reportID, fmt.Sprintf("Work has started on your request %q.", updated.Title))
	return updated, nil
}
