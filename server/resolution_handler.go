package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
)

// handleUploadEvidence accepts either a JSON body with an image_url or a
// multipart form whose "image" file is processed and stored first.
func (s *Server) handleUploadEvidence() gin.HandlerFunc {
	return s.handleReportOperation("evidence uploaded", func(c *gin.Context, actor models.Actor, id uuid.UUID) (*models.Report, error) {
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			if err := s.checkEvidenceUploader(c, actor, id); err != nil {
				return nil, err
			}
			imageURL, err := s.storeEvidenceImage(c, id)
			if err != nil {
				return nil, err
			}
			return s.LifecycleService.UploadResolutionEvidence(c.Request.Context(), actor, id, imageURL, c.PostForm("notes"))
		}

		var req models.EvidenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, errs.BadRequest("invalid request body: %v", err)
		}
		if msgs := models.ValidateStruct(&req); len(msgs) > 0 {
			return nil, errs.BadRequest("%s", models.JoinValidation(msgs))
		}
		return s.LifecycleService.UploadResolutionEvidence(c.Request.Context(), actor, id, req.ImageURL, req.Notes)
	})
}

// checkEvidenceUploader rejects callers that the lifecycle would refuse, so
// nothing is written to the bucket for them. The lifecycle checks again under
// the row lock when the evidence is recorded.
func (s *Server) checkEvidenceUploader(c *gin.Context, actor models.Actor, reportID uuid.UUID) error {
	report, err := s.LifecycleService.GetReport(c.Request.Context(), reportID)
	if err != nil {
		return err
	}
	if report.AssignedWorkerID == nil || *report.AssignedWorkerID != actor.ID {
		return errs.ErrNotAssigned
	}
	if report.Status != models.StatusAssigned {
		return errs.InvalidState("cannot upload evidence for a report that is %s", report.Status)
	}
	return nil
}

func (s *Server) storeEvidenceImage(c *gin.Context, reportID uuid.UUID) (string, error) {
	if s.MediaService == nil {
		return "", errs.Unavailable("image uploads are not configured; send an image_url instead")
	}
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return "", errs.BadRequest("an evidence image is required")
	}
	defer file.Close()
	return s.MediaService.ProcessEvidenceImage(c.Request.Context(), reportID, header.Filename, file)
}

func (s *Server) handleMarkResolved() gin.HandlerFunc {
	return s.handleReportOperation("report awaiting confirmation", func(c *gin.Context, actor models.Actor, id uuid.UUID) (*models.Report, error) {
		return s.LifecycleService.WorkerMarkResolved(c.Request.Context(), actor, id)
	})
}

func (s *Server) handleConfirmResolution() gin.HandlerFunc {
	return s.handleReportOperation("report resolved", func(c *gin.Context, actor models.Actor, id uuid.UUID) (*models.Report, error) {
		return s.LifecycleService.AdminConfirmResolution(c.Request.Context(), actor, id)
	})
}

func (s *Server) handleStartWorking() gin.HandlerFunc {
	return s.handleReportOperation("work started", func(c *gin.Context, actor models.Actor, id uuid.UUID) (*models.Report, error) {
		return s.LifecycleService.AdminStartWorking(c.Request.Context(), actor, id)
	})
}
