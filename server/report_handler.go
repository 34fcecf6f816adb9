package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"github.com/techagentng/cleancity/server/response"
)

// reportOperation is the shape shared by every lifecycle call that only
// needs the caller and the report id.
type reportOperation func(c *gin.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error)

// handleReportOperation resolves the actor and :id, runs op and renders the result.
func (s *Server) handleReportOperation(message string, op reportOperation) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		reportID, ok := reportIDParam(c)
		if !ok {
			return
		}
		report, err := op(c, actor, reportID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		response.JSON(c, message, http.StatusOK, report, nil)
	}
}

func reportIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.JSON(c, "", http.StatusBadRequest, nil, errs.BadRequest("invalid report id %q", c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

// respondError renders err with the status its kind maps to. Unexpected
// errors are logged and hidden behind a generic 500.
func (s *Server) respondError(c *gin.Context, err error) {
	if errs.KindOf(err) == errs.KindInternal {
		s.Logger.Errorw("request failed", "path", c.FullPath(), "error", err)
		response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
		return
	}
	response.Error(c, "", err)
}

func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		var req models.CreateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.BadRequest("invalid request body: %v", err))
			return
		}
		report, err := s.LifecycleService.CreateReport(c.Request.Context(), actor, &req)
		if err != nil {
			s.respondError(c, err)
			return
		}
		response.JSON(c, "report created", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleGetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := reportIDParam(c)
		if !ok {
			return
		}
		report, err := s.LifecycleService.GetReport(c.Request.Context(), reportID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, report, nil)
	}
}

func (s *Server) handleWithdrawReport() gin.HandlerFunc {
	return s.handleReportOperation("report withdrawn", func(c *gin.Context, actor models.Actor, id uuid.UUID) (*models.Report, error) {
		return s.LifecycleService.WithdrawReport(c.Request.Context(), actor, id)
	})
}

func (s *Server) handleCastVote() gin.HandlerFunc {
	return s.handleReportOperation("vote recorded", func(c *gin.Context, actor models.Actor, id uuid.UUID) (*models.Report, error) {
		var req models.VoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, errs.BadRequest("invalid request body: %v", err)
		}
		if msgs := models.ValidateStruct(&req); len(msgs) > 0 {
			return nil, errs.BadRequest("%s", models.JoinValidation(msgs))
		}
		return s.LifecycleService.CastVote(c.Request.Context(), actor, id, *req.Support)
	})
}
