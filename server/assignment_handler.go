package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"github.com/techagentng/cleancity/server/response"
)

func (s *Server) handleAssignWorker() gin.HandlerFunc {
	return s.handleReportOperation("worker assigned", func(c *gin.Context, actor models.Actor, id uuid.UUID) (*models.Report, error) {
		return s.LifecycleService.AssignNearestWorker(c.Request.Context(), actor, id)
	})
}

func (s *Server) handleUpdateWorkerLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		var req models.WorkerLocationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.BadRequest("invalid request body: %v", err))
			return
		}
		if msgs := models.ValidateStruct(&req); len(msgs) > 0 {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.BadRequest("%s", models.JoinValidation(msgs)))
			return
		}
		location, err := s.LifecycleService.UpdateWorkerLocation(c.Request.Context(), actor, *req.Latitude, *req.Longitude)
		if err != nil {
			s.respondError(c, err)
			return
		}
		response.JSON(c, "location updated", http.StatusOK, location, nil)
	}
}
