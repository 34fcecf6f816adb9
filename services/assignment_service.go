package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"github.com/techagentng/cleancity/services/geo"
)

// AssignNearestWorker binds an escalated field-dispatch report to the worker
// whose last known location is closest to it.
func (s *lifecycleService) AssignNearestWorker(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	report, err := s.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Type.IsInfraRequest() {
		return nil, apiError.ErrInfraRequest
	}
	if _, err := nextStatus(report.Status, eventAssign); err != nil {
		return nil, err
	}

	locations, err := s.locationRepo.ListWorkerLocations(ctx)
	if err != nil {
		return nil, err
	}
	nearest, ok := nearestWorker(locations, geo.Point{Lat: report.Latitude, Lon: report.Longitude}, s.distance)
	if !ok {
		return nil, apiError.ErrNoWorkers
	}

	updated, err := s.reportRepo.UpdateReportTx(ctx, reportID, func(r *models.Report) error {
		next, err := nextStatus(r.Status, eventAssign)
		if err != nil {
			return err
		}
		workerID := nearest.WorkerID
		r.AssignedWorkerID = &workerID
		r.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("report assigned",
		"report_id", updated.ID,
		"worker_id", nearest.WorkerID,
		"strategy", s.distance.Name(),
	)
	s.fanOut(ctx, []uint{nearest.WorkerID}, updated.ID, fmt.Sprintf(
		"You have been assigned report %q at (%.5f, %.5f).", updated.Title, updated.Latitude, updated.Longitude,
	))
	s.fanOut(ctx, []uint{updated.UserID}, updated.ID, fmt.Sprintf(
		"Your report %q has been assigned to a field worker.", updated.Title,
	))
	return updated, nil
}

// nearestWorker picks the minimum-distance location. Equal distances go to
// the lowest worker id so the choice does not depend on store order.
func nearestWorker(locations []models.WorkerLocation, target geo.Point, strategy geo.Strategy) (models.WorkerLocation, bool) {
	var (
		best     models.WorkerLocation
		bestDist float64
		found    bool
	)
	for _, loc := range locations {
		d := strategy.Distance(target, geo.Point{Lat: loc.Latitude, Lon: loc.Longitude})
		if !found || d < bestDist || (d == bestDist && loc.WorkerID < best.WorkerID) {
			best, bestDist, found = loc, d, true
		}
	}
	return best, found
}

// UpdateWorkerLocation replaces the calling worker's last known position.
func (s *lifecycleService) UpdateWorkerLocation(ctx context.Context, actor models.Actor, lat, lon float64) (*models.WorkerLocation, error) {
	if !actor.IsWorker() {
		return nil, apiError.ErrWorkerOnly
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, apiError.BadRequest("coordinates out of range: (%f, %f)", lat, lon)
	}
	location := &models.WorkerLocation{
		WorkerID:  actor.ID,
		Latitude:  lat,
		Longitude: lon,
		UpdatedAt: s.now(),
	}
	if err := s.locationRepo.UpsertWorkerLocation(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}
