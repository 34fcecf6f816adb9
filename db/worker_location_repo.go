package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/techagentng/cleancity/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkerLocationRepository interface {
	UpsertWorkerLocation(ctx context.Context, location *models.WorkerLocation) error
	ListWorkerLocations(ctx context.Context) ([]models.WorkerLocation, error)
}

type workerLocationRepo struct {
	DB *gorm.DB
}

func NewWorkerLocationRepo(db *GormDB) WorkerLocationRepository {
	return &workerLocationRepo{db.DB}
}

func (w *workerLocationRepo) UpsertWorkerLocation(ctx context.Context, location *models.WorkerLocation) error {
	err := upsertByWorker(w.DB.WithContext(ctx)).Create(location).Error
	if err != nil {
		return errors.Wrap(err, "failed to save worker location")
	}
	return nil
}

// upsertByWorker turns an insert into an update of the worker's existing row.
func upsertByWorker(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "worker_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "updated_at"}),
	})
}

// ListWorkerLocations returns every current location ordered by worker id.
func (w *workerLocationRepo) ListWorkerLocations(ctx context.Context) ([]models.WorkerLocation, error) {
	var locations []models.WorkerLocation
	if err := w.DB.WithContext(ctx).Order("worker_id").Find(&locations).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list worker locations")
	}
	return locations, nil
}
