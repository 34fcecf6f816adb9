package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportRepository is the durable store for reports. Every state change goes
// through UpdateReportTx or DeleteReportTx so the guard and the write share a
// transaction and a row lock.
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) (*models.Report, error)
	GetReportByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	UpdateReportTx(ctx context.Context, id uuid.UUID, mutate func(report *models.Report) error) (*models.Report, error)
	DeleteReportTx(ctx context.Context, id uuid.UUID, guard func(report *models.Report) error) (*models.Report, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

func (r *reportRepo) CreateReport(ctx context.Context, report *models.Report) (*models.Report, error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if err := r.DB.WithContext(ctx).Create(report).Error; err != nil {
		return nil, errors.Wrap(err, "failed to save report")
	}
	return report, nil
}

func (r *reportRepo) GetReportByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.DB.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "failed to load report")
	}
	return &report, nil
}

func (r *reportRepo) UpdateReportTx(ctx context.Context, id uuid.UUID, mutate func(report *models.Report) error) (*models.Report, error) {
	var report models.Report
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockReport(tx, id, &report); err != nil {
			return err
		}
		if err := mutate(&report); err != nil {
			return err
		}
		if err := tx.Save(&report).Error; err != nil {
			return errors.Wrap(err, "failed to update report")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) DeleteReportTx(ctx context.Context, id uuid.UUID, guard func(report *models.Report) error) (*models.Report, error) {
	var report models.Report
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockReport(tx, id, &report); err != nil {
			return err
		}
		if err := guard(&report); err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete report votes")
		}
		if err := tx.Delete(&models.Report{}, "id = ?", id).Error; err != nil {
			return errors.Wrap(err, "failed to delete report")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// lockReport loads the report row with SELECT ... FOR UPDATE.
func lockReport(tx *gorm.DB, id uuid.UUID, report *models.Report) error {
	err := lockedReport(tx, id).First(report).Error
	if err != nil {
		return notFoundOr(err, "failed to lock report")
	}
	return nil
}

func lockedReport(tx *gorm.DB, id uuid.UUID) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError.ErrReportNotFound
	}
	return errors.Wrap(err, msg)
}
