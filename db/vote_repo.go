package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"gorm.io/gorm"
)

// VoteRepository is the vote ledger.
type VoteRepository interface {
	RecordVote(ctx context.Context, vote *models.Vote, guard func(report *models.Report) error, settle func(report *models.Report, supportVotes int64) error) (*models.Report, error)
}

type voteRepo struct {
	DB *gorm.DB
}

func NewVoteRepo(db *GormDB) VoteRepository {
	return &voteRepo{db.DB}
}

// RecordVote inserts the vote and bumps the matching counter in one
// transaction. A second vote by the same user hits the unique index and
// comes back as ErrAlreadyVoted. settle sees the report and its supporting
// vote count while the row is still locked; a status it sets is saved in the
// same transaction.
func (v *voteRepo) RecordVote(ctx context.Context, vote *models.Vote, guard func(report *models.Report) error, settle func(report *models.Report, supportVotes int64) error) (*models.Report, error) {
	var report models.Report
	err := v.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockReport(tx, vote.ReportID, &report); err != nil {
			return err
		}
		if err := guard(&report); err != nil {
			return err
		}

		if err := voteInsertError(tx.Create(vote).Error); err != nil {
			return err
		}

		column := "opposition_count"
		if vote.Support {
			column = "support_count"
		}
		err := tx.Model(&models.Report{}).
			Where("id = ?", vote.ReportID).
			UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
		if err != nil {
			return errors.Wrapf(err, "failed to update %s", column)
		}
		if err := tx.First(&report, "id = ?", vote.ReportID).Error; err != nil {
			return errors.Wrap(err, "failed to reload report")
		}

		var supporters int64
		if err := supportVotes(tx, vote.ReportID).Count(&supporters).Error; err != nil {
			return errors.Wrap(err, "failed to count votes")
		}
		status := report.Status
		if err := settle(&report, supporters); err != nil {
			return err
		}
		if report.Status != status {
			err := tx.Model(&models.Report{}).Where("id = ?", report.ID).Update("status", report.Status).Error
			if err != nil {
				return errors.Wrap(err, "failed to update report status")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func supportVotes(tx *gorm.DB, reportID uuid.UUID) *gorm.DB {
	return tx.Model(&models.Vote{}).Where("report_id = ? AND support = ?", reportID, true)
}

// voteInsertError maps an insert failure; a unique index hit means the user already voted.
func voteInsertError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apiError.ErrAlreadyVoted
	}
	return errors.Wrap(err, "failed to record vote")
}
