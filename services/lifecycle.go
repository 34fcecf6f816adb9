package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/techagentng/cleancity/config"
	"github.com/techagentng/cleancity/db"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"github.com/techagentng/cleancity/services/geo"
	"go.uber.org/zap"
)

// LifecycleService owns the report state machine. Every operation returns the
// updated report or a typed *errors.Error.
type LifecycleService interface {
	CreateReport(ctx context.Context, actor models.Actor, req *models.CreateReportRequest) (*models.Report, error)
	GetReport(ctx context.Context, reportID uuid.UUID) (*models.Report, error)
	WithdrawReport(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error)
	CastVote(ctx context.Context, actor models.Actor, reportID uuid.UUID, support bool) (*models.Report, error)
	AssignNearestWorker(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error)
	UpdateWorkerLocation(ctx context.Context, actor models.Actor, lat, lon float64) (*models.WorkerLocation, error)
	UploadResolutionEvidence(ctx context.Context, actor models.Actor, reportID uuid.UUID, imageURL, notes string) (*models.Report, error)
	WorkerMarkResolved(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error)
	AdminConfirmResolution(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error)
	AdminStartWorking(ctx context.Context, actor models.Actor, reportID uuid.UUID) (*models.Report, error)
}

type event string

const (
	eventWithdraw       event = "withdraw"
	eventEscalate       event = "escalate"
	eventAssign         event = "assign"
	eventStartWorking   event = "start work on"
	eventUploadEvidence event = "upload evidence for"
	eventMarkResolved   event = "mark resolved"
	eventConfirm        event = "confirm"
)

type transition struct {
	from []models.ReportStatus
	to   models.ReportStatus
}

var transitions = map[event]transition{
	eventWithdraw:       {from: []models.ReportStatus{models.StatusPending}, to: models.StatusWithdrawn},
	eventEscalate:       {from: []models.ReportStatus{models.StatusPending}, to: models.StatusEscalated},
	eventAssign:         {from: []models.ReportStatus{models.StatusEscalated}, to: models.StatusAssigned},
	eventStartWorking:   {from: []models.ReportStatus{models.StatusPending, models.StatusEscalated}, to: models.StatusWorking},
	eventUploadEvidence: {from: []models.ReportStatus{models.StatusAssigned}, to: models.StatusAssigned},
	eventMarkResolved:   {from: []models.ReportStatus{models.StatusAssigned}, to: models.StatusPendingConfirmation},
	eventConfirm:        {from: []models.ReportStatus{models.StatusPendingConfirmation, models.StatusWorking}, to: models.StatusResolved},
}

// nextStatus applies ev to current, failing with InvalidState when the table
// has no edge for it.
func nextStatus(current models.ReportStatus, ev event) (models.ReportStatus, error) {
	t, ok := transitions[ev]
	if !ok {
		return "", fmt.Errorf("unknown lifecycle event %q", ev)
	}
	for _, from := range t.from {
		if from == current {
			return t.to, nil
		}
	}
	if current == models.StatusResolved {
		return "", apiError.ErrAlreadyResolved
	}
	return "", apiError.InvalidState("cannot %s a report that is %s", ev, current)
}

type lifecycleService struct {
	Config       *config.Config
	reportRepo   db.ReportRepository
	voteRepo     db.VoteRepository
	locationRepo db.WorkerLocationRepository
	userRepo     db.UserRepository
	notifier     Notifier
	distance     geo.Strategy
	threshold    int
	logger       *zap.SugaredLogger
	now          func() time.Time
}

// NewLifecycleService wires the engine to its stores and notification sink.
func NewLifecycleService(
	reportRepo db.ReportRepository,
	voteRepo db.VoteRepository,
	locationRepo db.WorkerLocationRepository,
	userRepo db.UserRepository,
	notifier Notifier,
	conf *config.Config,
	logger *zap.SugaredLogger,
) (LifecycleService, error) {
	distance, err := geo.FromName(conf.DistanceStrategy)
	if err != nil {
		return nil, err
	}
	threshold := conf.EscalationThreshold
	if threshold <= 0 {
		threshold = DefaultEscalationThreshold
	}
	return &lifecycleService{
		Config:       conf,
		reportRepo:   reportRepo,
		voteRepo:     voteRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		distance:     distance,
		threshold:    threshold,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// fanOut delivers message to every recipient. Delivery failures are logged and
// dropped: the transition that triggered them has already committed.
func (s *lifecycleService) fanOut(ctx context.Context, recipients []uint, reportID uuid.UUID, message string) {
	for _, userID := range recipients {
		if err := s.notifier.Notify(ctx, userID, &reportID, message); err != nil {
			s.logger.Warnw("notification dropped",
				"user_id", userID,
				"report_id", reportID,
				"error", err,
			)
		}
	}
}

func (s *lifecycleService) notifyAdmins(ctx context.Context, reportID uuid.UUID, message string) {
	admins, err := s.userRepo.FindUserIDsByRole(ctx, models.RoleAdmin)
	if err != nil {
		s.logger.Errorw("unable to list admins for fan-out", "report_id", reportID, "error", err)
		return
	}
	s.fanOut(ctx, admins, reportID, message)
}

func requireAdmin(actor models.Actor) error {
	if !actor.IsAdmin() {
		return apiError.ErrAdminOnly
	}
	return nil
}
