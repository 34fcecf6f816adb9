package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/techagentng/cleancity/db"
	"github.com/techagentng/cleancity/models"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/notifier_mock.go -package=mocks github.com/techagentng/cleancity/services Notifier

// Notifier is the sink the lifecycle engine reports to. A nil reportID marks
// a notice that is not about any report.
type Notifier interface {
	Notify(ctx context.Context, userID uint, reportID *uuid.UUID, message string) error
}

// Channel pushes an already persisted notification somewhere the user will see it.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, user *models.User, notification *models.Notification) error
}

// NotificationService persists every notification and then offers it to each
// delivery channel. Only the persistence step can fail the call.
type NotificationService struct {
	notificationRepo db.NotificationRepository
	userRepo         db.UserRepository
	channels         []Channel
	logger           *zap.SugaredLogger
}

func NewNotificationService(notificationRepo db.NotificationRepository, userRepo db.UserRepository, logger *zap.SugaredLogger, channels ...Channel) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		channels:         channels,
		logger:           logger,
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID uint, reportID *uuid.UUID, message string) error {
	notification := &models.Notification{
		UserID:   userID,
		ReportID: reportID,
		Message:  message,
	}
	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		return err
	}
	if len(s.channels) == 0 {
		return nil
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.logger.Warnw("notification stored but recipient lookup failed", "user_id", userID, "error", err)
		return nil
	}
	for _, ch := range s.channels {
		if err := ch.Deliver(ctx, user, notification); err != nil {
			s.logger.Warnw("notification channel failed",
				"channel", ch.Name(),
				"user_id", userID,
				"notification_id", notification.ID,
				"error", err,
			)
		}
	}
	return nil
}
