package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/techagentng/cleancity/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (n *notificationRepo) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if err := n.DB.WithContext(ctx).Create(notification).Error; err != nil {
		return errors.Wrap(err, "failed to save notification")
	}
	return nil
}
