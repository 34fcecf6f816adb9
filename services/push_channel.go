package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/techagentng/cleancity/models"
	"google.golang.org/api/option"
)

type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushChannel delivers notifications to the user's device through Firebase Cloud Messaging.
type PushChannel struct {
	client messageSender
}

func NewPushChannel(ctx context.Context, credentialsFile string) (*PushChannel, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &PushChannel{client: client}, nil
}

func (p *PushChannel) Name() string { return "fcm" }

func (p *PushChannel) Deliver(ctx context.Context, user *models.User, n *models.Notification) error {
	if user.DeviceToken == "" {
		return nil
	}
	data := map[string]string{"notification_id": fmt.Sprint(n.ID)}
	if n.ReportID != nil {
		data["report_id"] = n.ReportID.String()
	}
	_, err := p.client.Send(ctx, &messaging.Message{
		Token: user.DeviceToken,
		Notification: &messaging.Notification{
			Title: "CleanCity",
			Body:  n.Message,
		},
		Data: data,
	})
	return err
}
