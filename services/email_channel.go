package services

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/techagentng/cleancity/models"
)

type mailSender interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// EmailChannel copies admin notifications to their inbox. Citizens and
// workers are reached through push and the live feed instead.
type EmailChannel struct {
	mg   mailSender
	from string
}

func NewEmailChannel(domain, apiKey, from string) *EmailChannel {
	return &EmailChannel{mg: mailgun.NewMailgun(domain, apiKey), from: from}
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) Deliver(ctx context.Context, user *models.User, n *models.Notification) error {
	if user.Role.Name != models.RoleAdmin || user.Email == "" {
		return nil
	}
	message := e.mg.NewMessage(e.from, "CleanCity: report needs attention", n.Message, user.Email)
	_, _, err := e.mg.Send(ctx, message)
	return err
}
