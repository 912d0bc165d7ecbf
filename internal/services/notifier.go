package services

import (
	"context"
	"fmt"
	"strings"

	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
	"github.com/statera-app/statera-backend/internal/platform/sendgrid"
)

// Notifier delivers one announcement to one member. Implementations may fail
// per call; the batch notifier isolates those failures.
type Notifier interface {
	Notify(ctx context.Context, member *types.Member, ann *types.Announcement) error
}

type emailNotifier struct {
	log  *logger.Logger
	mail sendgrid.Client
}

func NewEmailNotifier(log *logger.Logger, mail sendgrid.Client) Notifier {
	return &emailNotifier{
		log:  log.With("service", "EmailNotifier"),
		mail: mail,
	}
}

// logNotifier is the dev fallback used when no mail provider is configured.
type logNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{log: log.With("service", "LogNotifier")}
}

func (n *logNotifier) Notify(ctx context.Context, member *types.Member, ann *types.Announcement) error {
	if member == nil || ann == nil {
		return fmt.Errorf("notify requires member and announcement")
	}
	n.log.Info("announcement delivery (log only)",
		"announcement_id", ann.ID, "member_id", member.ID, "email", member.Email)
	return nil
}

func (n *emailNotifier) Notify(ctx context.Context, member *types.Member, ann *types.Announcement) error {
	if member == nil || ann == nil {
		return fmt.Errorf("notify requires member and announcement")
	}
	if strings.TrimSpace(member.Email) == "" {
		return fmt.Errorf("member %s has no email", member.ID)
	}

	_, err := n.mail.Send(ctx, sendgrid.SendEmailRequest{
		To: []sendgrid.EmailAddress{{
			Email: member.Email,
			Name:  strings.TrimSpace(member.FirstName + " " + member.LastName),
		}},
		Subject:    ann.Title,
		Text:       ann.Body,
		Categories: []string{"announcement"},
		CustomArgs: map[string]string{
			"announcement_id": ann.ID.String(),
			"member_id":       member.ID.String(),
		},
	})
	return err
}
