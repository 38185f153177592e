package mailer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Michaelnacaya1234/Accounting-services/internal/config"
)

// Message is a single outgoing email.
type Message struct {
	To      string `json:"to"`
	ToName  string `json:"to_name,omitempty"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the delivery backend from MAIL_DRIVER.
func New(ctx context.Context, cfg *config.Config) (Sender, error) {
	switch cfg.MailDriver {
	case "ses":
		return NewSESSender(ctx, SESOptions{
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			From:      cfg.MailFrom,
			FromName:  cfg.MailFromName,
		})
	case "smtp", "":
		port, err := strconv.Atoi(cfg.SMTPPort)
		if err != nil {
			return nil, fmt.Errorf("SMTP_PORT: %w", err)
		}
		return &SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     port,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		}, nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
	}
}
