package services

import (
	"context"
	"strings"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/mailer"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils/helpers"
)

// EmailService собирает письма приложения и отдаёт их в mailer.
type EmailService struct {
	sender   mailer.Sender
	loginURL string
}

func NewEmailService(sender mailer.Sender, loginURL string) *EmailService {
	return &EmailService{sender: sender, loginURL: loginURL}
}

// SendResetCode отправляет код синхронно: ошибка доставки возвращается клиенту.
func (s *EmailService) SendResetCode(ctx context.Context, acc resettoken.Account, code, link string, ttl time.Duration) error {
	minutes := int(ttl / time.Minute)
	return s.sender.Send(ctx, mailer.Message{
		To:      acc.Email,
		ToName:  acc.Username,
		Subject: "Password reset request",
		HTML:    helpers.BuildResetCodeHTML(code, link, minutes),
		Text:    helpers.BuildResetCodeText(code, link, minutes),
	})
}

func (s *EmailService) ApprovalMessage(t *models.ApprovalTarget) mailer.Message {
	to := t.Recipient()
	name := t.DisplayName()
	return mailer.Message{
		To:      to,
		ToName:  strings.TrimSpace(name),
		Subject: "Your Account Has Been Approved",
		HTML:    helpers.BuildApprovalHTML(name, to, s.loginURL),
		Text:    helpers.BuildApprovalText(name, to, s.loginURL),
	}
}
