package services

import (
	"context"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/mailer"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"

	"go.uber.org/zap"
)

type ClientRepo interface {
	GetApprovalTarget(ctx context.Context, userID int64) (*models.ApprovalTarget, error)
	SetStatus(ctx context.Context, clientID int64, status int) error
}

type MailQueue interface {
	Enqueue(ctx context.Context, msg mailer.Message) error
}

type ApprovalOutcome int

const (
	ApprovalNotified ApprovalOutcome = iota
	ApprovalNoEmail
	ApprovalEmailFailed
)

type ClientService struct {
	repo   ClientRepo
	emails *EmailService
	queue  MailQueue
}

func NewClientService(repo ClientRepo, emails *EmailService, queue MailQueue) *ClientService {
	return &ClientService{repo: repo, emails: emails, queue: queue}
}

// Approve активирует клиента и ставит письмо в очередь. Ошибка письма
// не отменяет одобрение.
func (s *ClientService) Approve(ctx context.Context, userID int64) (ApprovalOutcome, error) {
	if userID <= 0 {
		return 0, ErrInvalidInput
	}

	target, err := s.repo.GetApprovalTarget(ctx, userID)
	if err != nil {
		return 0, err
	}
	if target.ClientID == nil {
		return 0, ErrNoClientRecord
	}

	if err := s.repo.SetStatus(ctx, *target.ClientID, models.ClientStatusActive); err != nil {
		return 0, err
	}
	logger.WithCtx(ctx).Info("Клиент одобрен", zap.Int64("user_id", userID), zap.Int64("client_id", *target.ClientID))

	if target.Recipient() == "" {
		return ApprovalNoEmail, nil
	}
	if err := s.queue.Enqueue(context.WithoutCancel(ctx), s.emails.ApprovalMessage(target)); err != nil {
		logger.WithCtx(ctx).Error("Не удалось поставить письмо об одобрении в очередь", zap.Error(err))
		return ApprovalEmailFailed, nil
	}
	return ApprovalNotified, nil
}
