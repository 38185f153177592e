package services

import (
	"context"
	"strings"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"

	"go.uber.org/zap"
)

type ResetFlow interface {
	Issue(ctx context.Context, identity string) (resettoken.IssueResult, error)
	VerifyAndReset(ctx context.Context, req resettoken.VerifyRequest) (int64, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// PasswordService — HTTP-независимая обёртка над resettoken с лимитами.
type PasswordService struct {
	flow    ResetFlow
	limiter RateLimiter
	perHour int
}

// limiter может быть nil: тогда лимиты не применяются.
func NewPasswordService(flow ResetFlow, limiter RateLimiter, perHour int) *PasswordService {
	return &PasswordService{flow: flow, limiter: limiter, perHour: perHour}
}

func (s *PasswordService) RequestReset(ctx context.Context, identity, clientIP string) (resettoken.IssueResult, error) {
	key := "reset:request:" + strings.ToLower(strings.TrimSpace(identity)) + ":" + clientIP
	if !s.allow(ctx, key, s.perHour) {
		logger.WithCtx(ctx).Warn("Превышен лимит запросов на сброс пароля", zap.String("ip", clientIP))
		return resettoken.IssueResult{}, ErrRateLimited
	}

	res, err := s.flow.Issue(ctx, identity)
	if err != nil {
		s.logFailure(ctx, "Ошибка выдачи токена сброса", err)
		return resettoken.IssueResult{}, err
	}
	logger.WithCtx(ctx).Info("Запрос на сброс пароля обработан")
	return res, nil
}

// Reset ограничивает попытки ввода кода по IP: код всего из 6 цифр.
func (s *PasswordService) Reset(ctx context.Context, req resettoken.VerifyRequest, clientIP string) error {
	if !s.allow(ctx, "reset:verify:"+clientIP, 2*s.perHour) {
		logger.WithCtx(ctx).Warn("Превышен лимит попыток сброса пароля", zap.String("ip", clientIP))
		return ErrRateLimited
	}

	userID, err := s.flow.VerifyAndReset(ctx, req)
	if err != nil {
		s.logFailure(ctx, "Сброс пароля отклонён", err)
		return err
	}
	logger.WithCtx(ctx).Info("Пароль сброшен", zap.Int64("user_id", userID))
	return nil
}

func (s *PasswordService) allow(ctx context.Context, key string, limit int) bool {
	if s.limiter == nil {
		return true
	}
	return s.limiter.Allow(ctx, key, limit, time.Hour)
}

func (s *PasswordService) logFailure(ctx context.Context, msg string, err error) {
	if resettoken.IsClientError(err) {
		logger.WithCtx(ctx).Info(msg, zap.Error(err))
		return
	}
	logger.WithCtx(ctx).Error(msg, zap.Error(err))
}
