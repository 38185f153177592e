package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/repository"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils"

	"go.uber.org/zap"
)

type UserRepo interface {
	GetForLogin(ctx context.Context, identity string) (*models.LoginUser, error)
	EnsureAdmin(ctx context.Context, username, passwordHash, email string) (bool, error)
}

type AuthService struct {
	repo      UserRepo
	jwtSecret string
	accessTTL time.Duration
}

func NewAuthService(repo UserRepo, jwtSecret string, accessTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, jwtSecret: jwtSecret, accessTTL: accessTTL}
}

// Login проверяет пароль и пускает клиентов только после одобрения.
func (s *AuthService) Login(ctx context.Context, identity, password string) (*models.LoginUser, string, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || password == "" {
		return nil, "", ErrInvalidInput
	}

	user, err := s.repo.GetForLogin(ctx, identity)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Log.Warn("Пользователь не найден (service)")
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		logger.Log.Warn("Неверный пароль (service)", zap.Int64("user_id", user.ID))
		return nil, "", ErrInvalidCredentials
	}

	if !user.Approved() {
		logger.Log.Info("Вход клиента до одобрения (service)", zap.Int64("user_id", user.ID))
		return nil, "", ErrPendingApproval
	}

	role := models.RoleClient
	if user.RoleID != nil {
		role = *user.RoleID
	}
	token, err := utils.GenerateToken(s.jwtSecret, user.ID, role, s.accessTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации access-токена", zap.Error(err))
		return nil, "", err
	}

	logger.Log.Info("Вход выполнен (service)", zap.Int64("user_id", user.ID))
	return user, token, nil
}

// SeedAdmin создаёт администратора из конфигурации при старте.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	created, err := s.repo.EnsureAdmin(ctx, username, hash, email)
	if err != nil {
		return err
	}
	logger.Log.Info("Администратор готов", zap.String("username", username), zap.Bool("created", created))
	return nil
}
