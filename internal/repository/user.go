package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Resolve ищет пользователя по email (без учёта регистра) или username.
// Совпадение по email приоритетнее. Адрес для писем: email пользователя,
// затем email привязанного клиента.
func (r *UserRepository) Resolve(ctx context.Context, identity string) (resettoken.Account, error) {
	logger.Log.Debug("Поиск пользователя для сброса пароля (repo)", zap.String("identity", utils.MaskEmail(identity)))
	query := `
	SELECT u.user_id, u.username,
	       COALESCE(NULLIF(TRIM(u.email), ''), NULLIF(TRIM(c.email), ''), '')
	FROM users u
	LEFT JOIN clients c ON c.client_id = u.client_id
	WHERE lower(u.email) = lower($1) OR u.username = $1
	ORDER BY (lower(u.email) = lower($1)) DESC NULLS LAST, u.user_id
	LIMIT 1`

	var acc resettoken.Account
	err := r.db.QueryRow(ctx, query, strings.TrimSpace(identity)).Scan(&acc.UserID, &acc.Username, &acc.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return resettoken.Account{}, resettoken.ErrUserNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка поиска пользователя (repo)", zap.Error(err))
		return resettoken.Account{}, err
	}
	return acc, nil
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, userID int64, hash string) error {
	logger.Log.Debug("Обновление пароля (repo)", zap.Int64("user_id", userID))
	tag, err := r.db.Exec(ctx, `UPDATE users SET password = $1 WHERE user_id = $2`, hash, userID)
	if err != nil {
		logger.Log.Error("Ошибка обновления пароля (repo)", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

// GetForLogin возвращает пользователя вместе со статусом клиента.
func (r *UserRepository) GetForLogin(ctx context.Context, identity string) (*models.LoginUser, error) {
	logger.Log.Debug("Получение пользователя для входа (repo)", zap.String("identity", utils.MaskEmail(identity)))
	query := `
	SELECT u.user_id, u.username, u.password, u.email, u.role_id, u.client_id, u.created_at, c.status_id
	FROM users u
	LEFT JOIN clients c ON c.client_id = u.client_id
	WHERE lower(u.email) = lower($1) OR u.username = $1
	ORDER BY (lower(u.email) = lower($1)) DESC NULLS LAST, u.user_id
	LIMIT 1`

	var u models.LoginUser
	err := r.db.QueryRow(ctx, query, identity).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.RoleID,
		&u.ClientID,
		&u.CreatedAt,
		&u.ClientStatus,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя для входа (repo)", zap.Error(err))
		return nil, err
	}
	return &u, nil
}

// EnsureAdmin создаёт администратора или обновляет ему пароль и роль.
// Возвращает true, если запись была создана.
func (r *UserRepository) EnsureAdmin(ctx context.Context, username, passwordHash, email string) (bool, error) {
	query := `
	INSERT INTO users (username, password, email, role_id)
	VALUES ($1, $2, NULLIF($3, ''), $4)
	ON CONFLICT (username) DO UPDATE
	SET password = EXCLUDED.password,
	    role_id = EXCLUDED.role_id,
	    email = COALESCE(EXCLUDED.email, users.email)
	RETURNING (xmax = 0)`
	var created bool
	err := r.db.QueryRow(ctx, query, username, passwordHash, email, models.RoleAdmin).Scan(&created)
	if err != nil {
		logger.Log.Error("Ошибка создания администратора (repo)", zap.Error(err))
		return false, err
	}
	return created, nil
}
