package repository

import (
	"context"
	"errors"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ClientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetApprovalTarget(ctx context.Context, userID int64) (*models.ApprovalTarget, error) {
	query := `
	SELECT u.user_id, u.username, u.email, c.client_id, c.email,
	       c.first_name, c.middle_name, c.last_name, c.status_id
	FROM users u
	LEFT JOIN clients c ON c.client_id = u.client_id
	WHERE u.user_id = $1`

	var t models.ApprovalTarget
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&t.UserID,
		&t.Username,
		&t.UserEmail,
		&t.ClientID,
		&t.ClientEmail,
		&t.FirstName,
		&t.MiddleName,
		&t.LastName,
		&t.StatusID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения клиента для одобрения (repo)", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &t, nil
}

func (r *ClientRepository) SetStatus(ctx context.Context, clientID int64, status int) error {
	logger.Log.Info("Смена статуса клиента (repo)", zap.Int64("client_id", clientID), zap.Int("status_id", status))
	_, err := r.db.Exec(ctx, `UPDATE clients SET status_id = $1 WHERE client_id = $2`, status, clientID)
	if err != nil {
		logger.Log.Error("Ошибка смены статуса клиента (repo)", zap.Error(err))
	}
	return err
}

func (r *ClientRepository) Exists(ctx context.Context, clientID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE client_id = $1)`, clientID).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки клиента (repo)", zap.Error(err))
	}
	return exists, err
}
