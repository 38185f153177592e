package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type EmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List — клиентские аккаунты (не админы) с последним бизнесом пользователя.
func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	query := `
	SELECT u.user_id, u.username, u.email, u.role_id, u.client_id,
	       b.business_name,
	       TRIM(CONCAT_WS(' ', NULLIF(c.first_name, ''), NULLIF(c.middle_name, ''), NULLIF(c.last_name, ''))),
	       c.status_id,
	       u.created_at,
	       b.business_permit, b.spa, b.dti
	FROM users u
	LEFT JOIN clients c ON c.client_id = u.client_id
	LEFT JOIN LATERAL (
		SELECT business_name, business_permit, spa, dti
		FROM businesses
		WHERE user_id = u.user_id
		ORDER BY business_id DESC
		LIMIT 1
	) b ON true
	WHERE u.client_id IS NOT NULL AND (u.role_id IS NULL OR u.role_id <> $1)
	ORDER BY u.user_id DESC`

	rows, err := r.db.Query(ctx, query, models.RoleAdmin)
	if err != nil {
		logger.Log.Error("Ошибка получения списка сотрудников (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var e models.Employee
		var status *int
		if err := rows.Scan(
			&e.UserID, &e.Username, &e.Email, &e.RoleID, &e.ClientID,
			&e.BusinessName, &e.OwnerName, &status, &e.Submitted,
			&e.BusinessPermit, &e.SPA, &e.DTI,
		); err != nil {
			logger.Log.Error("Ошибка чтения строки сотрудника (repo)", zap.Error(err))
			return nil, err
		}
		e.Status = models.StatusLabel(status)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) IsUsernameTaken(ctx context.Context, username string, exceptUserID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND user_id <> $2)`,
		username, exceptUserID,
	).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки username (repo)", zap.Error(err))
	}
	return exists, err
}

// Create пишет клиента (если нужен), пользователя и бизнес в одной транзакции.
func (r *EmployeeRepository) Create(ctx context.Context, e *models.NewEmployee) (int64, error) {
	logger.Log.Info("Создание сотрудника (repo)", zap.String("username", e.Username))

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	clientID := e.ClientID
	if e.WantsClient() {
		var id int64
		err = tx.QueryRow(ctx, `
		INSERT INTO clients (first_name, middle_name, last_name, email, status_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULL)
		RETURNING client_id`,
			e.FirstName, e.MiddleName, e.LastName, e.Email,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert client: %w", err)
		}
		clientID = &id
	}

	var userID int64
	err = tx.QueryRow(ctx, `
	INSERT INTO users (username, password, email, role_id, client_id)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5)
	RETURNING user_id`,
		e.Username, e.PasswordHash, e.Email, e.RoleID, clientID,
	).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	if e.WantsBusiness() {
		_, err = tx.Exec(ctx, `
		INSERT INTO businesses (business_name, location, client_id, user_id, business_permit, dti, spa)
		VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4, $5, $6, $7)`,
			e.BusinessName, e.Location, clientID, userID,
			e.BusinessPermitFile, e.DTIFile, e.SPAFile,
		)
		if err != nil {
			return 0, fmt.Errorf("insert business: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Log.Error("Ошибка коммита создания сотрудника (repo)", zap.Error(err))
		return 0, err
	}
	return userID, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *models.UpdateEmployee) error {
	logger.Log.Info("Обновление сотрудника (repo)", zap.Int64("user_id", e.UserID))
	tag, err := r.db.Exec(ctx, `
	UPDATE users
	SET username = $1, email = NULLIF($2, ''), role_id = $3, client_id = $4,
	    password = COALESCE($5, password)
	WHERE user_id = $6`,
		e.Username, e.Email, e.RoleID, e.ClientID, e.PasswordHash, e.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrUsernameTaken
		}
		logger.Log.Error("Ошибка обновления сотрудника (repo)", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, userID int64) error {
	logger.Log.Info("Удаление сотрудника (repo)", zap.Int64("user_id", userID))
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		logger.Log.Error("Ошибка удаления сотрудника (repo)", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
