package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils"

	"go.uber.org/zap"
)

type EmployeeRepo interface {
	List(ctx context.Context) ([]models.Employee, error)
	IsUsernameTaken(ctx context.Context, username string, exceptUserID int64) (bool, error)
	Create(ctx context.Context, e *models.NewEmployee) (int64, error)
	Update(ctx context.Context, e *models.UpdateEmployee) error
	Delete(ctx context.Context, userID int64) error
}

type ClientLookup interface {
	Exists(ctx context.Context, clientID int64) (bool, error)
}

type CreateEmployeeInput struct {
	Username string
	Email    string
	Password string
	RoleID   *int
	ClientID *int64

	Name         string
	BusinessName string
	Location     string

	BusinessPermitFile *string
	DTIFile            *string
	SPAFile            *string
}

type UpdateEmployeeInput struct {
	UserID   int64
	Username string
	Email    string
	Password string
	RoleID   *int
	ClientID *int64
}

type EmployeeService struct {
	repo    EmployeeRepo
	clients ClientLookup
}

func NewEmployeeService(repo EmployeeRepo, clients ClientLookup) *EmployeeService {
	return &EmployeeService{repo: repo, clients: clients}
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (int64, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return 0, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	clientID, err := s.knownClient(ctx, in.ClientID)
	if err != nil {
		return 0, err
	}

	taken, err := s.repo.IsUsernameTaken(ctx, in.Username, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	e := &models.NewEmployee{
		Username:           in.Username,
		Email:              strings.TrimSpace(in.Email),
		PasswordHash:       hash,
		RoleID:             roleOrDefault(in.RoleID),
		ClientID:           clientID,
		FullName:           strings.TrimSpace(in.Name),
		BusinessName:       strings.TrimSpace(in.BusinessName),
		Location:           strings.TrimSpace(in.Location),
		BusinessPermitFile: in.BusinessPermitFile,
		DTIFile:            in.DTIFile,
		SPAFile:            in.SPAFile,
	}
	if e.WantsClient() {
		e.FirstName, e.MiddleName, e.LastName = models.SplitName(e.FullName)
		if e.FirstName == "" && e.LastName == "" {
			e.FirstName = e.Username
		}
	}

	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return 0, err
	}
	logger.WithCtx(ctx).Info("Сотрудник создан", zap.Int64("user_id", id), zap.Bool("with_client", e.WantsClient()))
	return id, nil
}

func (s *EmployeeService) Update(ctx context.Context, in UpdateEmployeeInput) error {
	in.Username = strings.TrimSpace(in.Username)
	if in.UserID <= 0 || in.Username == "" {
		return fmt.Errorf("%w: user ID and username are required", ErrInvalidInput)
	}

	clientID, err := s.knownClient(ctx, in.ClientID)
	if err != nil {
		return err
	}

	taken, err := s.repo.IsUsernameTaken(ctx, in.Username, in.UserID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	upd := &models.UpdateEmployee{
		UserID:   in.UserID,
		Username: in.Username,
		Email:    strings.TrimSpace(in.Email),
		RoleID:   roleOrDefault(in.RoleID),
		ClientID: clientID,
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hash
	}

	if err := s.repo.Update(ctx, upd); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("Сотрудник обновлён", zap.Int64("user_id", in.UserID))
	return nil
}

func (s *EmployeeService) Delete(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("Сотрудник удалён", zap.Int64("user_id", userID))
	return nil
}

// knownClient сбрасывает несуществующий client_id в NULL.
func (s *EmployeeService) knownClient(ctx context.Context, id *int64) (*int64, error) {
	if id == nil || *id <= 0 {
		return nil, nil
	}
	ok, err := s.clients.Exists(ctx, *id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return id, nil
}

func roleOrDefault(role *int) int {
	if role == nil || *role == 0 {
		return models.RoleAdmin
	}
	return *role
}
