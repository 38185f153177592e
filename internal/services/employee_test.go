package services

import (
	"context"
	"testing"

	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeFixture() (*EmployeeService, *mockEmployeeRepo) {
	repo := &mockEmployeeRepo{taken: map[string]int64{"taken": 5}}
	clients := &mockClientRepo{targets: map[int64]*models.ApprovalTarget{
		5: {UserID: 5, ClientID: ptr(int64(50))},
	}}
	return NewEmployeeService(repo, clients), repo
}

func TestCreateEmployeeWithClient(t *testing.T) {
	svc, repo := newEmployeeFixture()

	id, err := svc.Create(context.Background(), CreateEmployeeInput{
		Username:           " jdc ",
		Email:              "jdc@example.com",
		Password:           "pw",
		RoleID:             ptr(models.RoleClient),
		Name:               "Juan Dela Cruz",
		BusinessName:       "JDC Trading",
		BusinessPermitFile: ptr("permit_x.pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, repo.created, 1)
	e := repo.created[0]
	assert.Equal(t, "jdc", e.Username)
	assert.Equal(t, models.RoleClient, e.RoleID)
	assert.Equal(t, "Juan", e.FirstName)
	assert.Equal(t, ptr("Dela"), e.MiddleName)
	assert.Equal(t, "Cruz", e.LastName)
	assert.True(t, e.WantsBusiness())
	assert.True(t, utils.CheckPassword(e.PasswordHash, "pw"))
}

func TestCreateEmployeeBusinessOnlyUsesUsernameAsName(t *testing.T) {
	svc, repo := newEmployeeFixture()

	_, err := svc.Create(context.Background(), CreateEmployeeInput{Username: "shop", Password: "pw", BusinessName: "Shop"})
	require.NoError(t, err)
	e := repo.created[0]
	assert.Equal(t, "shop", e.FirstName)
	assert.Equal(t, models.RoleAdmin, e.RoleID)
}

func TestCreateEmployeeClientIDHandling(t *testing.T) {
	svc, repo := newEmployeeFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateEmployeeInput{Username: "a", Password: "pw", ClientID: ptr(int64(50))})
	require.NoError(t, err)
	assert.Equal(t, ptr(int64(50)), repo.created[0].ClientID)

	_, err = svc.Create(ctx, CreateEmployeeInput{Username: "b", Password: "pw", ClientID: ptr(int64(999))})
	require.NoError(t, err)
	assert.Nil(t, repo.created[1].ClientID)
	assert.False(t, repo.created[1].WantsClient())
}

func TestCreateEmployeeValidation(t *testing.T) {
	svc, _ := newEmployeeFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateEmployeeInput{Username: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateEmployeeInput{Username: "taken", Password: "pw"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateEmployee(t *testing.T) {
	svc, repo := newEmployeeFixture()
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, UpdateEmployeeInput{UserID: 5, Username: "taken"}))
	assert.Nil(t, repo.updated[0].PasswordHash)

	require.NoError(t, svc.Update(ctx, UpdateEmployeeInput{UserID: 6, Username: "new", Password: "pw2"}))
	require.NotNil(t, repo.updated[1].PasswordHash)
	assert.True(t, utils.CheckPassword(*repo.updated[1].PasswordHash, "pw2"))

	assert.ErrorIs(t, svc.Update(ctx, UpdateEmployeeInput{UserID: 6, Username: "taken"}), ErrUsernameTaken)
	assert.ErrorIs(t, svc.Update(ctx, UpdateEmployeeInput{UserID: 0, Username: "x"}), ErrInvalidInput)
	assert.ErrorIs(t, svc.Update(ctx, UpdateEmployeeInput{UserID: 404, Username: "x"}), ErrNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	svc, repo := newEmployeeFixture()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 9))
	assert.Equal(t, []int64{9}, repo.deleted)
	assert.ErrorIs(t, svc.Delete(ctx, 404), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 0), ErrInvalidInput)
}

func TestListEmployees(t *testing.T) {
	svc, _ := newEmployeeFixture()
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
