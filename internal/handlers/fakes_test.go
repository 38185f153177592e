package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"
	"github.com/Michaelnacaya1234/Accounting-services/internal/services"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type fakeAuth struct {
	user  *models.LoginUser
	token string
	err   error

	identity string
}

func (f *fakeAuth) Login(_ context.Context, identity, _ string) (*models.LoginUser, string, error) {
	f.identity = identity
	return f.user, f.token, f.err
}

type fakeResetter struct {
	identity string
	ip       string
	req      resettoken.VerifyRequest
	err      error
}

func (f *fakeResetter) RequestReset(_ context.Context, identity, ip string) (resettoken.IssueResult, error) {
	f.identity, f.ip = identity, ip
	if f.err != nil {
		return resettoken.IssueResult{}, f.err
	}
	return resettoken.IssueResult{Token: "payload.sig"}, nil
}

func (f *fakeResetter) Reset(_ context.Context, req resettoken.VerifyRequest, ip string) error {
	f.req, f.ip = req, ip
	return f.err
}

type fakeApprover struct {
	outcome services.ApprovalOutcome
	err     error
	userID  int64
}

func (f *fakeApprover) Approve(_ context.Context, userID int64) (services.ApprovalOutcome, error) {
	f.userID = userID
	return f.outcome, f.err
}

type fakeEmployees struct {
	created []services.CreateEmployeeInput
	updated []services.UpdateEmployeeInput
	deleted []int64
	err     error
}

func (f *fakeEmployees) List(context.Context) ([]models.Employee, error) {
	return []models.Employee{{UserID: 3, Username: "jdc", Status: "Pending"}}, f.err
}

func (f *fakeEmployees) Create(_ context.Context, in services.CreateEmployeeInput) (int64, error) {
	f.created = append(f.created, in)
	if f.err != nil {
		return 0, f.err
	}
	return 42, nil
}

func (f *fakeEmployees) Update(_ context.Context, in services.UpdateEmployeeInput) error {
	f.updated = append(f.updated, in)
	return f.err
}

func (f *fakeEmployees) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}
