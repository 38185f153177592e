package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Michaelnacaya1234/Accounting-services/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestApproveHandler(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		outcome services.ApprovalOutcome
		err     error
		status  int
		msg     string
	}{
		{"queued", `{"user_id":4}`, services.ApprovalNotified, nil, http.StatusOK, "Client approved successfully and approval email queued."},
		{"no email", `{"user_id":4}`, services.ApprovalNoEmail, nil, http.StatusOK, "Client approved successfully, but no email address found to send notification."},
		{"mail failed", `{"user_id":4}`, services.ApprovalEmailFailed, nil, http.StatusOK, "Client approved successfully, but email could not be sent."},
		{"missing id", `{}`, 0, nil, http.StatusBadRequest, "User ID is required."},
		{"not found", `{"user_id":4}`, 0, services.ErrNotFound, http.StatusNotFound, "User not found."},
		{"no client", `{"user_id":4}`, 0, services.ErrNoClientRecord, http.StatusBadRequest, "User does not have an associated client record."},
		{"db down", `{"user_id":4}`, 0, errors.New("db down"), http.StatusInternalServerError, "Internal server error."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeApprover{outcome: tc.outcome, err: tc.err}
			rec := httptest.NewRecorder()
			NewClientHandler(svc).Approve(rec, httptest.NewRequest(http.MethodPost, "/api/admin/clients/approve", strings.NewReader(tc.body)))

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, decodeBody(t, rec)["message"])
		})
	}
}
