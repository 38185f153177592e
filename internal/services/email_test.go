package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendResetCode(t *testing.T) {
	sender := &mockSender{}
	svc := NewEmailService(sender, "")

	acc := resettoken.Account{UserID: 1, Username: "jdc", Email: "jdc@example.com"}
	require.NoError(t, svc.SendResetCode(context.Background(), acc, "041207", "https://app/#/reset?token=t", 10*time.Minute))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "jdc@example.com", msg.To)
	assert.Equal(t, "Password reset request", msg.Subject)
	assert.Contains(t, msg.HTML, "041207")
	assert.Contains(t, msg.Text, "expires in 10 minutes")

	sender.err = errors.New("smtp down")
	assert.Error(t, svc.SendResetCode(context.Background(), acc, "1", "l", time.Minute))
}
