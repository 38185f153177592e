package services

import (
	"context"
	"testing"

	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestResetRateLimited(t *testing.T) {
	flow := &mockFlow{}
	limiter := &countingLimiter{}
	svc := NewPasswordService(flow, limiter, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := svc.RequestReset(ctx, "A@Example.com", "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, "p.s", res.Token)
	}
	_, err := svc.RequestReset(ctx, "a@example.com", "10.0.0.1")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, flow.issued, 2)

	// another address has its own window
	_, err = svc.RequestReset(ctx, "a@example.com", "10.0.0.2")
	assert.NoError(t, err)
}

func TestResetLimitsAttemptsPerIP(t *testing.T) {
	flow := &mockFlow{err: resettoken.ErrInvalidCode}
	limiter := &countingLimiter{}
	svc := NewPasswordService(flow, limiter, 1)

	req := resettoken.VerifyRequest{Token: "p.s", Code: "000000", NewPassword: "x"}
	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, svc.Reset(context.Background(), req, "10.0.0.1"), resettoken.ErrInvalidCode)
	}
	assert.ErrorIs(t, svc.Reset(context.Background(), req, "10.0.0.1"), ErrRateLimited)
	assert.Len(t, flow.verified, 2)
	assert.Equal(t, 2, limiter.limit["reset:verify:10.0.0.1"])
}

func TestPasswordServiceWithoutLimiter(t *testing.T) {
	flow := &mockFlow{}
	svc := NewPasswordService(flow, nil, 0)

	for i := 0; i < 10; i++ {
		_, err := svc.RequestReset(context.Background(), "a@example.com", "ip")
		require.NoError(t, err)
	}
	require.NoError(t, svc.Reset(context.Background(), resettoken.VerifyRequest{}, "ip"))
}

func TestPasswordServicePropagatesFlowErrors(t *testing.T) {
	flow := &mockFlow{err: resettoken.ErrDelivery}
	svc := NewPasswordService(flow, nil, 5)

	_, err := svc.RequestReset(context.Background(), "a@example.com", "ip")
	assert.ErrorIs(t, err, resettoken.ErrDelivery)
}
