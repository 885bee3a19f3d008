package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloggerum-backend/internal/infrastructure/email"
	"bloggerum-backend/internal/shared"
)

type stubEmailService struct {
	got []email.ResetPasswordData
	err error
}

func (s *stubEmailService) SendResetPasswordEmail(_ context.Context, data email.ResetPasswordData) error {
	s.got = append(s.got, data)
	return s.err
}

func TestResetPasswordEmailHandler(t *testing.T) {
	svc := &stubEmailService{}
	h := NewResetPasswordEmailHandler(svc)

	payload, err := json.Marshal(email.ResetPasswordData{Email: "a@x.com", ResetLink: "http://x/change-password/t"})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendResetEmail, payload)))
	require.Len(t, svc.got, 1)
	assert.Equal(t, "a@x.com", svc.got[0].Email)
}

func TestResetPasswordEmailHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewResetPasswordEmailHandler(&stubEmailService{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendResetEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestResetPasswordEmailHandler_TransportErrorIsRetried(t *testing.T) {
	h := NewResetPasswordEmailHandler(&stubEmailService{err: errors.New("smtp down")})

	payload, _ := json.Marshal(email.ResetPasswordData{Email: "a@x.com"})
	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendResetEmail, payload))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
