package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Michaelnacaya1234/Accounting-services/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	in  *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, f.err
}

func TestSESSenderBuildsInput(t *testing.T) {
	api := &fakeSES{}
	s := newSESSender(api, "noreply@example.com", "Accounting System")

	err := s.Send(context.Background(), Message{
		To:      "client@example.com",
		Subject: "Password reset request",
		HTML:    "<p>123456</p>",
		Text:    "123456",
	})
	require.NoError(t, err)

	require.NotNil(t, api.in)
	assert.Equal(t, `"Accounting System" <noreply@example.com>`, aws.ToString(api.in.Source))
	assert.Equal(t, []string{"client@example.com"}, api.in.Destination.ToAddresses)
	assert.Equal(t, "Password reset request", aws.ToString(api.in.Message.Subject.Data))
	assert.Equal(t, "<p>123456</p>", aws.ToString(api.in.Message.Body.Html.Data))
	assert.Equal(t, "123456", aws.ToString(api.in.Message.Body.Text.Data))
}

func TestSESSenderErrors(t *testing.T) {
	api := &fakeSES{err: errors.New("throttled")}
	s := newSESSender(api, "noreply@example.com", "")

	assert.Error(t, s.Send(context.Background(), Message{}))
	assert.Nil(t, api.in)

	err := s.Send(context.Background(), Message{To: "a@example.com", Text: "x"})
	assert.EqualError(t, err, "throttled")
	assert.Equal(t, "noreply@example.com", aws.ToString(api.in.Source))
}

func TestSMTPMessage(t *testing.T) {
	s := &SMTPSender{From: "noreply@example.com", FromName: "Accounting System"}
	m := s.build(Message{
		To:      "client@example.com",
		ToName:  "Juan",
		Subject: "Your Account Has Been Approved",
		HTML:    "<b>approved</b>",
		Text:    "approved",
	})

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Your Account Has Been Approved")
	assert.Contains(t, raw, `"Juan" <client@example.com>`)
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.True(t, strings.Contains(raw, "multipart/alternative"))
}

func TestSMTPRejectsEmptyRecipient(t *testing.T) {
	s := &SMTPSender{}
	assert.Error(t, s.Send(context.Background(), Message{Text: "x"}))
}

func TestNewPicksDriver(t *testing.T) {
	s, err := New(context.Background(), &config.Config{MailDriver: "smtp", SMTPHost: "smtp.example.com", SMTPPort: "587"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	_, err = New(context.Background(), &config.Config{MailDriver: "smtp", SMTPPort: "abc"})
	assert.Error(t, err)

	_, err = New(context.Background(), &config.Config{MailDriver: "pigeon"})
	assert.Error(t, err)
}

func TestSESStaticCredentials(t *testing.T) {
	assert.Len(t, sesLoadOptions(SESOptions{Region: "ap-southeast-1"}), 1)

	opts := sesLoadOptions(SESOptions{Region: "ap-southeast-1", AccessKey: "AKIDEXAMPLE", SecretKey: "secret"})
	require.Len(t, opts, 2)

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
}
