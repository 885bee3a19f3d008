package email

import (
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"bloggerum-backend/internal/config"
	"bloggerum-backend/pkg/logger"
)

type EmailService interface {
	SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error
}

type smtpEmailService struct {
	smtpHost string
	smtpAddr string
	smtpFrom string
	auth     smtp.Auth
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPEmailService: có username thì dùng PLAIN auth, không thì gửi thẳng (mailhog/mailpit khi dev)
func NewSMTPEmailService(cfg config.EmailConfig) EmailService {
	s := &smtpEmailService{
		smtpHost: cfg.SMTPHost,
		smtpAddr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		smtpFrom: cfg.From,
		send:     smtp.SendMail,
	}
	if cfg.SMTPUsername != "" {
		s.auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return s
}

var resetPasswordTmpl = template.Must(template.New("reset").Parse(`<p>Hi {{.Name}},</p>
<p>Someone requested a password reset for your Bloggerum account.</p>
<p><a href="{{.ResetLink}}">Reset your password</a></p>
<p>This link is valid for {{.ExpiresIn}}. If you did not ask for it, ignore this email.</p>`))

func (s *smtpEmailService) SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error {
	var body strings.Builder
	if err := resetPasswordTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	return s.Send(ctx, EmailRequest{
		To:      []string{data.Email},
		Subject: "Change password",
		Body:    body.String(),
		IsHTML:  true,
	})
}

func (s *smtpEmailService) Send(ctx context.Context, req EmailRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.smtpFrom, req)
	if err := s.send(s.smtpAddr, s.auth, s.smtpFrom, req.To, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        strings.Join(req.To, ","),
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from string, req EmailRequest) []byte {
	contentType := "text/plain"
	if req.IsHTML {
		contentType = "text/html"
	}
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s; charset=\"UTF-8\"\r\n\r\n%s",
		from, strings.Join(req.To, ", "), req.Subject, contentType, req.Body))
}
