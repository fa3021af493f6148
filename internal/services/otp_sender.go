package services

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// OTPPurpose selects the wording of an OTP message.
type OTPPurpose string

const (
	PurposeVerifyEmail   OTPPurpose = "verify-email"
	PurposeResetPassword OTPPurpose = "reset-password"
)

// OTPSender delivers one-time codes. Delivery is attempted once; failures are
// returned to the caller.
type OTPSender interface {
	SendOTP(ctx context.Context, destination, code string, purpose OTPPurpose) error
}

// SMTPSender mails codes through an SMTP relay that supports STARTTLS.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	validFor time.Duration
}

// NewSMTPSender constructs SMTPSender.
func NewSMTPSender(host, port, username, password, from string, validFor time.Duration) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		validFor: validFor,
	}
}

// SendOTP implements OTPSender.
func (s *SMTPSender) SendOTP(ctx context.Context, destination, code string, purpose OTPPurpose) error {
	msg := buildOTPMessage(s.from, destination, code, purpose, s.validFor)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(s.host, s.port))
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); !ok {
		return errors.New("smtp server does not support STARTTLS")
	}
	if err := client.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if s.username != "" {
		if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(destination); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}
	return client.Quit()
}

func otpSubjectAndBody(code string, purpose OTPPurpose, validFor time.Duration) (string, string) {
	minutes := int(validFor.Minutes())
	if purpose == PurposeResetPassword {
		return "Password Reset OTP",
			fmt.Sprintf("Your OTP for password reset is %s. It is valid for %d minutes.", code, minutes)
	}
	return "Verify Your Email - OTP",
		fmt.Sprintf("Your OTP for email verification is %s. It is valid for %d minutes.", code, minutes)
}

func buildOTPMessage(from, to, code string, purpose OTPPurpose, validFor time.Duration) []byte {
	subject, body := otpSubjectAndBody(code, purpose, validFor)

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// LogSender writes codes to the log instead of mailing them. It is used when
// no SMTP relay is configured.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender constructs LogSender.
func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

// SendOTP implements OTPSender.
func (s *LogSender) SendOTP(_ context.Context, destination, code string, purpose OTPPurpose) error {
	s.log.Warn("smtp not configured, otp logged instead of mailed",
		zap.String("destination", destination),
		zap.String("purpose", string(purpose)),
		zap.String("otp", code),
	)
	return nil
}
