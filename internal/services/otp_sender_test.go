package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildOTPMessage(t *testing.T) {
	msg := string(buildOTPMessage("noreply@epk.test", "asha@example.com", "123456", PurposeVerifyEmail, 10*time.Minute))

	assert.True(t, strings.HasPrefix(msg, "From: noreply@epk.test\r\nTo: asha@example.com\r\n"))
	assert.Contains(t, msg, "Subject: Verify Your Email - OTP\r\n")
	assert.Contains(t, msg, "Your OTP for email verification is 123456. It is valid for 10 minutes.")
}

func TestOTPSubjectForPasswordReset(t *testing.T) {
	subject, body := otpSubjectAndBody("654321", PurposeResetPassword, 5*time.Minute)
	assert.Equal(t, "Password Reset OTP", subject)
	assert.Equal(t, "Your OTP for password reset is 654321. It is valid for 5 minutes.", body)
}

func TestLogSender(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sender := NewLogSender(zap.New(core))

	assert.NoError(t, sender.SendOTP(context.Background(), "asha@example.com", "123456", PurposeVerifyEmail))
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "asha@example.com", fields["destination"])
		assert.Equal(t, "123456", fields["otp"])
	}
}

func TestSMTPSenderDialFailure(t *testing.T) {
	sender := NewSMTPSender("127.0.0.1", "1", "", "", "noreply@epk.test", time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, sender.SendOTP(ctx, "asha@example.com", "123456", PurposeVerifyEmail))
}
