package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdminUserOTP(t *testing.T) {
	expires := time.Date(2025, 3, 1, 12, 10, 0, 0, time.UTC)
	user := &AdminUser{}

	user.SetOTP("123456", expires)
	if assert.NotNil(t, user.OTP) && assert.NotNil(t, user.OTPExpires) {
		assert.Equal(t, "123456", *user.OTP)
		assert.Equal(t, expires, *user.OTPExpires)
	}

	user.ClearOTP()
	assert.Nil(t, user.OTP)
	assert.Nil(t, user.OTPExpires)
}

func TestAdminUserBeforeSaveNormalizesEmail(t *testing.T) {
	user := &AdminUser{Email: "  Staff@Example.COM "}
	assert.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, "staff@example.com", user.Email)
}

func TestAdminUserIsAdmin(t *testing.T) {
	assert.True(t, (&AdminUser{Role: "admin"}).IsAdmin())
	assert.False(t, (&AdminUser{Role: "Admin"}).IsAdmin())
	assert.False(t, (&AdminUser{Role: "editor"}).IsAdmin())
}

func TestEPKPublishStampsOnce(t *testing.T) {
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	epk := &EPK{}

	epk.Publish(true, first)
	epk.Publish(false, first.Add(time.Hour))
	epk.Publish(true, first.Add(2*time.Hour))

	assert.True(t, epk.IsPublished)
	if assert.NotNil(t, epk.PublishedAt) {
		assert.Equal(t, first, *epk.PublishedAt)
	}
}

func TestEPKApplyDefaults(t *testing.T) {
	epk := &EPK{}
	epk.ApplyDefaults()
	assert.Equal(t, "solo", epk.ArtistMode)
	assert.Equal(t, "artist", epk.ManagedBy)
	assert.NotNil(t, epk.Sections)
}
