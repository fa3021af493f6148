package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	now := time.Now()
	id := uuid.New()

	token, err := IssueSessionToken("secret", id, now, 24*time.Hour)
	require.NoError(t, err)

	got, err := ParseSessionToken("secret", token, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseSessionTokenErrors(t *testing.T) {
	now := time.Now()
	id := uuid.New()
	valid, err := IssueSessionToken("secret", id, now, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
		at     time.Time
		want   error
	}{
		{name: "expired", secret: "secret", token: valid, at: now.Add(2 * time.Hour), want: ErrTokenExpired},
		{name: "wrong secret", secret: "other", token: valid, at: now, want: ErrTokenInvalid},
		{name: "garbage", secret: "secret", token: "abc.def.ghi", at: now, want: ErrTokenInvalid},
		{name: "alg none", secret: "secret", token: none, at: now, want: ErrTokenInvalid},
		{name: "subject not a uuid", secret: "secret", token: badSubject, at: now, want: ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionToken(tt.secret, tt.token, tt.at)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
