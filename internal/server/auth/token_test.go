package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Unix(1_700_000_000, 0)

func TestTokenService_IssueThenVerify(t *testing.T) {
	s := NewTokenService("k", time.Hour)

	tok, err := s.Issue("alice@x.com", issuedAt)
	require.NoError(t, err)
	assert.Len(t, strings.Split(tok, "."), 3)

	assert.True(t, s.Verify(tok, "alice@x.com", issuedAt.Add(time.Minute)))

	sub, ok := s.ExtractSubject(tok)
	require.True(t, ok)
	assert.Equal(t, "alice@x.com", sub)
}

func TestTokenService_IssueSetsClaims(t *testing.T) {
	s := NewTokenService("k", 90*time.Minute)

	tok, err := s.Issue("a@b.co", issuedAt)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	assert.Equal(t, "a@b.co", claims.Subject)
	assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issuedAt.Add(90*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenService_DistinctIssueTimesGiveDistinctTokens(t *testing.T) {
	s := NewTokenService("k", time.Hour)

	a, err := s.Issue("a@b.co", issuedAt)
	require.NoError(t, err)
	b, err := s.Issue("a@b.co", issuedAt.Add(time.Second))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestTokenService_Verify(t *testing.T) {
	s := NewTokenService("k", time.Hour)
	tok, err := s.Issue("alice@x.com", issuedAt)
	require.NoError(t, err)

	other, err := NewTokenService("other", time.Hour).Issue("alice@x.com", issuedAt)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		subject string
		now     time.Time
		want    bool
	}{
		{"valid", tok, "alice@x.com", issuedAt, true},
		{"just before expiry", tok, "alice@x.com", issuedAt.Add(time.Hour - time.Second), true},
		{"at expiry", tok, "alice@x.com", issuedAt.Add(time.Hour), false},
		{"expired", tok, "alice@x.com", issuedAt.Add(time.Hour + time.Second), false},
		{"wrong subject", tok, "bob@x.com", issuedAt, false},
		{"wrong key", other, "alice@x.com", issuedAt, false},
		{"garbage", "not-a-token", "alice@x.com", issuedAt, false},
		{"empty", "", "alice@x.com", issuedAt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Verify(tt.token, tt.subject, tt.now))
		})
	}
}

func TestTokenService_TamperedPayloadIsRejected(t *testing.T) {
	s := NewTokenService("k", time.Hour)
	tok, err := s.Issue("alice@x.com", issuedAt)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), "alice", "mallo", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))
	tampered := strings.Join(parts, ".")

	assert.False(t, s.Verify(tampered, "mallo@x.com", issuedAt))
	_, ok := s.ExtractSubject(tampered)
	assert.False(t, ok)
}

func TestTokenService_ExtractSubjectIgnoresExpiry(t *testing.T) {
	s := NewTokenService("k", time.Second)
	tok, err := s.Issue("alice@x.com", time.Unix(1, 0))
	require.NoError(t, err)

	sub, ok := s.ExtractSubject(tok)
	require.True(t, ok)
	assert.Equal(t, "alice@x.com", sub)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	s := NewTokenService("k", time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "alice@x.com",
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	assert.False(t, s.Verify(tok, "alice@x.com", issuedAt))
	_, ok := s.ExtractSubject(tok)
	assert.False(t, ok)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.False(t, s.Verify(none, "alice@x.com", issuedAt))
}

func TestTokenService_MissingClaims(t *testing.T) {
	s := NewTokenService("k", time.Hour)
	sign := func(c jwt.RegisteredClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("k"))
		require.NoError(t, err)
		return tok
	}
	exp := jwt.NewNumericDate(issuedAt.Add(time.Hour))
	iat := jwt.NewNumericDate(issuedAt)

	noSub := sign(jwt.RegisteredClaims{IssuedAt: iat, ExpiresAt: exp})
	noExp := sign(jwt.RegisteredClaims{Subject: "a@b.co", IssuedAt: iat})
	noIat := sign(jwt.RegisteredClaims{Subject: "a@b.co", ExpiresAt: exp})

	assert.False(t, s.Verify(noSub, "", issuedAt))
	assert.False(t, s.Verify(noExp, "a@b.co", issuedAt))
	assert.False(t, s.Verify(noIat, "a@b.co", issuedAt))

	_, ok := s.ExtractSubject(noSub)
	assert.False(t, ok)
}
