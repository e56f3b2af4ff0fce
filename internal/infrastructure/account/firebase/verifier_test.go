package firebase

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/platform/resilience"
	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

const testProjectID = "scouting-test"

type staticKeys map[string]*rsa.PublicKey

func (s staticKeys) PublicKey(_ context.Context, kid string) (*rsa.PublicKey, error) {
	if key, ok := s[kid]; ok {
		return key, nil
	}
	return nil, errUnknownKeyID
}

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(*idTokenClaims)) string {
	t.Helper()
	now := time.Now()
	claims := idTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerPrefix + testProjectID,
			Audience:  jwt.ClaimStrings{testProjectID},
			Subject:   "firebase-uid-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		AuthTime: jwt.NewNumericDate(now.Add(-time.Minute)),
		Email:    "scout@example.com",
		Name:     "Sam Scout",
	}
	if mutate != nil {
		mutate(&claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerifierAcceptsValidToken(t *testing.T) {
	t.Parallel()

	key := newTestKey(t)
	verifier := NewVerifier(testProjectID, staticKeys{"k1": &key.PublicKey})

	principal, err := verifier.VerifyIDToken(context.Background(), signToken(t, key, "k1", nil))
	require.NoError(t, err)
	require.Equal(t, "firebase-uid-1", principal.UserID)
	require.Equal(t, "scout@example.com", principal.Email)
	require.Equal(t, "Sam Scout", principal.Name)
}

func TestVerifierRejectsBadTokens(t *testing.T) {
	t.Parallel()

	key := newTestKey(t)
	other := newTestKey(t)
	verifier := NewVerifier(testProjectID, staticKeys{"k1": &key.PublicKey})

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"expired":        signToken(t, key, "k1", func(c *idTokenClaims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour)) }),
		"wrong audience": signToken(t, key, "k1", func(c *idTokenClaims) { c.Audience = jwt.ClaimStrings{"other-project"} }),
		"wrong issuer":   signToken(t, key, "k1", func(c *idTokenClaims) { c.Issuer = "https://evil.example.com" }),
		"no subject":     signToken(t, key, "k1", func(c *idTokenClaims) { c.Subject = "" }),
		"no auth time":   signToken(t, key, "k1", func(c *idTokenClaims) { c.AuthTime = nil }),
		"future auth":    signToken(t, key, "k1", func(c *idTokenClaims) { c.AuthTime = jwt.NewNumericDate(time.Now().Add(time.Hour)) }),
		"unknown kid":    signToken(t, key, "k2", nil),
		"wrong key":      signToken(t, other, "k1", nil),
	}
	for name, token := range cases {
		_, err := verifier.VerifyIDToken(context.Background(), token)
		if !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func selfSignedPEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken.system.gserviceaccount.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func TestCertKeySourceCachesByMaxAge(t *testing.T) {
	t.Parallel()

	key := newTestKey(t)
	body, err := sonic.Marshal(map[string]string{"k1": selfSignedPEM(t, key)})
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Cache-Control", "public, max-age=600, must-revalidate")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	source := NewCertKeySource(CertKeySourceConfig{CertsURL: srv.URL, Timeout: 2 * time.Second})
	verifier := NewVerifier(testProjectID, source)

	for i := 0; i < 3; i++ {
		_, err := verifier.VerifyIDToken(context.Background(), signToken(t, key, "k1", nil))
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), hits.Load())
}

func TestCertKeySourceFailureIsDependencyError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	source := NewCertKeySource(CertKeySourceConfig{
		CertsURL: srv.URL,
		Timeout:  time.Second,
		Circuit:  resilience.BreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenProbes: 1},
	})
	verifier := NewVerifier(testProjectID, source)
	key := newTestKey(t)

	_, err := verifier.VerifyIDToken(context.Background(), signToken(t, key, "k1", nil))
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.Equal(t, resilience.StateOpen, source.breaker.State())

	_, err = verifier.VerifyIDToken(context.Background(), signToken(t, key, "k1", nil))
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestParseMaxAge(t *testing.T) {
	t.Parallel()

	require.Equal(t, 19*time.Second, parseMaxAge("public, max-age=19"))
	require.Equal(t, defaultKeysMaxAge, parseMaxAge(""))
	require.Equal(t, defaultKeysMaxAge, parseMaxAge("max-age=0"))
}
