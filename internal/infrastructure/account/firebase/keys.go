package firebase

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
	"github.com/riskibarqy/scouting-platform/internal/platform/resilience"
)

const (
	DefaultCertsURL   = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	defaultKeysMaxAge = time.Hour
)

var (
	errKeySourceTransient = crerr.New("firebase key source transient failure")
	errUnknownKeyID       = crerr.New("unknown signing key id")

	maxAgePattern = regexp.MustCompile(`max-age=(\d+)`)
)

// KeySource resolves the RSA public key for a token's kid header.
type KeySource interface {
	PublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

type CertKeySourceConfig struct {
	CertsURL string
	Timeout  time.Duration
	Circuit  resilience.BreakerConfig
	Logger   *logging.Logger
}

// CertKeySource downloads Google's x509 signing certificates and keeps them
// for as long as the Cache-Control max-age allows.
type CertKeySource struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	breaker *resilience.Breaker
	logger  *logging.Logger
	now     func() time.Time
	flight  singleflight.Group

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

func NewCertKeySource(cfg CertKeySourceConfig) *CertKeySource {
	url := cfg.CertsURL
	if url == "" {
		url = DefaultCertsURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &CertKeySource{
		client: &fasthttp.Client{
			Name:                "scouting-platform",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		url:     url,
		timeout: timeout,
		breaker: resilience.NewBreaker(cfg.Circuit),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *CertKeySource) PublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if key, ok := s.cached(kid); ok {
		return key, nil
	}

	_, err, _ := s.flight.Do("certs", func() (any, error) {
		return resilience.Do(ctx, s.breaker, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.refresh(ctx)
		})
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			s.logger.WarnContext(ctx, "firebase key source circuit open", "state", string(s.breaker.State()))
		}
		return nil, fmt.Errorf("%w: refresh firebase signing keys: %v", errKeySourceTransient, err)
	}

	if key, ok := s.cached(kid); ok {
		return key, nil
	}
	return nil, crerr.Wrapf(errUnknownKeyID, "kid %q", kid)
}

func (s *CertKeySource) cached(kid string) (*rsa.PublicKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.keys == nil || !s.now().Before(s.expiresAt) {
		return nil, false
	}
	key, ok := s.keys[kid]
	return key, ok
}

func (s *CertKeySource) refresh(ctx context.Context) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := s.now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.client.DoDeadline(req, resp, deadline); err != nil {
		return crerr.Wrap(err, "fetch firebase certificates")
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return crerr.Newf("fetch firebase certificates: status=%d", resp.StatusCode())
	}

	keys, err := parseCertificates(resp.Body())
	if err != nil {
		return err
	}

	maxAge := parseMaxAge(string(resp.Header.Peek("Cache-Control")))
	s.mu.Lock()
	s.keys = keys
	s.expiresAt = s.now().Add(maxAge)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "firebase signing keys refreshed", "count", len(keys), "max_age", maxAge.String())
	return nil
}

func parseCertificates(body []byte) (map[string]*rsa.PublicKey, error) {
	var certs map[string]string
	if err := sonic.Unmarshal(body, &certs); err != nil {
		return nil, crerr.Wrap(err, "decode firebase certificates")
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		block, _ := pem.Decode([]byte(certPEM))
		if block == nil {
			return nil, crerr.Newf("certificate %q is not PEM encoded", kid)
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, crerr.Wrapf(err, "parse certificate %q", kid)
		}
		key, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, crerr.Newf("certificate %q does not carry an RSA key", kid)
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return nil, crerr.New("firebase certificate set is empty")
	}
	return keys, nil
}

func parseMaxAge(cacheControl string) time.Duration {
	m := maxAgePattern.FindStringSubmatch(cacheControl)
	if m == nil {
		return defaultKeysMaxAge
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil || seconds <= 0 {
		return defaultKeysMaxAge
	}
	return time.Duration(seconds) * time.Second
}
