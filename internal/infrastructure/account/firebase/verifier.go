package firebase

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

const issuerPrefix = "https://securetoken.google.com/"

type idTokenClaims struct {
	jwt.RegisteredClaims
	AuthTime *jwt.NumericDate `json:"auth_time"`
	Email    string           `json:"email"`
	Name     string           `json:"name"`
}

// Verifier validates Firebase ID tokens locally against Google's signing keys.
type Verifier struct {
	projectID string
	keys      KeySource
	leeway    time.Duration
	now       func() time.Time
}

func NewVerifier(projectID string, keys KeySource) *Verifier {
	return &Verifier{
		projectID: strings.TrimSpace(projectID),
		keys:      keys,
		leeway:    30 * time.Second,
		now:       time.Now,
	}
}

func (v *Verifier) VerifyIDToken(ctx context.Context, raw string) (user.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var claims idTokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, crerr.New("token has no kid header")
		}
		return v.keys.PublicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if stderrors.Is(err, errKeySourceTransient) {
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return user.Principal{}, fmt.Errorf("%w: token subject is empty", usecase.ErrUnauthorized)
	}
	// auth_time is when the user signed in; it must exist and not be in the future.
	if claims.AuthTime == nil {
		return user.Principal{}, fmt.Errorf("%w: token has no auth_time", usecase.ErrUnauthorized)
	}
	if claims.AuthTime.After(v.now().Add(v.leeway)) {
		return user.Principal{}, fmt.Errorf("%w: token auth_time is in the future", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
