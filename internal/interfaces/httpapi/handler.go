package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// Services groups the use cases served over HTTP.
type Services struct {
	Users          *usecase.UserService
	Clubs          *usecase.ClubService
	PlayerProfiles *usecase.PlayerProfileService
	Profiles       *usecase.ProfileService
	Matches        *usecase.MatchService
	Analysis       *usecase.AnalysisService
	Statistics     *usecase.StatisticsService
}

type Handler struct {
	users          *usecase.UserService
	clubs          *usecase.ClubService
	playerProfiles *usecase.PlayerProfileService
	profiles       *usecase.ProfileService
	matches        *usecase.MatchService
	analysis       *usecase.AnalysisService
	statistics     *usecase.StatisticsService
	logger         *logging.Logger
	validator      *validator.Validate
	now            func() time.Time
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		users:          services.Users,
		clubs:          services.Clubs,
		playerProfiles: services.PlayerProfiles,
		profiles:       services.Profiles,
		matches:        services.Matches,
		analysis:       services.Analysis,
		statistics:     services.Statistics,
		logger:         logger,
		validator:      validator.New(),
		now:            time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusNotFound, responseEnvelope{
		Status:  statusError,
		Message: "Route not found",
		Error: map[string]string{
			"path":   r.URL.Path,
			"method": r.Method,
		},
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeAndValidate reads a JSON body into dst and runs the validator tags.
func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	return body, nil
}

func mustPrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}
