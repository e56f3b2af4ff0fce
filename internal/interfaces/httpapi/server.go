package httpapi

import (
	"net/http"

	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
	"github.com/riskibarqy/scouting-platform/internal/platform/metrics"
)

type RouterConfig struct {
	Verifier           TokenVerifier
	Logger             *logging.Logger
	Metrics            metrics.Recorder
	MetricsHandler     http.Handler
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	InternalAPIKey     string
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled, cfg.MetricsHandler)
	registerUserRoutes(mux, handler, cfg.Verifier)
	registerClubRoutes(mux, handler, cfg.Verifier)
	registerPlayerRoutes(mux, handler, cfg.Verifier)
	registerMatchRoutes(mux, handler, cfg.Verifier, cfg.InternalAPIKey)
	registerInternalRoutes(mux, handler, cfg.InternalAPIKey)
	registerStatisticsRoutes(mux, handler, cfg.Verifier)
	mux.Handle("/", route("/", http.HandlerFunc(handler.NotFound)))

	return RequestTracing(RequestLogging(logger, cfg.Metrics, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

// route records the matched pattern for the request logger.
func route(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if info := routeInfoFromContext(r.Context()); info != nil {
			info.pattern = pattern
		}
		next.ServeHTTP(w, r)
	})
}
