package httpapi

import "net/http"

func handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, route(pattern, h))
}

func authed(verifier TokenVerifier, fn http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, fn)
}

func internal(apiKey string, fn http.HandlerFunc) http.Handler {
	return RequireAPIKey(apiKey, fn)
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metricsHandler http.Handler) {
	handle(mux, "GET /healthz", http.HandlerFunc(handler.Healthz))
	if metricsHandler != nil {
		handle(mux, "GET /metrics", metricsHandler)
	}
	if !swaggerEnabled {
		return
	}

	handle(mux, "GET /openapi.yaml", http.HandlerFunc(handler.OpenAPI))
	handle(mux, "GET /docs", http.HandlerFunc(handler.SwaggerUI))
	handle(mux, "GET /docs/", http.HandlerFunc(handler.SwaggerUI))
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	handle(mux, "POST /user/register", authed(verifier, handler.RegisterUser))
	handle(mux, "GET /user/me", authed(verifier, handler.GetMe))
}

func registerClubRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	handle(mux, "GET /club", http.HandlerFunc(handler.ListClubs))
	handle(mux, "GET /club/{id}", http.HandlerFunc(handler.GetClub))
	handle(mux, "POST /club", authed(verifier, handler.CreateClub))
	handle(mux, "PUT /club/{id}", authed(verifier, handler.UpdateClub))
	handle(mux, "DELETE /club/{id}", authed(verifier, handler.DeleteClub))
	handle(mux, "POST /club/{id}/members", authed(verifier, handler.JoinClub))
	handle(mux, "DELETE /club/{id}/members/me", authed(verifier, handler.LeaveClub))
	handle(mux, "GET /club/{id}/memberships", http.HandlerFunc(handler.ListClubMemberships))
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	handle(mux, "GET /player", authed(verifier, handler.ListPlayerProfiles))
	handle(mux, "GET /player/search", authed(verifier, handler.SearchPlayerProfiles))
	handle(mux, "GET /player/me", authed(verifier, handler.GetMyPlayerProfile))
	handle(mux, "GET /player/analytics/visits", authed(verifier, handler.GetProfileVisitAnalytics))
	handle(mux, "GET /player/{id}", authed(verifier, handler.GetPlayerProfile))
	handle(mux, "PUT /player/{id}", authed(verifier, handler.UpdatePlayerProfile))

	handle(mux, "GET /profile/players", http.HandlerFunc(handler.ListFootballPlayerInfos))
	handle(mux, "GET /profile/scouts", http.HandlerFunc(handler.ListScoutInfos))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, apiKey string) {
	handle(mux, "POST /match/request", authed(verifier, handler.RequestMatch))
	handle(mux, "GET /match", authed(verifier, handler.ListMyMatches))
	handle(mux, "GET /match/{matchId}", authed(verifier, handler.GetMyMatch))
	handle(mux, "PUT /match/{matchId}", internal(apiKey, handler.UpdateMatchStatus))
	handle(mux, "POST /match/{matchId}/results", internal(apiKey, handler.SubmitMatchResult))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, apiKey string) {
	handle(mux, "GET /internal/next-match", internal(apiKey, handler.NextMatch))
	handle(mux, "PUT /internal/matches/{matchId}/status", internal(apiKey, handler.UpdateMatchStatus))
	handle(mux, "POST /internal/matches/{matchId}/results", internal(apiKey, handler.SubmitMatchResult))
}

func registerStatisticsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	handle(mux, "GET /statics/player", authed(verifier, handler.GetPlayerStatistics))
	handle(mux, "GET /statics/club/{club_id}", authed(verifier, handler.GetClubStatistics))
}
