package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

func (h *Handler) RequestMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestMatch")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req requestMatchRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matches.RequestAnalysis(ctx, usecase.RequestAnalysisInput{
		UserID:    principal.UserID,
		VideoURL:  req.VideoURL,
		Level:     req.MatchLevel,
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		FocusHint: req.FocusHint,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "request match analysis failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "Match submitted for analysis", matchToDTO(m))
}

func (h *Handler) ListMyMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyMatches")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matches.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchSummaryDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchSummaryDTO{ID: m.ID, Status: string(m.Status), CreatedAt: formatTime(m.CreatedAt)})
	}
	writeSuccess(ctx, w, http.StatusOK, "Match requests fetched successfully", out)
}

func (h *Handler) GetMyMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyMatch")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := strings.TrimSpace(r.PathValue("matchId"))

	details, err := h.matches.GetMine(ctx, principal.UserID, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Match fetched successfully", matchDetailToDTO(details))
}
