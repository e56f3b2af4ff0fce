package httpapi

import (
	"net/http"
	"strings"
)

// NextMatch hands the oldest pending match to the analysis worker.
func (h *Handler) NextMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NextMatch")
	defer span.End()

	m, ok, err := h.analysis.ClaimNext(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "claim next match failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, "No pending matches available.", nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Next match is available to analyse", nextMatchDTO{ID: m.ID, VideoURL: m.VideoURL})
}

func (h *Handler) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchStatus")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchId"))
	var req updateMatchStatusRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := h.analysis.UpdateStatus(ctx, matchID, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "update match status failed", "match_id", matchID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Match status updated to "+string(status), map[string]string{
		"id":     matchID,
		"status": string(status),
	})
}

func (h *Handler) SubmitMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMatchResult")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchId"))
	body, err := readBody(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.analysis.SubmitResult(ctx, matchID, body)
	if err != nil {
		h.logger.WarnContext(ctx, "submit match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Analysis data saved successfully", map[string]string{
		"matchId":     result.MatchID,
		"submittedAt": formatTime(result.SubmittedAt),
	})
}
