package httpapi

import "net/http"

func (h *Handler) GetPlayerStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStatistics")
	defer span.End()

	rows, err := h.statistics.PlayerStatistics(ctx, r.URL.Query().Get("player_id"))
	if err != nil {
		h.logger.WarnContext(ctx, "get player statistics failed", "player_id", r.URL.Query().Get("player_id"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Player statistics fetched successfully", statisticsToDTO(rows))
}

func (h *Handler) GetClubStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubStatistics")
	defer span.End()

	clubID := r.PathValue("club_id")
	rows, err := h.statistics.ClubStatistics(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "get club statistics failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Club statistics fetched successfully", statisticsToDTO(rows))
}
