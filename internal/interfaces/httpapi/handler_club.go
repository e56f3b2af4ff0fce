package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	query := r.URL.Query()
	limit, _ := strconv.Atoi(strings.TrimSpace(query.Get("limit")))

	page, err := h.clubs.ListClubs(ctx, query.Get("cursor"), limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubListItemDTO, 0, len(page.Clubs))
	for _, c := range page.Clubs {
		items = append(items, clubToListItemDTO(c))
	}
	writePage(ctx, w, "Clubs listed successfully", items, paginationDTO{
		HasNextPage: page.HasNextPage,
		NextCursor:  nullable(page.NextCursor),
		Limit:       page.Limit,
	})
}

func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClub")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("id"))
	details, err := h.clubs.GetClub(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "get club failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Club fetched successfully", clubDetailToDTO(details, h.now()))
}

func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClub")
	defer span.End()

	var req clubRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	c, err := h.clubs.CreateClub(ctx, usecase.ClubInput{Name: req.Name, Country: req.Country, LogoURL: req.LogoURL})
	if err != nil {
		h.logger.WarnContext(ctx, "create club failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Club created successfully", clubToDTO(c))
}

func (h *Handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateClub")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("id"))
	var req clubRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	c, err := h.clubs.UpdateClub(ctx, clubID, usecase.ClubInput{Name: req.Name, Country: req.Country, LogoURL: req.LogoURL})
	if err != nil {
		h.logger.WarnContext(ctx, "update club failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Club updated successfully", clubToDTO(c))
}

func (h *Handler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteClub")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("id"))
	if err := h.clubs.DeleteClub(ctx, clubID); err != nil {
		h.logger.WarnContext(ctx, "delete club failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Club deleted successfully", nil)
}

func (h *Handler) JoinClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinClub")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	clubID := strings.TrimSpace(r.PathValue("id"))

	m, joined, err := h.clubs.JoinClub(ctx, clubID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "join club failed", "club_id", clubID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if !joined {
		writeSuccess(ctx, w, http.StatusOK, "Already a member of this club", membershipToDTO(m))
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, "Joined club successfully", membershipToDTO(m))
}

func (h *Handler) LeaveClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveClub")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	clubID := strings.TrimSpace(r.PathValue("id"))

	if err := h.clubs.LeaveClub(ctx, clubID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "leave club failed", "club_id", clubID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Left club successfully", nil)
}

func (h *Handler) ListClubMemberships(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubMemberships")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("id"))
	items, err := h.clubs.ListMemberships(ctx, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]membershipDTO, 0, len(items))
	for _, m := range items {
		out = append(out, membershipToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, "Club memberships listed successfully", out)
}
