package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

func (h *Handler) ListPlayerProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerProfiles")
	defer span.End()

	items, err := h.playerProfiles.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list player profiles failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Player profiles listed successfully", playerProfilesToDTO(items))
}

// SearchPlayerProfiles ignores a dateOfBirth it cannot parse rather than
// rejecting the whole search.
func (h *Handler) SearchPlayerProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayerProfiles")
	defer span.End()

	query := r.URL.Query()
	filter := playerprofile.SearchFilter{
		FirstName: query.Get("firstName"),
		LastName:  query.Get("lastName"),
		Country:   query.Get("country"),
	}
	if raw := strings.TrimSpace(query.Get("dateOfBirth")); raw != "" {
		if dob, err := playerprofile.ParseBirthDate(raw); err == nil {
			filter.DateOfBirth = &dob
		}
	}

	items, err := h.playerProfiles.Search(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "search player profiles failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Player profiles searched successfully", playerProfilesToDTO(items))
}

func (h *Handler) GetMyPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPlayerProfile")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.playerProfiles.GetMine(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Player profile fetched successfully", playerProfileToDTO(p))
}

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	profileID := strings.TrimSpace(r.PathValue("id"))

	p, err := h.playerProfiles.View(ctx, profileID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player profile failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Player profile fetched successfully", playerProfileToDTO(p))
}

func (h *Handler) UpdatePlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerProfile")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	profileID := strings.TrimSpace(r.PathValue("id"))

	body, err := readBody(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	patch, err := decodeProfilePatch(body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.playerProfiles.Update(ctx, profileID, principal.UserID, patch)
	if err != nil {
		h.logger.WarnContext(ctx, "update player profile failed", "profile_id", profileID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Player profile updated successfully", playerProfileToDTO(p))
}

// decodeProfilePatch distinguishes an absent field from an explicit null so
// that "dateOfBirth": null clears the stored date.
func decodeProfilePatch(body []byte) (playerprofile.Patch, error) {
	var fields map[string]json.RawMessage
	if err := sonic.Unmarshal(body, &fields); err != nil {
		return playerprofile.Patch{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	var patch playerprofile.Patch
	targets := map[string]**string{
		"firstName":       &patch.FirstName,
		"lastName":        &patch.LastName,
		"country":         &patch.Country,
		"avatar":          &patch.Avatar,
		"primaryPosition": &patch.PrimaryPosition,
	}
	for name, target := range targets {
		raw, ok := fields[name]
		if !ok || isJSONNull(raw) {
			continue
		}
		var v string
		if err := sonic.Unmarshal(raw, &v); err != nil {
			return playerprofile.Patch{}, &usecase.Error{Kind: usecase.ErrInvalidInput, Message: name + " must be a string"}
		}
		*target = &v
	}

	if raw, ok := fields["dateOfBirth"]; ok {
		if isJSONNull(raw) {
			patch.ClearDateOfBirth = true
			return patch, nil
		}
		var v string
		if err := sonic.Unmarshal(raw, &v); err != nil {
			return playerprofile.Patch{}, &usecase.Error{Kind: usecase.ErrInvalidInput, Message: "Invalid date format. Expected DD-MM-YYYY"}
		}
		if strings.TrimSpace(v) == "" {
			patch.ClearDateOfBirth = true
			return patch, nil
		}
		dob, err := playerprofile.ParseBirthDate(v)
		if err != nil {
			return playerprofile.Patch{}, &usecase.Error{Kind: usecase.ErrInvalidInput, Message: "Invalid date format. Expected DD-MM-YYYY"}
		}
		patch.DateOfBirth = &dob
	}
	return patch, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func (h *Handler) GetProfileVisitAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfileVisitAnalytics")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	analytics, err := h.playerProfiles.VisitAnalytics(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Profile visit analytics fetched successfully", visitAnalyticsToDTO(analytics))
}

func (h *Handler) ListFootballPlayerInfos(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFootballPlayerInfos")
	defer span.End()

	items, err := h.profiles.ListPlayers(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Football player profiles listed successfully", profileInfosToDTO(items))
}

func (h *Handler) ListScoutInfos(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoutInfos")
	defer span.End()

	items, err := h.profiles.ListScouts(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "Scout profiles listed successfully", profileInfosToDTO(items))
}
