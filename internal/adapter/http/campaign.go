package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"addy/internal/core/domain"
)

type createCampaignRequest struct {
	Owner string `json:"owner"`
	Zone  string `json:"zone"`
}

type transitionRequest struct {
	Phase string `json:"phase"`
}

type campaignResponse struct {
	ID               uint64     `json:"id"`
	Owner            string     `json:"owner"`
	Phase            string     `json:"phase"`
	Zone             string     `json:"zone"`
	CreatedAt        time.Time  `json:"created_at"`
	KeywordCount     int        `json:"keyword_count"`
	TotalSpendNanos  uint64     `json:"total_spend_nanos"`
	LastAllocationAt *time.Time `json:"last_allocation_at,omitempty"`
}

func toCampaignResponse(c domain.Campaign) campaignResponse {
	resp := campaignResponse{
		ID:              c.ID,
		Owner:           c.Owner,
		Phase:           c.Phase.String(),
		Zone:            c.Zone.String(),
		CreatedAt:       c.CreatedAt,
		KeywordCount:    c.KeywordCount,
		TotalSpendNanos: c.TotalSpend,
	}
	if !c.LastAllocationAt.IsZero() {
		t := c.LastAllocationAt
		resp.LastAllocationAt = &t
	}
	return resp
}

// handleCreateCampaign creates a Draft campaign and returns 201 with its id.
// Throttled zones produce 429.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, "invalid JSON")
		return
	}
	zone, err := domain.ParseZone(req.Zone)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.svc.CreateCampaign(r.Context(), req.Owner, zone)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]campaignResponse, len(campaigns))
	for i, c := range campaigns {
		resp[i] = toCampaignResponse(c)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, "invalid campaign id")
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(*c))
}

// handleTransitionPhase moves a campaign to the requested phase. Archived
// campaigns answer 409.
func (h *Handler) handleTransitionPhase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, "invalid campaign id")
		return
	}
	var req transitionRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, "invalid JSON")
		return
	}
	phase, err := domain.ParsePhase(req.Phase)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.svc.TransitionCampaignPhase(r.Context(), id, phase); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
