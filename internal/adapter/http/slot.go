package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"addy/internal/core/domain"
	"addy/internal/core/port"
)

type allocateSlotRequest struct {
	Keyword    string `json:"keyword"`
	Tier       string `json:"tier"`
	PriceNanos uint64 `json:"price_nanos"`
}

type slotResponse struct {
	ID          uint64    `json:"id"`
	KeywordHash string    `json:"keyword_hash"`
	CampaignID  uint64    `json:"campaign_id"`
	Tier        string    `json:"tier"`
	PriceNanos  uint64    `json:"price_nanos"`
	CreatedAt   time.Time `json:"created_at"`
	Active      bool      `json:"active"`
}

func toSlotResponse(s domain.KeywordSlot) slotResponse {
	return slotResponse{
		ID:          s.ID,
		KeywordHash: s.KeywordHash,
		CampaignID:  s.CampaignID,
		Tier:        s.Tier.String(),
		PriceNanos:  s.PriceNanos,
		CreatedAt:   s.CreatedAt,
		Active:      s.Active,
	}
}

// handleAllocateSlot attaches a keyword to the campaign in the path and
// returns 201 with the slot id.
func (h *Handler) handleAllocateSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, "invalid campaign id")
		return
	}
	var req allocateSlotRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, "invalid JSON")
		return
	}
	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	slotID, err := h.svc.AllocateKeywordSlot(r.Context(), port.SlotRequest{
		Keyword:    req.Keyword,
		CampaignID: id,
		Tier:       tier,
		PriceNanos: req.PriceNanos,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, idResponse{ID: slotID})
}

func (h *Handler) handleListSlots(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, "invalid campaign id")
		return
	}
	slots, err := h.svc.ListCampaignSlots(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]slotResponse, len(slots))
	for i, s := range slots {
		resp[i] = toSlotResponse(s)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, "invalid slot id")
		return
	}
	s, err := h.svc.GetSlot(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toSlotResponse(*s))
}

// handleDeactivateSlot clears the slot's active flag. The keyword stays
// reserved.
func (h *Handler) handleDeactivateSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, "invalid slot id")
		return
	}
	if err = h.svc.DeactivateKeywordSlot(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
