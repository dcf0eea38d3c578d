package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"addy/internal/core/domain"
)

type zoneResponse struct {
	Zone            string     `json:"zone"`
	CanPerform      bool       `json:"can_perform"`
	ActionsInWindow int        `json:"actions_in_window"`
	LastReset       *time.Time `json:"last_reset,omitempty"`
}

type auditResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	SubjectID uint64    `json:"subject_id"`
	Detail    string    `json:"detail"`
}

type statsResponse struct {
	InstanceID        string            `json:"instance_id"`
	Campaigns         uint64            `json:"campaigns"`
	Slots             uint64            `json:"slots"`
	Activations       uint64            `json:"activations"`
	AuditRetained     int               `json:"audit_retained"`
	AuditTotal        uint64            `json:"audit_total"`
	AuditDropped      uint64            `json:"audit_export_dropped"`
	MaxKeywords       int               `json:"max_keywords_per_campaign"`
	BidFloorNanos     uint64            `json:"bid_floor_nanos"`
	TierCaps          map[string]uint64 `json:"tier_caps_nanos"`
	ThrottleCapacity  int               `json:"throttle_capacity"`
	ThrottleWindowMS  int64             `json:"throttle_window_ms"`
	BidCooldownMS     int64             `json:"bid_cooldown_ms"`
	OracleAddress     string            `json:"oracle_address"`
	ControllerAddress string            `json:"controller_address"`
	TreasuryAddress   string            `json:"treasury_address"`
}

const defaultAuditLimit = 100

// handleZoneThrottle reports whether the zone in the path currently admits
// campaign creation.
func (h *Handler) handleZoneThrottle(w http.ResponseWriter, r *http.Request) {
	zone, err := domain.ParseZone(chi.URLParam(r, "zone"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.svc.ZoneStatus(r.Context(), zone)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := zoneResponse{
		Zone:            st.Zone.String(),
		CanPerform:      st.CanPerform,
		ActionsInWindow: st.ActionsInWindow,
	}
	if !st.LastReset.IsZero() {
		resp.LastReset = &st.LastReset
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleAudit returns the newest audit entries, oldest first. The optional
// `limit` query parameter defaults to 100; 0 returns everything retained.
func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeBadRequest(w, "invalid limit")
			return
		}
		limit = n
	}
	entries, err := h.svc.RecentAudit(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]auditResponse, len(entries))
	for i, e := range entries {
		resp[i] = auditResponse{
			Timestamp: e.Timestamp,
			Action:    string(e.Action),
			SubjectID: e.SubjectID,
			Detail:    e.Detail,
		}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	caps := make(map[string]uint64, len(st.TierCaps))
	for tier, c := range st.TierCaps {
		caps[tier.String()] = c
	}
	h.writeJSON(w, http.StatusOK, statsResponse{
		InstanceID:        st.InstanceID,
		Campaigns:         st.Campaigns,
		Slots:             st.Slots,
		Activations:       st.Activations,
		AuditRetained:     st.AuditRetained,
		AuditTotal:        st.AuditTotal,
		AuditDropped:      st.AuditDropped,
		MaxKeywords:       st.MaxKeywords,
		BidFloorNanos:     st.BidFloorNanos,
		TierCaps:          caps,
		ThrottleCapacity:  st.ThrottleCapacity,
		ThrottleWindowMS:  st.ThrottleWindow.Milliseconds(),
		BidCooldownMS:     st.BidCooldown.Milliseconds(),
		OracleAddress:     st.OracleAddress,
		ControllerAddress: st.ControllerAddress,
		TreasuryAddress:   st.TreasuryAddress,
	})
}
