package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addy/internal/adapter/usecase"
	"addy/internal/core/domain"
	"addy/internal/core/registry"
	"addy/internal/metrics"
)

type testServer struct {
	t *testing.T
	h http.Handler
}

func newServer(t *testing.T, reg *registry.Registry, opts Options) *testServer {
	t.Helper()
	if reg == nil {
		reg = registry.NewDefault()
	}
	uc, err := usecase.NewRegistryUseCase(usecase.Config{Registry: reg})
	require.NoError(t, err)
	return &testServer{t: t, h: NewHandler(uc, nil, opts).Router()}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func (s *testServer) createCampaign(owner, zone string) uint64 {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/campaigns", map[string]string{"owner": owner, "zone": zone})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[idResponse](s.t, rec).ID
}

func steppingClock(step time.Duration) func() time.Time {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	var n atomic.Int64
	return func() time.Time { return base.Add(time.Duration(n.Add(1)) * step) }
}

func TestCreateAndGetCampaign(t *testing.T) {
	s := newServer(t, nil, Options{})

	id := s.createCampaign("acme", "beta")
	assert.Equal(t, uint64(1), id)

	rec := s.do(http.MethodGet, "/api/v1/campaigns/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c := decode[campaignResponse](t, rec)
	assert.Equal(t, "acme", c.Owner)
	assert.Equal(t, "draft", c.Phase)
	assert.Equal(t, "beta", c.Zone)
	assert.Nil(t, c.LastAllocationAt)

	rec = s.do(http.MethodGet, "/api/v1/campaigns", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]campaignResponse](t, rec), 1)
}

func TestCreateCampaignBadInput(t *testing.T) {
	s := newServer(t, nil, Options{})

	tests := []struct {
		name string
		body any
	}{
		{"invalid json", "{"},
		{"unknown zone", map[string]string{"owner": "acme", "zone": "omega"}},
		{"blank owner", map[string]string{"owner": " ", "zone": "alpha"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/v1/campaigns", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_ARGUMENT", decode[errorResponse](t, rec).Code)
		})
	}
}

func TestGetCampaignErrors(t *testing.T) {
	s := newServer(t, nil, Options{})

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/campaigns/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/campaigns/0", nil).Code)

	rec := s.do(http.MethodGet, "/api/v1/campaigns/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, rec).Code)
}

func TestZoneThrottleOverHTTP(t *testing.T) {
	s := newServer(t, nil, Options{})

	for i := 0; i < registry.CohortBatchSize; i++ {
		s.createCampaign("acme", "alpha")
	}
	rec := s.do(http.MethodPost, "/api/v1/campaigns", map[string]string{"owner": "acme", "zone": "alpha"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "THROTTLE_EXCEEDED", decode[errorResponse](t, rec).Code)

	rec = s.do(http.MethodGet, "/api/v1/zones/alpha/throttle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	z := decode[zoneResponse](t, rec)
	assert.False(t, z.CanPerform)
	assert.Equal(t, registry.CohortBatchSize, z.ActionsInWindow)
	assert.NotNil(t, z.LastReset)

	rec = s.do(http.MethodGet, "/api/v1/zones/delta/throttle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	z = decode[zoneResponse](t, rec)
	assert.True(t, z.CanPerform)
	assert.Nil(t, z.LastReset)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/zones/omega/throttle", nil).Code)
}

func TestPhaseTransitionOverHTTP(t *testing.T) {
	s := newServer(t, nil, Options{})
	s.createCampaign("acme", "gamma")

	rec := s.do(http.MethodPost, "/api/v1/campaigns/1/phase", map[string]string{"phase": "live"})
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodPost, "/api/v1/campaigns/1/phase", map[string]string{"phase": "archived"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/campaigns/1/phase", map[string]string{"phase": "draft"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STATE", decode[errorResponse](t, rec).Code)

	rec = s.do(http.MethodPost, "/api/v1/campaigns/1/phase", map[string]string{"phase": "deleted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/campaigns/5/phase", map[string]string{"phase": "live"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSlotAllocationOverHTTP(t *testing.T) {
	s := newServer(t, nil, Options{})
	first := s.createCampaign("acme", "alpha")
	s.createCampaign("globex", "beta")
	lowCap, _ := registry.DefaultTierCaps().Cap(domain.TierLow)

	body := map[string]any{"keyword": "red shoes", "tier": "low", "price_nanos": lowCap}
	rec := s.do(http.MethodPost, "/api/v1/campaigns/1/slots", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	slotID := decode[idResponse](t, rec).ID

	rec = s.do(http.MethodGet, "/api/v1/slots/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	slot := decode[slotResponse](t, rec)
	assert.Equal(t, slotID, slot.ID)
	assert.Equal(t, first, slot.CampaignID)
	assert.Equal(t, "low", slot.Tier)
	assert.True(t, slot.Active)
	assert.Len(t, slot.KeywordHash, 64)

	// same keyword on another campaign
	rec = s.do(http.MethodPost, "/api/v1/campaigns/2/slots", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE", decode[errorResponse](t, rec).Code)

	// second allocation on the first campaign inside the cooldown
	rec = s.do(http.MethodPost, "/api/v1/campaigns/1/slots",
		map[string]any{"keyword": "blue shoes", "tier": "low", "price_nanos": lowCap})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "COOLDOWN", decode[errorResponse](t, rec).Code)

	rec = s.do(http.MethodPost, "/api/v1/campaigns/2/slots",
		map[string]any{"keyword": "green shoes", "tier": "low", "price_nanos": lowCap + 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/campaigns/2/slots",
		map[string]any{"keyword": "green shoes", "tier": "mythic", "price_nanos": lowCap})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/campaigns/1/slots", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]slotResponse](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/v1/campaigns/2/slots", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]slotResponse](t, rec))
}

func TestSlotCapacityOverHTTP(t *testing.T) {
	reg, err := registry.New(registry.DefaultOracleAddress, registry.DefaultControllerAddress,
		registry.DefaultTreasuryAddress, 1, registry.MinCPC,
		registry.WithClock(steppingClock(registry.BidCooldown)))
	require.NoError(t, err)
	s := newServer(t, reg, Options{})
	s.createCampaign("acme", "alpha")

	rec := s.do(http.MethodPost, "/api/v1/campaigns/1/slots",
		map[string]any{"keyword": "one", "tier": "zero", "price_nanos": registry.MinCPC})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/campaigns/1/slots",
		map[string]any{"keyword": "two", "tier": "zero", "price_nanos": registry.MinCPC})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "CAPACITY_EXCEEDED", decode[errorResponse](t, rec).Code)
}

func TestDeactivateSlotOverHTTP(t *testing.T) {
	s := newServer(t, nil, Options{})
	s.createCampaign("acme", "alpha")
	rec := s.do(http.MethodPost, "/api/v1/campaigns/1/slots",
		map[string]any{"keyword": "shoes", "tier": "zero", "price_nanos": registry.MinCPC})
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/slots/1", nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodDelete, "/api/v1/slots/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/slots/2", nil).Code)

	rec = s.do(http.MethodGet, "/api/v1/slots/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[slotResponse](t, rec).Active)
}

func TestAuditOverHTTP(t *testing.T) {
	s := newServer(t, nil, Options{})
	for i := 0; i < 3; i++ {
		s.createCampaign("acme", "alpha")
	}

	rec := s.do(http.MethodGet, "/api/v1/audit?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]auditResponse](t, rec)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(2), entries[0].SubjectID)
	assert.Equal(t, "CAMPAIGN_CREATE", entries[1].Action)

	rec = s.do(http.MethodGet, "/api/v1/audit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]auditResponse](t, rec), 3)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/audit?limit=-1", nil).Code)
}

func TestStatsOverHTTP(t *testing.T) {
	s := newServer(t, nil, Options{})
	s.createCampaign("acme", "alpha")

	rec := s.do(http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[statsResponse](t, rec)
	assert.Equal(t, uint64(1), st.Campaigns)
	assert.Equal(t, registry.DefaultMaxKeywords, st.MaxKeywords)
	assert.Equal(t, registry.CohortBatchSize, st.ThrottleCapacity)
	assert.Equal(t, int64(14822), st.ThrottleWindowMS)
	assert.Equal(t, registry.MaxCPC, st.TierCaps["ultra"])
	assert.Equal(t, registry.DefaultTreasuryAddress, st.TreasuryAddress)
	assert.NotEmpty(t, st.InstanceID)
}

func TestMetricsAndCORS(t *testing.T) {
	promReg := prometheus.NewRegistry()
	m, err := metrics.New(promReg, "addy")
	require.NoError(t, err)
	uc, err := usecase.NewRegistryUseCase(usecase.Config{Registry: registry.NewDefault(), Metrics: m})
	require.NoError(t, err)
	h := NewHandler(uc, nil, Options{
		Metrics:        promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
		AllowedOrigins: []string{"https://console.example.com"},
	}).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader(`{"owner":"acme","zone":"alpha"}`))
	req.Header.Set("Origin", "https://console.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "https://console.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `addy_registry_operations_total{op="create_campaign",result="ok"} 1`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor("SOMETHING_ELSE"))
}
