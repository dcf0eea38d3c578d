package domain

import "time"

// ActionCode identifies the kind of state change an audit entry records.
type ActionCode string

const (
	ActionCampaignCreate ActionCode = "CAMPAIGN_CREATE"
	ActionCampaignPhase  ActionCode = "CAMPAIGN_PHASE"
	ActionSlotAllocate   ActionCode = "SLOT_ALLOCATE"
	ActionSlotDeactivate ActionCode = "SLOT_DEACTIVATE"
)

// AuditEntry is an immutable record of a state-changing action.
type AuditEntry struct {
	Timestamp time.Time
	Action    ActionCode
	SubjectID uint64
	Detail    string
}
