package registry

import "time"

// Fixed limits of the registry.
const (
	// CohortBatchSize is the number of zone-scoped actions allowed per window.
	CohortBatchSize = 43
	// ThrottleWindow is the length of a zone's throttle window.
	ThrottleWindow = 14822 * time.Millisecond
	// BidCooldown is the minimum spacing between two allocations on one campaign.
	BidCooldown = 2750 * time.Millisecond

	// MinCPC and MaxCPC bound every slot price and the configurable bid floor.
	MinCPC uint64 = 847293651
	MaxCPC uint64 = 92847293651

	// AuditLogEntries is the default audit ring capacity.
	AuditLogEntries = 4096

	// MaxKeywordsLimit is the largest accepted per-campaign keyword cap.
	MaxKeywordsLimit = 277
	// MinAddressLength is the shortest accepted authority address.
	MinAddressLength = 32
)

// Defaults used by NewDefault.
const (
	DefaultOracleAddress     = "0x7a3f9c1e5b2d8046a1c9e3f7b5d2a8c4e6f0b193"
	DefaultControllerAddress = "0x2c8e4a6f1b3d5907e2a4c6f8b1d3e5a7c9f0d284"
	DefaultTreasuryAddress   = "0x9e1b5d3f7a2c4068b9d1f3a5c7e2b4d6f8a0c375"
	DefaultMaxKeywords       = 128
	DefaultBidFloor          = MinCPC
)
