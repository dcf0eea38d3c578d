package configs

// Registry holds the construction parameters of the keyword-slot registry.
// Defaults match registry.NewDefault.
type Registry struct {
	OracleAddress     string `env:"ORACLE_ADDRESS" envDefault:"0x7a3f9c1e5b2d8046a1c9e3f7b5d2a8c4e6f0b193"`
	ControllerAddress string `env:"CONTROLLER_ADDRESS" envDefault:"0x2c8e4a6f1b3d5907e2a4c6f8b1d3e5a7c9f0d284"`
	TreasuryAddress   string `env:"TREASURY_ADDRESS" envDefault:"0x9e1b5d3f7a2c4068b9d1f3a5c7e2b4d6f8a0c375"`
	// MaxKeywords is the per-campaign keyword cap, 1..277.
	MaxKeywords int `env:"MAX_KEYWORDS" envDefault:"128"`
	// BidFloorNanos is the lowest accepted slot price.
	BidFloorNanos uint64 `env:"BID_FLOOR_NANOS" envDefault:"847293651"`
	// AuditCapacity is the number of audit entries kept in memory.
	AuditCapacity int `env:"AUDIT_CAPACITY" envDefault:"4096"`
	// SeedCampaigns creates that many demo campaigns on startup.
	SeedCampaigns int `env:"SEED_CAMPAIGNS" envDefault:"0"`
}
