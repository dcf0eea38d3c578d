package configs

// HTTP defines configuration for the HTTP server.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// CORSOrigins lists the origins allowed to call the API from a browser.
	// Empty disables the CORS middleware.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}
