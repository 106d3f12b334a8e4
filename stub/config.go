package stub

// Config is the stub conversion service configuration.
type Config struct {
	// Address to listen on (e.g., ":5000")
	ListenAddr string
}
