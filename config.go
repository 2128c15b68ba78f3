package mdpress

// Config holds all configuration for an mdpress instance. It is constructed
// once and threaded through explicitly; nothing reads the environment
// implicitly (use EnvOr/MustEnv in your main to populate it).
type Config struct {
	Name string // site name shown in page chrome (default "mdpress")
	URL  string // canonical URL of this tool (default "http://localhost:3000")

	Addr         string // listen address (default ":3000")
	DatabasePath string // publish history SQLite path (default "data/mdpress.db")

	SessionSecret string // required: session encryption secret
	CookieSecure  bool   // set true for HTTPS

	AnthropicAPIKey string // optional: enables the AI generation endpoint
	AnthropicModel  string // optional model override

	MaxUploadSize int64 // per-file upload cap in bytes (default 10MB)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "mdpress"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/mdpress.db"
	}
	if c.MaxUploadSize == 0 {
		c.MaxUploadSize = 10 << 20
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
