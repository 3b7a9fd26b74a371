package config

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	TemplatesDir string
	StaticDir    string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	return ServerConfig{
		Port:         valueOr(getenv("PORT"), "8080"),
		TemplatesDir: valueOr(getenv("TEMPLATES_DIR"), "templates"),
		StaticDir:    valueOr(getenv("STATIC_DIR"), "static"),
	}
}

// valueOr returns value, or fallback when value is empty
func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
