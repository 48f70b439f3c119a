package gpuatlas

// Config holds atlas configuration.
type Config struct {
	// Width and Height are the atlas texture size.
	// Default: 1024x1024
	Width, Height uint32

	// MaxAtlases limits the number of atlases.
	// Default: 8
	MaxAtlases int

	// Label prefixes the debug label of every atlas texture.
	// Default: "glyphatlas"
	Label string
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:      1024,
		Height:     1024,
		MaxAtlases: 8,
		Label:      "glyphatlas",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width < 64 {
		return &ConfigError{Field: "Width", Reason: "must be at least 64"}
	}
	if c.Width > 8192 {
		return &ConfigError{Field: "Width", Reason: "must be at most 8192"}
	}
	if c.Height < 64 {
		return &ConfigError{Field: "Height", Reason: "must be at least 64"}
	}
	if c.Height > 8192 {
		return &ConfigError{Field: "Height", Reason: "must be at most 8192"}
	}
	if c.MaxAtlases < 1 {
		return &ConfigError{Field: "MaxAtlases", Reason: "must be at least 1"}
	}
	if c.MaxAtlases > 256 {
		return &ConfigError{Field: "MaxAtlases", Reason: "must be at most 256"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "gpuatlas: invalid config." + e.Field + ": " + e.Reason
}
