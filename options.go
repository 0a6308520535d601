package catastrophic

import "log/slog"

const (
	// DefaultInternalCode is the category code reserved for registry errors.
	DefaultInternalCode = "CATASTROPHIC"

	// DefaultSeparator joins a category code and an error number into an identity.
	DefaultSeparator = "_"
)

// Option configures a Registry.
type Option func(*config)

// config holds the settings of a single Registry.
type config struct {
	internalCode string
	separator    string
	logger       *slog.Logger
}

// newConfig creates a configuration with default values.
func newConfig() *config {
	return &config{
		internalCode: DefaultInternalCode,
		separator:    DefaultSeparator,
		logger:       slog.New(slog.DiscardHandler),
	}
}

// WithInternalCode sets the category code reserved for the registry's own errors.
// The code must not contain the separator.
func WithInternalCode(code string) Option {
	return func(c *config) {
		c.internalCode = code
	}
}

// WithSeparator sets the separator placed between a category code and an
// error number in identities. An empty separator is rejected by New.
func WithSeparator(separator string) Option {
	return func(c *config) {
		c.separator = separator
	}
}

// WithLogger sets the logger used to report registrations.
// Registrations are not logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
