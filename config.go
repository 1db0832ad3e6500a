package mailaddr

import "log/slog"

// DefaultMaxNestingDepth bounds nested comments and angle brackets.
const DefaultMaxNestingDepth = 16

// ValidatorConfig contains configuration options for a Validator.
type ValidatorConfig struct {
	// MaxNestingDepth is the deepest nesting of comments, or of
	// "name <address>" forms, that the parser accepts. Deeper input fails
	// with TooDeeplyNested.
	// Default: 16
	MaxNestingDepth int

	// Logger receives debug records when a rule rejects an address.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultValidatorConfig returns a ValidatorConfig with sensible defaults.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MaxNestingDepth: DefaultMaxNestingDepth,
		Logger:          slog.Default(),
	}
}

// withDefaults fills unset fields.
func (c ValidatorConfig) withDefaults() ValidatorConfig {
	if c.MaxNestingDepth <= 0 {
		c.MaxNestingDepth = DefaultMaxNestingDepth
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
