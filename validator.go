package mailaddr

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"unicode/utf8"
)

// Validator checks addresses against the RFC grammar and an additional set
// of rules. A Validator is immutable: every With method returns a new
// Validator and leaves the receiver untouched, so one instance can be shared
// between goroutines.
//
//	v := mailaddr.StrictValidator().
//	    WithRule(mailaddr.DisallowReservedDomains()).
//	    WithRule(mailaddr.RequireValidMXRecord())
//
//	if result := v.Validate("user@example.org"); !result.IsSuccess() {
//	    log.Printf("rejected: %s", result.FailureReason())
//	}
type Validator struct {
	rules    []Rule
	maxDepth int
	logger   *slog.Logger
}

// NewValidator returns a Validator that only applies the RFC grammar. It
// accepts IP literal domains, dotless domains and explicit source routes;
// see StrictValidator.
func NewValidator() *Validator {
	return NewValidatorWithConfig(DefaultValidatorConfig())
}

// NewValidatorWithConfig returns a rule-less Validator using cfg.
func NewValidatorWithConfig(cfg ValidatorConfig) *Validator {
	cfg = cfg.withDefaults()
	return &Validator{
		maxDepth: cfg.MaxNestingDepth,
		logger:   cfg.Logger,
	}
}

// StrictValidator returns a Validator that also rejects IP literal domains,
// dotless domains and explicit source routes.
func StrictValidator() *Validator {
	return NewValidator().WithRules(
		DisallowIPDomain(),
		RequireTopLevelDomain(),
		DisallowExplicitSourceRouting(),
	)
}

func (v *Validator) clone() *Validator {
	c := *v
	c.rules = slices.Clone(v.rules)
	return &c
}

// WithRule returns a Validator that also applies rule. A rule that is
// already registered is ignored; distinct rules sharing a name all apply.
func (v *Validator) WithRule(rule Rule) *Validator {
	return v.WithRules(rule)
}

// WithRules returns a Validator that also applies rules.
func (v *Validator) WithRules(rules ...Rule) *Validator {
	c := v.clone()
	for _, rule := range rules {
		if rule.check == nil || c.hasRule(rule) {
			continue
		}
		c.rules = append(c.rules, rule)
	}
	return c
}

func (v *Validator) hasRule(rule Rule) bool {
	return slices.ContainsFunc(v.rules, func(r Rule) bool { return r.id == rule.id })
}

// WithLogger returns a Validator that logs rule rejections to logger.
func (v *Validator) WithLogger(logger *slog.Logger) *Validator {
	c := v.clone()
	if logger == nil {
		logger = slog.Default()
	}
	c.logger = logger
	return c
}

// WithMaxNestingDepth returns a Validator with a different nesting limit.
// Values <= 0 restore the default.
func (v *Validator) WithMaxNestingDepth(depth int) *Validator {
	c := v.clone()
	if depth <= 0 {
		depth = DefaultMaxNestingDepth
	}
	c.maxDepth = depth
	return c
}

// Rules returns the names of the registered rules in registration order.
func (v *Validator) Rules() []string {
	names := make([]string, len(v.rules))
	for i, r := range v.rules {
		names[i] = r.name
	}
	return names
}

// Validate parses address and applies every rule.
func (v *Validator) Validate(address string) ValidationResult {
	return v.ValidateContext(context.Background(), address)
}

// ValidateContext is Validate with a context for rules that do network I/O,
// such as RequireValidMXRecord.
//
// Input that is not valid UTF-8 fails with InvalidUTF8. A parse failure is
// returned as is. When a rule rejects the parsed address
// the result is FailedCustomValidation; the failing rule is only reported in
// the debug log.
func (v *Validator) ValidateContext(ctx context.Context, address string) ValidationResult {
	if !utf8.ValidString(address) {
		return failure(InvalidUTF8)
	}

	email, reason := parse([]rune(address), 0, v.maxDepth)
	if reason != failureNone {
		return failure(reason)
	}

	for _, rule := range v.rules {
		if !rule.check(ctx, email, v.logger) {
			v.logger.Debug("address rejected by rule",
				slog.String("rule", rule.name),
				slog.String("address", address),
			)
			return failure(FailedCustomValidation)
		}
	}
	return success(email)
}

// IsValid reports whether address passes validation.
func (v *Validator) IsValid(address string) bool {
	return v.Validate(address).IsSuccess()
}

// IsInvalid reports whether address fails validation.
func (v *Validator) IsInvalid(address string) bool {
	return !v.IsValid(address)
}

// EnforceValid returns an error wrapping ErrInvalidEmail if address fails
// validation.
func (v *Validator) EnforceValid(address string) error {
	if result := v.Validate(address); !result.IsSuccess() {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, result.FailureReason())
	}
	return nil
}

// TryParse returns the parsed address if it passes validation.
func (v *Validator) TryParse(address string) (*Email, bool) {
	return v.Validate(address).Email()
}

// String returns a short description of the Validator.
func (v *Validator) String() string {
	return fmt.Sprintf("Validator[validationRuleCount=%d]", len(v.rules))
}
