package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/synqronlabs/mailaddr"
	"github.com/synqronlabs/mailaddr/dns"
)

const checkDescription = `` +
	`Validates email addresses and reports why invalid ones were rejected

Addresses are read from the arguments, or from standard input one per line
when no arguments are given. Each address produces one line of output:

  valid<TAB>ADDRESS
  invalid<TAB>ADDRESS<TAB>REASON

The exit status is non-zero if any address is invalid.
`

type checkOptions struct {
	strict             bool
	disallowIP         bool
	requireTLD         bool
	disallowRouting    bool
	disallowQuoted     bool
	disallowDisplay    bool
	disallowWhitespace bool
	requireASCII       bool
	disallowReserved   bool
	requireICANN       bool
	requireMX          bool
	implicitMX         bool
	mxTimeout          time.Duration
	mxRetries          int
	nameservers        []string
	maxDepth           int
	json               bool
	normalize          bool
	verbose            bool
}

// checkOutput is the --json form of one result.
type checkOutput struct {
	Address    string          `json:"address"`
	Valid      bool            `json:"valid"`
	Reason     string          `json:"reason,omitempty"`
	Normalized string          `json:"normalized,omitempty"`
	Email      *mailaddr.Email `json:"email,omitempty"`
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [address...]",
		Short: "Validate email addresses",
		Long:  checkDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.strict, "strict", false, "reject IP literals, dotless domains and source routes")
	f.BoolVar(&opts.disallowIP, "disallow-ip", false, "reject IP address literal domains")
	f.BoolVar(&opts.requireTLD, "require-tld", false, "reject dotless domains")
	f.BoolVar(&opts.disallowRouting, "disallow-source-routing", false, "reject explicit source routes")
	f.BoolVar(&opts.disallowQuoted, "disallow-quoted", false, "reject quoted local-parts")
	f.BoolVar(&opts.disallowDisplay, "disallow-display-name", false, `reject the "name <address>" form`)
	f.BoolVar(&opts.disallowWhitespace, "disallow-whitespace", false, "reject obsolete folding whitespace")
	f.BoolVar(&opts.requireASCII, "require-ascii", false, "reject internationalized addresses")
	f.BoolVar(&opts.disallowReserved, "disallow-reserved", false, "reject RFC 2606 reserved domains")
	f.BoolVar(&opts.requireICANN, "require-icann", false, "require an ICANN top-level domain")
	f.BoolVar(&opts.requireMX, "require-mx", false, "require a usable MX record")
	f.BoolVar(&opts.implicitMX, "implicit-mx", false, "with --require-mx, accept A/AAAA records in place of MX")
	f.DurationVar(&opts.mxTimeout, "mx-timeout", 5*time.Second, "timeout for each DNS query")
	f.IntVar(&opts.mxRetries, "mx-retries", 2, "DNS query retries")
	f.StringSliceVar(&opts.nameservers, "nameserver", nil, "DNS server to query, host[:port] (repeatable)")
	f.IntVar(&opts.maxDepth, "max-depth", mailaddr.DefaultMaxNestingDepth, "maximum comment and angle bracket nesting")
	f.BoolVar(&opts.json, "json", false, "print one JSON object per address")
	f.BoolVar(&opts.normalize, "normalize", false, "print valid addresses in normalized form")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log rule rejections and DNS failures")
	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, args []string) error {
	cmd.SilenceUsage = true

	addresses := args
	if len(addresses) == 0 {
		lines, err := readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read email addresses from stdin: %w", err)
		}
		addresses = lines
	}

	v := buildValidator(opts, newLogger(cmd.ErrOrStderr(), opts.verbose))
	ctx := cmd.Context()

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	invalid := 0

	for _, address := range addresses {
		result := v.ValidateContext(ctx, address)
		email, ok := result.Email()
		if !ok {
			invalid++
		}

		if opts.json {
			o := checkOutput{Address: address, Valid: ok, Email: email}
			if ok {
				o.Normalized = email.Normalized()
			} else {
				o.Reason = result.FailureReason().String()
			}
			if err := enc.Encode(o); err != nil {
				return err
			}
			continue
		}

		switch {
		case !ok:
			fmt.Fprintf(out, "invalid\t%s\t%s\n", address, result.FailureReason())
		case opts.normalize:
			fmt.Fprintf(out, "valid\t%s\n", email.Normalized())
		default:
			fmt.Fprintf(out, "valid\t%s\n", address)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return errorIfInvalid(invalid, len(addresses))
}

func buildValidator(opts *checkOptions, logger *slog.Logger) *mailaddr.Validator {
	cfg := mailaddr.DefaultValidatorConfig()
	cfg.MaxNestingDepth = opts.maxDepth
	cfg.Logger = logger
	v := mailaddr.NewValidatorWithConfig(cfg)

	var rules []mailaddr.Rule
	if opts.strict || opts.disallowIP {
		rules = append(rules, mailaddr.DisallowIPDomain())
	}
	if opts.strict || opts.requireTLD {
		rules = append(rules, mailaddr.RequireTopLevelDomain())
	}
	if opts.strict || opts.disallowRouting {
		rules = append(rules, mailaddr.DisallowExplicitSourceRouting())
	}
	if opts.disallowQuoted {
		rules = append(rules, mailaddr.DisallowQuotedLocalPart())
	}
	if opts.disallowDisplay {
		rules = append(rules, mailaddr.DisallowQuotedIdentifiers())
	}
	if opts.disallowWhitespace {
		rules = append(rules, mailaddr.DisallowObsoleteWhitespace())
	}
	if opts.requireASCII {
		rules = append(rules, mailaddr.RequireASCII())
	}
	if opts.disallowReserved {
		rules = append(rules, mailaddr.DisallowReservedDomains())
	}
	if opts.requireICANN {
		rules = append(rules, mailaddr.RequireICANNTopLevelDomain())
	}
	if opts.requireMX {
		resolver := dns.NewResolver(dns.ResolverConfig{
			Nameservers: nameserverAddrs(opts.nameservers),
			Timeout:     opts.mxTimeout,
			Retries:     opts.mxRetries,
		})
		rules = append(rules, mailaddr.RequireValidMXRecordUsing(resolver, dns.MXOptions{
			ImplicitMX: opts.implicitMX,
		}))
	}
	return v.WithRules(rules...)
}

// nameserverAddrs adds the default DNS port to servers given without one.
func nameserverAddrs(servers []string) []string {
	addrs := make([]string, 0, len(servers))
	for _, s := range servers {
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(strings.Trim(s, "[]"), "53")
		}
		addrs = append(addrs, s)
	}
	return addrs
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func readLines(r io.Reader) ([]string, error) {
	lines := make([]string, 0, 100)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

var errInvalidAddresses = errors.New("invalid email addresses")

func errorIfInvalid(invalid, total int) error {
	if invalid == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d", errInvalidAddresses, invalid, total)
}
