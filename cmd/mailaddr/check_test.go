package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func setupCommandForTesting(args []string, stdin string) (*cobra.Command, *strings.Builder, *strings.Builder) {
	cmd := newRootCmd()
	stdout := &strings.Builder{}
	stderr := &strings.Builder{}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	return cmd, stdout, stderr
}

func TestCheckArguments(t *testing.T) {
	cmd, stdout, _ := setupCommandForTesting(
		[]string{"check", "user@example.org", "John <john@example.org>"}, "",
	)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := "valid\tuser@example.org\nvalid\tJohn <john@example.org>\n"
	if got := stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCheckReportsInvalid(t *testing.T) {
	cmd, stdout, stderr := setupCommandForTesting(
		[]string{"check", "user@example.org", "no-at-sign", "user@[192.0.2.1]", "--strict"}, "",
	)

	err := cmd.Execute()
	if !errors.Is(err, errInvalidAddresses) {
		t.Fatalf("Execute() error = %v, want errInvalidAddresses", err)
	}
	if !strings.Contains(err.Error(), "2 of 3") {
		t.Errorf("error = %q, want count of invalid addresses", err)
	}

	want := "valid\tuser@example.org\n" +
		"invalid\tno-at-sign\tMISSING_AT_SYMBOL\n" +
		"invalid\tuser@[192.0.2.1]\tFAILED_CUSTOM_VALIDATION\n"
	if got := stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if strings.Contains(stderr.String(), "Usage:") {
		t.Error("usage printed for invalid addresses")
	}
}

func TestCheckReadsStdin(t *testing.T) {
	cmd, stdout, _ := setupCommandForTesting(
		[]string{"check", "--normalize"},
		"\"Fred\"(c)@example.org\r\n\n   \nuser@EXAMPLE.org\n",
	)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := "valid\t\"Fred\"@example.org\nvalid\tuser@EXAMPLE.org\n"
	if got := stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCheckJSON(t *testing.T) {
	cmd, stdout, _ := setupCommandForTesting(
		[]string{"check", "--json", "user(c)@example.org", "a..b@example.org"}, "",
	)

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() succeeded with an invalid address")
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), stdout.String())
	}

	var valid, invalid map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &valid); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &invalid); err != nil {
		t.Fatal(err)
	}

	if valid["valid"] != true || valid["normalized"] != "user@example.org" {
		t.Errorf("valid result = %v", valid)
	}
	if email, ok := valid["email"].(map[string]any); !ok || email["domain"] != "example.org" {
		t.Errorf("email = %v", valid["email"])
	}
	if invalid["valid"] != false || invalid["reason"] != "MULTIPLE_DOT_SEPARATORS" {
		t.Errorf("invalid result = %v", invalid)
	}
	if _, ok := invalid["email"]; ok {
		t.Errorf("invalid result carries an email: %v", invalid)
	}
}

func TestCheckRuleFlags(t *testing.T) {
	tests := []struct {
		flag    string
		address string
	}{
		{"--disallow-ip", "user@[192.0.2.1]"},
		{"--require-tld", "user@localhost"},
		{"--disallow-source-routing", "@a.com:user@example.org"},
		{"--disallow-quoted", "\"user\"@example.org"},
		{"--disallow-display-name", "Name <user@example.org>"},
		{"--disallow-whitespace", "first.last@test .org"},
		{"--require-ascii", "用户@例子.广告"},
		{"--disallow-reserved", "user@example.com"},
		{"--require-icann", "user@example.internal"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			cmd, _, _ := setupCommandForTesting([]string{"check", tt.address}, "")
			if err := cmd.Execute(); err != nil {
				t.Fatalf("without %s: %v", tt.flag, err)
			}

			cmd, stdout, _ := setupCommandForTesting([]string{"check", tt.flag, tt.address}, "")
			if err := cmd.Execute(); !errors.Is(err, errInvalidAddresses) {
				t.Fatalf("with %s: error = %v", tt.flag, err)
			}
			if !strings.HasSuffix(stdout.String(), "\tFAILED_CUSTOM_VALIDATION\n") {
				t.Errorf("output = %q", stdout.String())
			}
		})
	}
}

func TestCheckVerboseLogsRejections(t *testing.T) {
	cmd, _, stderr := setupCommandForTesting(
		[]string{"check", "-v", "--disallow-ip", "user@[192.0.2.1]"}, "",
	)

	_ = cmd.Execute()

	log := stderr.String()
	if !strings.Contains(log, "rule=disallow-ip-domain") {
		t.Errorf("log = %q, want rejected rule", log)
	}
}

func TestCheckMaxDepth(t *testing.T) {
	address := "user((nested))@example.org"

	cmd, _, _ := setupCommandForTesting([]string{"check", address}, "")
	if err := cmd.Execute(); err != nil {
		t.Fatalf("default depth: %v", err)
	}

	cmd, stdout, _ := setupCommandForTesting([]string{"check", "--max-depth", "1", address}, "")
	if err := cmd.Execute(); err == nil {
		t.Fatal("nesting beyond --max-depth accepted")
	}
	if !strings.HasSuffix(stdout.String(), "\tTOO_DEEPLY_NESTED\n") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestNameserverAddrs(t *testing.T) {
	got := nameserverAddrs([]string{"192.0.2.53", "192.0.2.1:5353", "2001:db8::1", "[2001:db8::2]:53"})
	want := []string{"192.0.2.53:53", "192.0.2.1:5353", "[2001:db8::1]:53", "[2001:db8::2]:53"}

	if len(got) != len(want) {
		t.Fatalf("nameserverAddrs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("nameserverAddrs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
