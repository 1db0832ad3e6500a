package main

import (
	"github.com/spf13/cobra"
)

const rootDesc = "Parse and validate email addresses (RFC 5321/5322)"

const rootDescLong = rootDesc + `

To check addresses given as arguments:
  mailaddr check user@example.org "John <john@example.org>"

To check one address per line from standard input, rejecting IP literals,
dotless domains and source routes, and requiring a mail server:
  mailaddr check --strict --require-mx < addresses.txt
`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mailaddr",
		Version: "v0.1.0",
		Short:   rootDesc,
		Long:    rootDescLong,
	}
	cmd.AddCommand(newCheckCmd())
	return cmd
}
