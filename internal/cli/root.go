// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements authctl, the operator tool for seeding and debugging
credentials outside the API.

Commands:

  - hash: Produce a digest and salt for a password, hex encoded.
  - verify: Check a password against a stored digest and salt.
  - token issue: Mint an access token with the server's signing settings.
  - token inspect: Verify a token and print its claims.

Signing settings come from the same JWT_* variables the API reads.
*/
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// options holds the global flags.
type options struct {
	output string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{output: "text"}

	rootCmd := &cobra.Command{
		Use:   "authctl",
		Short: "Operator tool for account credentials and access tokens",
		Long: `authctl hashes and verifies passwords with the same schemes the API uses,
and issues or inspects access tokens signed with the API's JWT settings.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", opts.output, "Output format: text, json")

	rootCmd.AddCommand(newHashCmd(opts))
	rootCmd.AddCommand(newVerifyCmd(opts))
	rootCmd.AddCommand(newTokenCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
