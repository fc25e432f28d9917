// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/odrzavanje/internal/platform/config"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

// newTokenService is a test seam; it reads the JWT_* environment.
var newTokenService = func() (*sec.TokenService, error) {
	settings, err := config.LoadTokenSettings()
	if err != nil {
		return nil, err
	}
	return sec.NewTokenService(settings.TokenConfig())
}

func newTokenCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue or inspect access tokens",
	}

	cmd.AddCommand(newTokenIssueCmd(opts))
	cmd.AddCommand(newTokenInspectCmd(opts))

	return cmd
}

func newTokenIssueCmd(opts *options) *cobra.Command {
	var (
		userID   string
		username string
		level    int
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newTokenService()
			if err != nil {
				return err
			}

			// Without --level the account is treated as never assigned one.
			var accessLevel *sec.AccessLevel
			if cmd.Flags().Changed("level") {
				value := sec.AccessLevel(level)
				accessLevel = &value
			}

			issued, err := service.Issue(userID, username, accessLevel)
			if err != nil {
				return err
			}

			return printFields(cmd.OutOrStdout(), opts.output,
				field{"token", issued.Value},
				field{"role", string(sec.RoleFor(accessLevel))},
				field{"expires_at", issued.ExpiresAt.UTC().Format(time.RFC3339)},
			)
		},
	}

	cmd.Flags().StringVar(&userID, "id", "", "Account id (sub / nameid)")
	cmd.Flags().StringVar(&username, "username", "", "Account username (unique_name)")
	cmd.Flags().IntVar(&level, "level", 0, "Access level; 1 is Administrator")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newTokenInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newTokenService()
			if err != nil {
				return err
			}

			claims, err := service.VerifyToken(args[0])
			if err != nil {
				return err
			}

			fields := []field{
				{"id", claims.UserID},
				{"username", claims.Username},
				{"role", claims.Role},
				{"issuer", claims.Issuer},
			}
			if claims.ExpiresAt != nil {
				fields = append(fields, field{"expires_at", claims.ExpiresAt.UTC().Format(time.RFC3339)})
			}

			return printFields(cmd.OutOrStdout(), opts.output, fields...)
		},
	}
}
