// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

// errMismatch is returned by verify so the process exits non-zero.
var errMismatch = errors.New("password does not match")

func newHashCmd(opts *options) *cobra.Command {
	var scheme, password string

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Hash a password into a hex digest and salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher, err := sec.NewPasswordHasher(sec.PasswordScheme(scheme))
			if err != nil {
				return err
			}

			plain, err := resolvePassword(password, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			digest, salt, err := hasher.Hash(plain)
			if err != nil {
				return err
			}

			return printFields(cmd.OutOrStdout(), opts.output,
				field{"scheme", string(hasher.Scheme())},
				field{"digest", hex.EncodeToString(digest)},
				field{"salt", hex.EncodeToString(salt)},
			)
		},
	}

	cmd.Flags().StringVar(&scheme, "scheme", string(sec.SchemeHMACSHA512), "Hash scheme: hmac-sha512, argon2id")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted without echo when omitted)")

	return cmd
}

func newVerifyCmd(opts *options) *cobra.Command {
	var scheme, password, digestHex, saltHex string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a password against a stored digest and salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher, err := sec.NewPasswordHasher(sec.PasswordScheme(scheme))
			if err != nil {
				return err
			}

			digest, err := hex.DecodeString(digestHex)
			if err != nil {
				return fmt.Errorf("decode --digest: %w", err)
			}
			salt, err := hex.DecodeString(saltHex)
			if err != nil {
				return fmt.Errorf("decode --salt: %w", err)
			}

			plain, err := resolvePassword(password, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			matched := hasher.Verify(plain, digest, salt)
			if err := printFields(cmd.OutOrStdout(), opts.output, field{"match", matched}); err != nil {
				return err
			}
			if !matched {
				return errMismatch
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scheme, "scheme", string(sec.SchemeHMACSHA512), "Hash scheme: hmac-sha512, argon2id")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted without echo when omitted)")
	cmd.Flags().StringVar(&digestHex, "digest", "", "Stored digest, hex")
	cmd.Flags().StringVar(&saltHex, "salt", "", "Stored salt, hex")
	_ = cmd.MarkFlagRequired("digest")
	_ = cmd.MarkFlagRequired("salt")

	return cmd
}
