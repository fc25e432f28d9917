// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/odrzavanje/internal/platform/apperr"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
	"github.com/taibuivan/odrzavanje/internal/platform/validate"
	"github.com/taibuivan/odrzavanje/pkg/uuidv7"
)

// # Contracts & Types

// CredentialHasher turns passwords into stored digests and checks them back.
type CredentialHasher interface {
	Hash(password string) (digest, salt []byte, err error)
	Verify(password string, digest, salt []byte) bool
}

// TokenProvider mints signed access tokens.
type TokenProvider interface {
	// Issue creates a signed token for the given account.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - level: The stored access level, nil when never assigned.
	Issue(userID, username string, level *sec.AccessLevel) (*sec.IssuedToken, error)
}

// ErrInvalidCredentials is the single failure returned for every rejected login.
// Unknown usernames and wrong passwords must stay indistinguishable.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid username or password")

// ErrAccessLevelNotGranted rejects a registration that sets an access level
// without administrator rights.
var ErrAccessLevelNotGranted = apperr.Forbidden("Only an administrator may assign an access level")

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	directory     Directory
	hasher        CredentialHasher
	tokenProvider TokenProvider
	logger        *slog.Logger

	// decoy is verified when the username is unknown so both failure paths cost the same.
	decoyDigest []byte
	decoySalt   []byte
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(directory Directory, hasher CredentialHasher, tokenProvider TokenProvider, logger *slog.Logger) (*Service, error) {
	decoyDigest, decoySalt, err := hasher.Hash(uuidv7.New())
	if err != nil {
		return nil, fmt.Errorf("auth_service_decoy_failed: %w", err)
	}

	return &Service{
		directory:     directory,
		hasher:        hasher,
		tokenProvider: tokenProvider,
		logger:        logger,
		decoyDigest:   decoyDigest,
		decoySalt:     decoySalt,
	}, nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username    string
	DisplayName string
	Password    string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	AccessLevel *sec.AccessLevel

	// GrantedBy is the role of the caller creating the account. Empty for
	// self-registration. Only an administrator may set AccessLevel.
	GrantedBy sec.UserRole
}

// validate applies the registration rules.
func (input RegisterInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Trimmed(FieldUsername, input.Username).
		Custom(FieldPassword, input.Password == "", "This field is required").
		Required(FieldDisplayName, input.DisplayName).
		MaxLen(FieldDisplayName, input.DisplayName, DisplayNameMaxLength).
		MaxLen(FieldFirstName, input.FirstName, PersonNameMaxLength).
		MaxLen(FieldLastName, input.LastName, PersonNameMaxLength).
		MaxLen(FieldPhone, input.Phone, PhoneMaxLength)

	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.AccessLevel != nil {
		validator.Range(FieldAccessLevel, int(*input.AccessLevel), MinAccessLevel, MaxAccessLevel)
	}

	return validator.Err()
}

/*
Register validates, hashes, and persists a brand new account.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Forbidden (level set by a non-administrator), Validation,
    Conflict (if the username exists) or storage errors

Nothing is persisted unless every step before the single Insert succeeds.
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if input.AccessLevel != nil && !input.GrantedBy.AtLeast(sec.RoleAdministrator) {
		service.logger.WarnContext(ctx, "access_level_grant_denied",
			slog.String("username", input.Username),
			slog.String("granted_by", string(input.GrantedBy)),
		)
		return nil, ErrAccessLevelNotGranted
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err := service.directory.FindByUsername(ctx, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	digest, salt, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	accessLevel := input.AccessLevel
	if accessLevel == nil {
		level := sec.AccessLevelDefault
		accessLevel = &level
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		DisplayName:  norm.NFC.String(strings.TrimSpace(input.DisplayName)),
		FirstName:    norm.NFC.String(strings.TrimSpace(input.FirstName)),
		LastName:     norm.NFC.String(strings.TrimSpace(input.LastName)),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: digest,
		PasswordSalt: salt,
		AccessLevel:  accessLevel,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := service.directory.Insert(ctx, user)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_registered",
		slog.String("user_id", created.ID),
		slog.String("username", created.Username),
	)

	return created, nil
}

// # Login Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

/*
Login verifies credentials and issues a signed access token.

Flow:
 1. Lookup user by exact username.
 2. Verify the password against the stored digest and salt.
 3. Issue a token carrying id, username and role.

Every rejected attempt returns [ErrInvalidCredentials]. Directory
infrastructure failures are returned as-is.
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.directory.FindByUsername(ctx, input.Username)
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
		}
		service.hasher.Verify(input.Password, service.decoyDigest, service.decoySalt)
		service.logger.DebugContext(ctx, "login_rejected")
		return nil, ErrInvalidCredentials
	}

	if !user.HasCredential() || !service.hasher.Verify(input.Password, user.PasswordHash, user.PasswordSalt) {
		service.logger.DebugContext(ctx, "login_rejected")
		return nil, ErrInvalidCredentials
	}

	issued, err := service.tokenProvider.Issue(user.ID, user.Username, user.AccessLevel)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_logged_in", slog.String("user_id", user.ID))

	return &LoginResult{
		Token:     issued.Value,
		ExpiresAt: issued.ExpiresAt,
		User:      user.Summary(),
	}, nil
}

// # Lookup

// GetSummary returns the public view of one account.
func (service *Service) GetSummary(ctx context.Context, username string) (*UserSummary, error) {
	user, err := service.directory.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}

func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == apperr.CodeNotFound
}
