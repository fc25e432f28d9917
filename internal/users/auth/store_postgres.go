// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/odrzavanje/internal/platform/apperr"
	"github.com/taibuivan/odrzavanje/internal/platform/database/schema"
	"github.com/taibuivan/odrzavanje/internal/platform/dberr"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
	"github.com/taibuivan/odrzavanje/pkg/pointer"
)

// PostgresDirectory implements [Directory] over the users.account table using pgx.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates a new PostgreSQL implementation of the Directory.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

// Insert persists a new account into users.account.
//
// The unique index on username is the final arbiter: a concurrent registration
// that slipped past the service-level check still surfaces as [apperr.Conflict].
func (repository *PostgresDirectory) Insert(ctx context.Context, user *User) (*User, error) {
	columns := schema.UserAccount.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.UserAccount.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	var accessLevel *int32
	if user.AccessLevel != nil {
		level := int32(*user.AccessLevel)
		accessLevel = &level
	}

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.DisplayName,
		pointer.NilIfZero(user.FirstName),
		pointer.NilIfZero(user.LastName),
		pointer.NilIfZero(user.Email),
		pointer.NilIfZero(user.Phone),
		user.PasswordHash,
		user.PasswordSalt,
		accessLevel,
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Username is already taken")
		}
		return nil, dberr.Wrap(err, "postgres_directory_insert_failed")
	}

	return user, nil
}

// FindByUsername retrieves an account by its exact username.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresDirectory) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.UserAccount.Columns(), ", "),
		schema.UserAccount.Table,
		schema.UserAccount.Username,
	)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "postgres_directory_find_by_username_failed")
	}

	return user, nil
}

// scanUser reads one users.account row in [schema.UserAccountTable.Columns] order.
func scanUser(row pgx.Row) (*User, error) {
	var (
		user        User
		firstName   *string
		lastName    *string
		email       *string
		phone       *string
		accessLevel *int32
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&firstName,
		&lastName,
		&email,
		&phone,
		&user.PasswordHash,
		&user.PasswordSalt,
		&accessLevel,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.FirstName = pointer.Val(firstName)
	user.LastName = pointer.Val(lastName)
	user.Email = pointer.Val(email)
	user.Phone = pointer.Val(phone)
	if accessLevel != nil {
		level := sec.AccessLevel(*accessLevel)
		user.AccessLevel = &level
	}

	return &user, nil
}
