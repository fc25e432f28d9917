// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns queried by the Postgres stores,
// so SQL strings never repeat raw identifiers.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	DisplayName  string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	PasswordSalt string
	AccessLevel  string
	IsActive     string
	CreatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	DisplayName:  "displayname",
	FirstName:    "firstname",
	LastName:     "lastname",
	Email:        "email",
	Phone:        "phone",
	PasswordHash: "passwordhash",
	PasswordSalt: "passwordsalt",
	AccessLevel:  "accesslevel",
	IsActive:     "isactive",
	CreatedAt:    "createdat",
}

// Columns returns every column in scan order. Stores rely on this order.
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.DisplayName, t.FirstName, t.LastName, t.Email,
		t.Phone, t.PasswordHash, t.PasswordSalt, t.AccessLevel, t.IsActive,
		t.CreatedAt,
	}
}
