// Package models holds the persistent entities shared by storage, the domain
// services, and the REST layer.
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Scrap is a personal note owned by a single user. UserUID is immutable after
// creation; only Title and Description are mutable through the write path.
type Scrap struct {
	bun.BaseModel `bun:"table:scraps,alias:s" json:"-"`

	UID         string    `bun:"uid,pk" json:"uid"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description,notnull" json:"description"`
	UserUID     string    `bun:"user_uid,notnull" json:"userUid"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// User is a registered account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u" json:"-"`

	UID       string    `bun:"uid,pk" json:"uid"`
	Username  string    `bun:"username,notnull,unique" json:"username"`
	Password  string    `bun:"password,notnull" json:"-"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}
