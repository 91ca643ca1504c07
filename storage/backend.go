package storage

import (
	"context"

	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
	"github.com/devtna/jlsfinder/core/user"
)

// Table names the three entity collections as addressed by both backends.
type Table string

const (
	TableSchools Table = "schools"
	TableUsers   Table = "users"
	TableReviews Table = "reviews"
)

// Op is the kind of row change carried by a realtime Event.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Event is a row-level change notification delivered out-of-band from
// direct CRUD calls. Row holds the new record (*school.School, *user.User
// or *review.Review) for inserts and updates; deletes carry only RowID.
// Events arrive in whatever order the backend delivers them; no sequence
// numbers are tracked.
type Event struct {
	Table Table
	Op    Op
	RowID string
	Row   interface{}
}

// Backend is the persistence contract behind the directory store. Exactly
// one implementation is selected at startup: the remote Postgres adapter
// when the backend URL and access key are configured, the local key/value
// adapter otherwise. Each call is a single independent operation; there are
// no transactions spanning calls.
type Backend interface {
	FetchSchools(ctx context.Context) ([]school.School, error)
	InsertSchool(ctx context.Context, s school.School) error
	UpdateSchool(ctx context.Context, s school.School) error
	DeleteSchool(ctx context.Context, id string) error

	FetchUsers(ctx context.Context) ([]user.User, error)
	InsertUser(ctx context.Context, u user.User) error
	UpdateUser(ctx context.Context, u user.User) error
	DeleteUser(ctx context.Context, id string) error

	FetchReviews(ctx context.Context) ([]review.Review, error)
	InsertReview(ctx context.Context, r review.Review) error
	DeleteReview(ctx context.Context, id string) error

	// Seed bulk-upserts the bundled collections. On the local adapter this
	// simply rewrites the stored collections.
	Seed(ctx context.Context, schools []school.School, users []user.User, reviews []review.Review) error

	// Subscribe opens the realtime change feed covering all three tables.
	// Backends without one return a nil channel and no error.
	Subscribe(ctx context.Context) (<-chan Event, error)

	Close() error
}
