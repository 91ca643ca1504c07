// Package local is the Backend implementation over the file-backed key/value
// store: three fixed keys, one per collection, each holding the entire
// collection as a JSON array. Every mutation rewrites the whole collection,
// mirroring how the original kept them in browser local storage.
package local

import (
	"context"

	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
	"github.com/devtna/jlsfinder/core/user"
	"github.com/devtna/jlsfinder/storage"
	"github.com/devtna/jlsfinder/storage/kvstore"
)

// Collection keys.
const (
	SchoolsKey = "schools"
	UsersKey   = "users"
	ReviewsKey = "reviews"
)

type Backend struct {
	kv *kvstore.Store

	// seeds returned when a collection key is absent
	seedSchools []school.School
	seedUsers   []user.User
	seedReviews []review.Review
}

var _ storage.Backend = (*Backend)(nil)

func NewBackend(kv *kvstore.Store, seedSchools []school.School, seedUsers []user.User, seedReviews []review.Review) *Backend {
	return &Backend{
		kv:          kv,
		seedSchools: seedSchools,
		seedUsers:   seedUsers,
		seedReviews: seedReviews,
	}
}

func (b *Backend) FetchSchools(_ context.Context) ([]school.School, error) {
	var schools []school.School
	ok, err := b.kv.Get(SchoolsKey, &schools)
	if err != nil {
		return nil, errors.Wrap(err, "loading schools")
	}
	if !ok {
		// copied so callers compacting or overwriting the result cannot
		// touch the bundled seeds
		return append([]school.School(nil), b.seedSchools...), nil
	}
	return schools, nil
}

func (b *Backend) InsertSchool(ctx context.Context, s school.School) error {
	schools, err := b.FetchSchools(ctx)
	if err != nil {
		return err
	}
	return b.kv.Set(SchoolsKey, append(schools, s))
}

func (b *Backend) UpdateSchool(ctx context.Context, s school.School) error {
	schools, err := b.FetchSchools(ctx)
	if err != nil {
		return err
	}
	for i := range schools {
		if schools[i].ID == s.ID {
			schools[i] = s
		}
	}
	return b.kv.Set(SchoolsKey, schools)
}

func (b *Backend) DeleteSchool(ctx context.Context, id string) error {
	schools, err := b.FetchSchools(ctx)
	if err != nil {
		return err
	}
	kept := schools[:0]
	for _, s := range schools {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return b.kv.Set(SchoolsKey, kept)
}

func (b *Backend) FetchUsers(_ context.Context) ([]user.User, error) {
	var users []user.User
	ok, err := b.kv.Get(UsersKey, &users)
	if err != nil {
		return nil, errors.Wrap(err, "loading users")
	}
	if !ok {
		return append([]user.User(nil), b.seedUsers...), nil
	}
	return users, nil
}

func (b *Backend) InsertUser(ctx context.Context, u user.User) error {
	users, err := b.FetchUsers(ctx)
	if err != nil {
		return err
	}
	return b.kv.Set(UsersKey, append(users, u))
}

func (b *Backend) UpdateUser(ctx context.Context, u user.User) error {
	users, err := b.FetchUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
		}
	}
	return b.kv.Set(UsersKey, users)
}

func (b *Backend) DeleteUser(ctx context.Context, id string) error {
	users, err := b.FetchUsers(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return b.kv.Set(UsersKey, kept)
}

func (b *Backend) FetchReviews(_ context.Context) ([]review.Review, error) {
	var reviews []review.Review
	ok, err := b.kv.Get(ReviewsKey, &reviews)
	if err != nil {
		return nil, errors.Wrap(err, "loading reviews")
	}
	if !ok {
		return append([]review.Review(nil), b.seedReviews...), nil
	}
	return reviews, nil
}

func (b *Backend) InsertReview(ctx context.Context, r review.Review) error {
	reviews, err := b.FetchReviews(ctx)
	if err != nil {
		return err
	}
	return b.kv.Set(ReviewsKey, append(reviews, r))
}

func (b *Backend) DeleteReview(ctx context.Context, id string) error {
	reviews, err := b.FetchReviews(ctx)
	if err != nil {
		return err
	}
	kept := reviews[:0]
	for _, r := range reviews {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return b.kv.Set(ReviewsKey, kept)
}

func (b *Backend) Seed(_ context.Context, schools []school.School, users []user.User, reviews []review.Review) error {
	if err := b.kv.Set(SchoolsKey, schools); err != nil {
		return err
	}
	if err := b.kv.Set(UsersKey, users); err != nil {
		return err
	}
	return b.kv.Set(ReviewsKey, reviews)
}

// Subscribe returns no channel: there is no cross-client synchronization in
// local mode.
func (b *Backend) Subscribe(_ context.Context) (<-chan storage.Event, error) {
	return nil, nil
}

func (b *Backend) Close() error { return nil }
