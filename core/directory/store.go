// Package directory owns the three entity collections. The Store is the
// single source of truth for the rest of the application: every mutation is
// applied to the in-memory collections first (optimistically, visible to
// callers immediately) and then mirrored to whichever backend is active.
// A mirror failure never rolls the in-memory change back; it is returned to
// the caller, who decides whether to log and continue.
package directory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
	"github.com/devtna/jlsfinder/core/user"
	"github.com/devtna/jlsfinder/storage"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	mu      sync.RWMutex
	schools []school.School
	users   []user.User
	reviews []review.Review
	lastErr string

	backend storage.Backend
	remote  bool
	log     core.Logger

	// mockable id/time sources
	newID func() string
	now   func() time.Time
}

// NewStore builds a Store over the injected backend. remote marks whether
// the backend is the hosted one; the flag never changes afterwards.
func NewStore(backend storage.Backend, remote bool, logger core.Logger) *Store {
	return &Store{
		backend: backend,
		remote:  remote,
		log:     logger,
		newID:   func() string { return uuid.New().String() },
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Bootstrap fetches all three collections and, in remote mode, opens the
// realtime subscription. Per-collection fetch errors are recorded (latest
// wins) while data from collections that did fetch is still accepted;
// partial success is preserved, not all-or-nothing.
func (s *Store) Bootstrap(ctx context.Context) {
	s.refetch(ctx)

	events, err := s.backend.Subscribe(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.log.Error("opening change subscription", err)
		return
	}
	if events != nil {
		go s.consume(events)
	}
}

func (s *Store) refetch(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// collections are copied on adoption; deletes compact them in place, and
	// that must never reach an array the backend still holds
	if schools, err := s.backend.FetchSchools(ctx); err != nil {
		s.lastErr = err.Error()
		s.log.Error("fetching schools", err)
	} else {
		s.schools = append([]school.School(nil), schools...)
	}
	if users, err := s.backend.FetchUsers(ctx); err != nil {
		s.lastErr = err.Error()
		s.log.Error("fetching users", err)
	} else {
		s.users = append([]user.User(nil), users...)
	}
	if reviews, err := s.backend.FetchReviews(ctx); err != nil {
		s.lastErr = err.Error()
		s.log.Error("fetching reviews", err)
	} else {
		s.reviews = append([]review.Review(nil), reviews...)
	}
}

// Remote reports whether the hosted backend is active.
func (s *Store) Remote() bool { return s.remote }

// LastError returns the latest backend error message, surfaced on the admin
// dashboard as a setup banner. Empty means healthy.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Snapshots. Callers get copies; the collections are only ever mutated here.

func (s *Store) Schools() []school.School {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]school.School, len(s.schools))
	copy(out, s.schools)
	return out
}

func (s *Store) Users() []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]user.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) Reviews() []review.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]review.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

func (s *Store) GetSchool(id string) (school.School, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.schools {
		if sc.ID == id {
			return sc, true
		}
	}
	return school.School{}, false
}

func (s *Store) GetUser(id string) (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}

// GetUserByEmail does a case-insensitive email lookup.
func (s *Store) GetUserByEmail(email string) (user.User, bool) {
	email = strings.ToLower(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			return u, true
		}
	}
	return user.User{}, false
}

func (s *Store) GetReview(id string) (review.Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.ID == id {
			return r, true
		}
	}
	return review.Review{}, false
}

func (s *Store) SchoolReviews(schoolID string) []review.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]review.Review, 0)
	for _, r := range s.reviews {
		if r.SchoolID == schoolID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) AdminCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	for _, u := range s.users {
		if u.IsAdmin() {
			n++
		}
	}
	return n
}

// Schools

func (s *Store) AddSchool(ctx context.Context, sc school.School) (school.School, error) {
	sc.ID = s.newID()
	s.mu.Lock()
	s.schools = append(s.schools, sc)
	s.mu.Unlock()
	return sc, errors.Wrap(s.backend.InsertSchool(ctx, sc), "mirroring school insert")
}

func (s *Store) UpdateSchool(ctx context.Context, sc school.School) (school.School, error) {
	s.mu.Lock()
	for i := range s.schools {
		if s.schools[i].ID == sc.ID {
			s.schools[i] = sc
		}
	}
	s.mu.Unlock()
	return sc, errors.Wrap(s.backend.UpdateSchool(ctx, sc), "mirroring school update")
}

func (s *Store) DeleteSchool(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.schools[:0]
	for _, sc := range s.schools {
		if sc.ID != id {
			kept = append(kept, sc)
		}
	}
	s.schools = kept
	s.mu.Unlock()
	return errors.Wrap(s.backend.DeleteSchool(ctx, id), "mirroring school delete")
}

// Users

func (s *Store) AddUser(ctx context.Context, u user.User) (user.User, error) {
	u.ID = s.newID()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()
	return u, errors.Wrap(s.backend.InsertUser(ctx, u), "mirroring user insert")
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
		}
	}
	s.mu.Unlock()
	return u, errors.Wrap(s.backend.UpdateUser(ctx, u), "mirroring user update")
}

// UpdateUserRole is the specialized partial update used by the admin user
// table. Nothing here protects the last admin; that refusal lives in the
// HTTP layer only.
func (s *Store) UpdateUserRole(ctx context.Context, id, role string) (user.User, error) {
	u, ok := s.GetUser(id)
	if !ok {
		return user.User{}, ErrNotFound
	}
	u.Role = role
	return s.UpdateUser(ctx, u)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	s.mu.Unlock()
	return errors.Wrap(s.backend.DeleteUser(ctx, id), "mirroring user delete")
}

// Reviews

func (s *Store) AddReview(ctx context.Context, r review.Review) (review.Review, error) {
	r.ID = s.newID()
	r.CreatedAt = s.now()
	s.mu.Lock()
	s.reviews = append(s.reviews, r)
	s.mu.Unlock()
	return r, errors.Wrap(s.backend.InsertReview(ctx, r), "mirroring review insert")
}

// DeleteReview removes the review from memory synchronously; the returned
// error only reports the backend mirror.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.reviews[:0]
	for _, r := range s.reviews {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.reviews = kept
	s.mu.Unlock()
	return errors.Wrap(s.backend.DeleteReview(ctx, id), "mirroring review delete")
}

// SeedBackend bulk-upserts the bundled seed collections into the active
// backend and refetches, reporting aggregate success or failure.
func (s *Store) SeedBackend(ctx context.Context) error {
	if err := s.backend.Seed(ctx, SeedSchools, SeedUsers, SeedReviews); err != nil {
		return errors.Wrap(err, "seeding backend")
	}
	s.refetch(ctx)
	return nil
}
