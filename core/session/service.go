// Package session authenticates against the user collection and keeps the
// current session record in the persistent key/value store, the way the
// original kept it in browser local storage.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/core/user"
	"github.com/devtna/jlsfinder/storage/kvstore"
)

// Persistence keys.
const (
	AuthUserKey = "authUser"
	SavedKey    = "savedSchoolIds"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("an account with this email already exists")
)

type Service struct {
	store *directory.Store
	kv    *kvstore.Store
	log   core.Logger

	mu      sync.Mutex
	current *user.User
}

func NewService(store *directory.Store, kv *kvstore.Store, logger core.Logger) (*Service, error) {
	svc := &Service{store: store, kv: kv, log: logger}

	var persisted user.User
	ok, err := kv.Get(AuthUserKey, &persisted)
	if err != nil {
		return nil, errors.Wrap(err, "loading persisted session")
	}
	if ok {
		svc.current = &persisted
	}
	return svc, nil
}

// Login looks the email up case-insensitively and compares the password
// exactly. When no user with that email exists at all, the bundled
// bootstrap administrator pair is checked as a fallback; an email that does
// exist never falls through, so a legitimately changed password cannot be
// bypassed. Failure yields only the generic invalid-credentials signal.
func (svc *Service) Login(email, password string) (user.User, error) {
	found, ok := svc.store.GetUserByEmail(email)
	if ok {
		if found.Password == password {
			return found, svc.establish(found)
		}
		return user.User{}, ErrInvalidCredentials
	}

	if admin, exists := directory.BootstrapAdmin(); exists {
		if strings.EqualFold(admin.Email, email) && admin.Password == password {
			return admin, svc.establish(admin)
		}
	}
	return user.User{}, ErrInvalidCredentials
}

// SignUp creates a user-role account and establishes it as the session.
func (svc *Service) SignUp(ctx context.Context, nu user.NewUser) (user.User, error) {
	if _, exists := svc.store.GetUserByEmail(nu.Email); exists {
		return user.User{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}

	created, err := svc.store.AddUser(ctx, user.User{
		Email:     nu.Email,
		Password:  nu.Password,
		Role:      user.RoleUser,
		Username:  nu.Username,
		AvatarURL: user.AvatarURL(nu.Username),
	})
	if err != nil {
		// the record is already in memory; the failed mirror is diagnostic only
		svc.log.Error("mirroring sign-up", err)
	}
	return created, svc.establish(created)
}

// UpdateProfile mirrors the partial update through the directory store for
// the current user, then merges the same fields into the cached session.
func (svc *Service) UpdateProfile(ctx context.Context, pu user.ProfileUpdate) (user.User, error) {
	current, ok := svc.Current()
	if !ok {
		return user.User{}, ErrInvalidCredentials
	}

	updated := pu.Merge(current)
	if _, err := svc.store.UpdateUser(ctx, updated); err != nil {
		svc.log.Error("mirroring profile update", err)
	}
	return updated, svc.establish(updated)
}

func (svc *Service) Logout() error {
	svc.mu.Lock()
	svc.current = nil
	svc.mu.Unlock()
	return svc.kv.Delete(AuthUserKey)
}

func (svc *Service) Current() (user.User, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.current == nil {
		return user.User{}, false
	}
	return *svc.current, true
}

func (svc *Service) IsAuthenticated() bool {
	_, ok := svc.Current()
	return ok
}

func (svc *Service) IsAdmin() bool {
	u, ok := svc.Current()
	return ok && u.IsAdmin()
}

func (svc *Service) establish(u user.User) error {
	svc.mu.Lock()
	svc.current = &u
	svc.mu.Unlock()
	return errors.Wrap(svc.kv.Set(AuthUserKey, u), "persisting session")
}

// Saved schools

func (svc *Service) SavedSchoolIDs() ([]string, error) {
	var ids []string
	if _, err := svc.kv.Get(SavedKey, &ids); err != nil {
		return nil, errors.Wrap(err, "loading saved schools")
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ToggleSaved adds the school id to the saved list, or removes it when
// already present, and returns the new list.
func (svc *Service) ToggleSaved(schoolID string) ([]string, error) {
	ids, err := svc.SavedSchoolIDs()
	if err != nil {
		return nil, err
	}

	kept := ids[:0]
	var removed bool
	for _, id := range ids {
		if id == schoolID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, schoolID)
	}
	if err = svc.kv.Set(SavedKey, kept); err != nil {
		return nil, errors.Wrap(err, "persisting saved schools")
	}
	return kept, nil
}
