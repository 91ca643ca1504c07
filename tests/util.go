package testutil

import (
	"context"
	"testing"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/core/user"
	"github.com/devtna/jlsfinder/storage/kvstore"
	"github.com/devtna/jlsfinder/storage/local"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// NopLogger discards everything; tests assert on behavior, not log output.
func NopLogger() core.Logger { return nopLogger{} }

// TempStore builds a Store over the file-backed local adapter in a
// throwaway directory, bootstrapped with the bundled seed collections.
func TempStore(t *testing.T) (*directory.Store, *kvstore.Store) {
	t.Helper()

	kv, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("TempStore() failed: %v", err)
	}
	backend := local.NewBackend(kv, directory.SeedSchools, directory.SeedUsers, directory.SeedReviews)
	store := directory.NewStore(backend, false, NopLogger())
	store.Bootstrap(context.Background())
	return store, kv
}

func CreateUser(t *testing.T, store *directory.Store, email, uname, pwd, role string) user.User {
	t.Helper()

	usr, err := store.AddUser(context.Background(), user.User{
		Email:     email,
		Password:  pwd,
		Role:      role,
		Username:  uname,
		AvatarURL: user.AvatarURL(uname),
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
