package session

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/core/user"
	testutil "github.com/devtna/jlsfinder/tests"
)

func setup(t *testing.T) *Service {
	t.Helper()
	store, kv := testutil.TempStore(t)
	svc, err := NewService(store, kv, testutil.NopLogger())
	require.NoError(t, err)
	return svc
}

func Test_Service_Login(t *testing.T) {
	svc := setup(t)
	admin, _ := directory.BootstrapAdmin()

	tests := []struct {
		name    string
		email   string
		pwd     string
		wantErr bool
	}{
		{name: "known email, exact password", email: "kenji.tanaka@example.com", pwd: "password123"},
		{name: "email lookup is case-insensitive", email: "KENJI.TANAKA@example.com", pwd: "password123"},
		{name: "known email, wrong password", email: "kenji.tanaka@example.com", pwd: "nope", wantErr: true},
		{name: "password comparison is exact", email: "kenji.tanaka@example.com", pwd: "PASSWORD123", wantErr: true},
		{name: "unknown email", email: "ghost@example.com", pwd: "password123", wantErr: true},
		{name: "bootstrap admin pair", email: admin.Email, pwd: admin.Password},
		{name: "bootstrap admin pair, wrong password", email: admin.Email, pwd: "nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Login(tt.email, tt.pwd)
			if tt.wantErr {
				assert.Equal(t, ErrInvalidCredentials, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, usr.ID)
			assert.True(t, svc.IsAuthenticated())
		})
	}
}

// A user whose email exists in the collection never falls through to the
// bootstrap pair, even when the record shares the bootstrap email.
func Test_Service_Login_noFallbackWhenEmailExists(t *testing.T) {
	svc := setup(t)
	admin, _ := directory.BootstrapAdmin()

	// the seed collection contains the admin record with its own password;
	// change it and verify the old bundled password stops working
	stored, ok := svc.store.GetUserByEmail(admin.Email)
	require.True(t, ok)
	stored.Password = "changed"
	_, err := svc.store.UpdateUser(context.Background(), stored)
	require.NoError(t, err)

	_, err = svc.Login(admin.Email, admin.Password)
	assert.Equal(t, ErrInvalidCredentials, errors.Cause(err))

	_, err = svc.Login(admin.Email, "changed")
	assert.NoError(t, err)
}

func Test_Service_SignUp(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	before := len(svc.store.Users())
	usr, err := svc.SignUp(ctx, user.NewUser{
		Email:           "new@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		Username:        "newbie",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, usr.Role)
	assert.Contains(t, usr.AvatarURL, "ui-avatars.com")
	assert.Len(t, svc.store.Users(), before+1, "exactly one record is created")
	assert.True(t, svc.IsAuthenticated())
	assert.False(t, svc.IsAdmin())

	// duplicate email is rejected, case-insensitively, with no extra record
	_, err = svc.SignUp(ctx, user.NewUser{Email: "NEW@example.com", Password: "other1", PasswordConfirm: "other1", Username: "other"})
	require.Error(t, err)
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Len(t, svc.store.Users(), before+1)
}

func Test_Service_UpdateProfile(t *testing.T) {
	svc := setup(t)
	_, err := svc.Login("kenji.tanaka@example.com", "password123")
	require.NoError(t, err)

	uname := "kenji_t"
	updated, err := svc.UpdateProfile(context.Background(), user.ProfileUpdate{Username: &uname})
	require.NoError(t, err)
	assert.Equal(t, "kenji_t", updated.Username)

	// the directory record was mirrored too
	stored, ok := svc.store.GetUserByEmail("kenji.tanaka@example.com")
	require.True(t, ok)
	assert.Equal(t, "kenji_t", stored.Username)
}

func Test_Service_Logout(t *testing.T) {
	svc := setup(t)
	_, err := svc.Login("kenji.tanaka@example.com", "password123")
	require.NoError(t, err)
	require.True(t, svc.IsAuthenticated())

	require.NoError(t, svc.Logout())
	assert.False(t, svc.IsAuthenticated())
	assert.False(t, svc.IsAdmin())
}

func Test_Service_sessionPersists(t *testing.T) {
	store, kv := testutil.TempStore(t)
	svc, err := NewService(store, kv, testutil.NopLogger())
	require.NoError(t, err)

	_, err = svc.Login("kenji.tanaka@example.com", "password123")
	require.NoError(t, err)

	// a new service over the same kvstore restores the session
	svc2, err := NewService(store, kv, testutil.NopLogger())
	require.NoError(t, err)
	cur, ok := svc2.Current()
	require.True(t, ok)
	assert.Equal(t, "kenji.tanaka@example.com", cur.Email)
}

func Test_Service_ToggleSaved(t *testing.T) {
	svc := setup(t)

	ids, err := svc.SavedSchoolIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = svc.ToggleSaved("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids)

	ids, err = svc.ToggleSaved("2")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids)

	// toggling an already-saved id removes it
	ids, err = svc.ToggleSaved("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids)
}
