package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
	"github.com/devtna/jlsfinder/core/user"
	"github.com/devtna/jlsfinder/storage/kvstore"
)

var (
	seedSchools = []school.School{{ID: "1", Name: "Genki", City: "Tokyo"}}
	seedUsers   = []user.User{{ID: "1", Email: "a@b.cd", Role: user.RoleAdmin}}
	seedReviews = []review.Review{{ID: "1", SchoolID: "1", UserID: "1", Rating: 5}}
)

func setup(t *testing.T) *Backend {
	t.Helper()
	kv, err := kvstore.Open(t.TempDir())
	require.NoError(t, err)
	return NewBackend(kv, seedSchools, seedUsers, seedReviews)
}

func Test_Backend_seedsWhenEmpty(t *testing.T) {
	b := setup(t)
	ctx := context.Background()

	schools, err := b.FetchSchools(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedSchools, schools)

	users, err := b.FetchUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedUsers, users)

	reviews, err := b.FetchReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedReviews, reviews)
}

func Test_Backend_schoolCRUD(t *testing.T) {
	b := setup(t)
	ctx := context.Background()

	require.NoError(t, b.InsertSchool(ctx, school.School{ID: "2", Name: "KAI", City: "Tokyo"}))
	schools, err := b.FetchSchools(ctx)
	require.NoError(t, err)
	require.Len(t, schools, 2)

	require.NoError(t, b.UpdateSchool(ctx, school.School{ID: "2", Name: "KAI Language", City: "Tokyo"}))
	schools, err = b.FetchSchools(ctx)
	require.NoError(t, err)
	assert.Equal(t, "KAI Language", schools[1].Name)

	require.NoError(t, b.DeleteSchool(ctx, "1"))
	schools, err = b.FetchSchools(ctx)
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "2", schools[0].ID)
}

func Test_Backend_persistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	kv, err := kvstore.Open(dir)
	require.NoError(t, err)
	b := NewBackend(kv, seedSchools, seedUsers, seedReviews)
	ctx := context.Background()

	require.NoError(t, b.InsertUser(ctx, user.User{ID: "2", Email: "new@b.cd", Role: user.RoleUser}))

	// a fresh backend over the same directory must not re-seed
	kv2, err := kvstore.Open(dir)
	require.NoError(t, err)
	b2 := NewBackend(kv2, seedSchools, seedUsers, seedReviews)

	users, err := b2.FetchUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func Test_Backend_Seed_rewritesCollections(t *testing.T) {
	b := setup(t)
	ctx := context.Background()

	require.NoError(t, b.InsertSchool(ctx, school.School{ID: "99", Name: "Extra"}))
	require.NoError(t, b.Seed(ctx, seedSchools, seedUsers, seedReviews))

	schools, err := b.FetchSchools(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedSchools, schools, "seeding replaces the stored collection")
}

func Test_Backend_Subscribe_hasNoFeed(t *testing.T) {
	b := setup(t)
	ch, err := b.Subscribe(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ch)
}

func Test_Backend_seedsSurviveMutations(t *testing.T) {
	seeds := []user.User{
		{ID: "1", Email: "a@b.cd", Role: user.RoleAdmin},
		{ID: "2", Email: "c@d.ef", Role: user.RoleUser},
		{ID: "3", Email: "e@f.gh", Role: user.RoleUser},
	}
	kv, err := kvstore.Open(t.TempDir())
	require.NoError(t, err)
	b := NewBackend(kv, nil, seeds, nil)
	ctx := context.Background()

	// first mutations hit the seeded path; the compaction and overwrite must
	// operate on a copy, never on the bundled slice
	require.NoError(t, b.DeleteUser(ctx, "1"))
	require.NoError(t, b.UpdateUser(ctx, user.User{ID: "2", Email: "renamed@d.ef", Role: user.RoleUser}))

	assert.Equal(t, []string{"1", "2", "3"}, []string{seeds[0].ID, seeds[1].ID, seeds[2].ID})
	assert.Equal(t, "a@b.cd", seeds[0].Email)
	assert.Equal(t, "c@d.ef", seeds[1].Email)

	users, err := b.FetchUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "renamed@d.ef", users[0].Email)

	// callers own what Fetch returns even before any key exists
	kv2, err := kvstore.Open(t.TempDir())
	require.NoError(t, err)
	b2 := NewBackend(kv2, nil, seeds, nil)
	fetched, err := b2.FetchUsers(ctx)
	require.NoError(t, err)
	fetched[0].Email = "scribbled"
	assert.Equal(t, "a@b.cd", seeds[0].Email)
}
