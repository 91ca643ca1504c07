package directory

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
	"github.com/devtna/jlsfinder/core/user"
)

// Bundled seed collections: the defaults served in local mode before any
// edit, and the payload of the one-shot backend seeding.

// SeedSchools is parsed from the generated constant in seed_schools.go; the
// admin export regenerates that file, so a dropped-in export replaces the
// bundled dataset.
var SeedSchools = mustParseSeedSchools(seedSchoolsJSON)

func mustParseSeedSchools(src string) []school.School {
	var schools []school.School
	if err := json.Unmarshal([]byte(src), &schools); err != nil {
		panic(errors.Wrap(err, "parsing bundled school seeds"))
	}
	return schools
}

var SeedUsers = []user.User{
	{
		ID:        "1",
		Email:     "adminsakura@gmail.com",
		Password:  "Sakura123",
		Role:      user.RoleAdmin,
		Username:  "Admin Sakura",
		AvatarURL: "https://ui-avatars.com/api/?name=Admin+Sakura&background=BC002D&color=fff",
		CreatedAt: time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC),
	},
	{
		ID:        "2",
		Email:     "kenji.tanaka@example.com",
		Password:  "password123",
		Role:      user.RoleUser,
		Username:  "Kenji T.",
		CreatedAt: time.Date(2023, 10, 25, 11, 30, 0, 0, time.UTC),
	},
	{
		ID:        "3",
		Email:     "yuki.sato@example.com",
		Password:  "password123",
		Role:      user.RoleUser,
		Username:  "Yuki Sato",
		CreatedAt: time.Date(2023, 10, 24, 15, 20, 0, 0, time.UTC),
	},
}

var SeedReviews = []review.Review{
	{
		ID:        "1",
		SchoolID:  "1",
		UserID:    "2",
		UserName:  "kenji.tanaka@example.com",
		Rating:    5,
		Comment:   "Excellent teachers and a very friendly atmosphere. I learned so much in just 3 months!",
		CreatedAt: time.Date(2023, 11, 15, 10, 0, 0, 0, time.UTC),
	},
	{
		ID:        "2",
		SchoolID:  "1",
		UserID:    "3",
		UserName:  "yuki.sato@example.com",
		Rating:    4,
		Comment:   "Great location in Shinjuku. The classes are intense but effective.",
		CreatedAt: time.Date(2023, 12, 1, 14, 30, 0, 0, time.UTC),
	},
	{
		ID:        "3",
		SchoolID:  "2",
		UserID:    "2",
		UserName:  "kenji.tanaka@example.com",
		Rating:    5,
		Comment:   "Best school for business Japanese. Highly recommended.",
		CreatedAt: time.Date(2023, 10, 20, 9, 15, 0, 0, time.UTC),
	},
}

// BootstrapAdmin is the bundled fallback administrator checked at login when
// no account with its email exists in the live collection.
func BootstrapAdmin() (user.User, bool) {
	for _, u := range SeedUsers {
		if u.Role == user.RoleAdmin {
			return u, true
		}
	}
	return user.User{}, false
}
