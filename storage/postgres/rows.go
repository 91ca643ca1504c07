package postgres

import (
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"

	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
	"github.com/devtna/jlsfinder/core/user"
)

// Row structs map entity attributes 1:1 onto table columns; list attributes
// are native array columns. The json tags match the column names so the same
// structs decode the row_to_json payloads of the change feed.

type schoolRow struct {
	ID             string         `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Address        string         `db:"address" json:"address"`
	City           string         `db:"city" json:"city"`
	Phone          pq.StringArray `db:"phone" json:"phone"`
	GoogleMapsURL  string         `db:"google_maps_url" json:"google_maps_url"`
	Lat            null.Float64   `db:"lat" json:"lat"`
	Lng            null.Float64   `db:"lng" json:"lng"`
	Schedule       pq.StringArray `db:"schedule" json:"schedule"`
	CourseTypes    pq.StringArray `db:"course_types" json:"course_types"`
	TokuteiCourses pq.StringArray `db:"tokutei_courses" json:"tokutei_courses"`
	Images         pq.StringArray `db:"images" json:"images"`
	Description    null.String    `db:"description" json:"description"`
}

func newSchoolRow(s school.School) schoolRow {
	schedule := make(pq.StringArray, 0, len(s.Schedule))
	for _, sc := range s.Schedule {
		schedule = append(schedule, string(sc))
	}
	courseTypes := make(pq.StringArray, 0, len(s.CourseTypes))
	for _, ct := range s.CourseTypes {
		courseTypes = append(courseTypes, string(ct))
	}
	return schoolRow{
		ID:             s.ID,
		Name:           s.Name,
		Address:        s.Address,
		City:           s.City,
		Phone:          pq.StringArray(s.Phone),
		GoogleMapsURL:  s.GoogleMapsURL,
		Lat:            nullFloat(s.Lat),
		Lng:            nullFloat(s.Lng),
		Schedule:       schedule,
		CourseTypes:    courseTypes,
		TokuteiCourses: pq.StringArray(s.TokuteiCourses),
		Images:         pq.StringArray(s.Images),
		Description:    null.NewString(s.Description, s.Description != ""),
	}
}

func (r schoolRow) entity() school.School {
	schedule := make([]school.Schedule, 0, len(r.Schedule))
	for _, sc := range r.Schedule {
		schedule = append(schedule, school.Schedule(sc))
	}
	courseTypes := make([]school.CourseType, 0, len(r.CourseTypes))
	for _, ct := range r.CourseTypes {
		courseTypes = append(courseTypes, school.CourseType(ct))
	}
	return school.School{
		ID:             r.ID,
		Name:           r.Name,
		Address:        r.Address,
		City:           r.City,
		Phone:          []string(r.Phone),
		GoogleMapsURL:  r.GoogleMapsURL,
		Lat:            r.Lat.Ptr(),
		Lng:            r.Lng.Ptr(),
		Schedule:       schedule,
		CourseTypes:    courseTypes,
		TokuteiCourses: []string(r.TokuteiCourses),
		Images:         []string(r.Images),
		Description:    r.Description.String,
	}
}

type userRow struct {
	ID        string      `db:"id" json:"id"`
	Email     string      `db:"email" json:"email"`
	Password  string      `db:"password" json:"password"`
	Role      string      `db:"role" json:"role"`
	Username  null.String `db:"username" json:"username"`
	AvatarURL null.String `db:"avatar_url" json:"avatar_url"`
	CreatedAt null.Time   `db:"created_at" json:"created_at"`
}

func newUserRow(u user.User) userRow {
	return userRow{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		Username:  null.NewString(u.Username, u.Username != ""),
		AvatarURL: null.NewString(u.AvatarURL, u.AvatarURL != ""),
		CreatedAt: null.NewTime(u.CreatedAt.UTC(), !u.CreatedAt.IsZero()),
	}
}

func (r userRow) entity() user.User {
	return user.User{
		ID:        r.ID,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
		Username:  r.Username.String,
		AvatarURL: r.AvatarURL.String,
		CreatedAt: r.CreatedAt.Time,
	}
}

type reviewRow struct {
	ID        string    `db:"id" json:"id"`
	SchoolID  string    `db:"school_id" json:"school_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	UserName  string    `db:"user_name" json:"user_name"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt null.Time `db:"created_at" json:"created_at"`
}

func newReviewRow(r review.Review) reviewRow {
	return reviewRow{
		ID:        r.ID,
		SchoolID:  r.SchoolID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: null.NewTime(r.CreatedAt.UTC(), !r.CreatedAt.IsZero()),
	}
}

func (r reviewRow) entity() review.Review {
	return review.Review{
		ID:        r.ID,
		SchoolID:  r.SchoolID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Time,
	}
}
