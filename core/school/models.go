package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/devtna/jlsfinder/core"
)

// CourseType is one of the fixed JLPT preparation levels a school may teach.
type CourseType string

const (
	CourseJLPTN5 CourseType = "JLPT N5"
	CourseJLPTN4 CourseType = "JLPT N4"
	CourseJLPTN3 CourseType = "JLPT N3"
	CourseJLPTN2 CourseType = "JLPT N2"
	CourseJLPTN1 CourseType = "JLPT N1"
)

var AllCourseTypes = []CourseType{CourseJLPTN5, CourseJLPTN4, CourseJLPTN3, CourseJLPTN2, CourseJLPTN1}

func init() {
	RegisterValidators(core.Validate)
}

// Schedule is a time-of-day slot tag.
type Schedule string

const (
	ScheduleMorning   Schedule = "Morning"
	ScheduleAfternoon Schedule = "Afternoon"
	ScheduleEvening   Schedule = "Evening"
	ScheduleFullDay   Schedule = "Full-day"
)

var AllSchedules = []Schedule{ScheduleMorning, ScheduleAfternoon, ScheduleEvening, ScheduleFullDay}

type School struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	City           string       `json:"city"`
	Phone          []string     `json:"phone"`
	GoogleMapsURL  string       `json:"googleMapsUrl"`
	Lat            *float64     `json:"lat,omitempty"`
	Lng            *float64     `json:"lng,omitempty"`
	Schedule       []Schedule   `json:"schedule"`
	CourseTypes    []CourseType `json:"courseTypes"`
	TokuteiCourses []string     `json:"tokuteiCourses"`
	Images         []string     `json:"images"`
	Description    string       `json:"description,omitempty"`
}

// NewSchool contains the information needed to create or replace a School.
// Phone and Images being non-empty is enforced here, at submission time;
// the backend itself accepts any row.
type NewSchool struct {
	Name           string       `json:"name" validate:"required"`
	Address        string       `json:"address" validate:"required"`
	City           string       `json:"city" validate:"required"`
	Phone          []string     `json:"phone" validate:"required,min=1,dive,required"`
	GoogleMapsURL  string       `json:"googleMapsUrl"`
	Lat            *float64     `json:"lat"`
	Lng            *float64     `json:"lng"`
	Schedule       []Schedule   `json:"schedule" validate:"omitempty,dive,schedule"`
	CourseTypes    []CourseType `json:"courseTypes" validate:"omitempty,dive,coursetype"`
	TokuteiCourses []string     `json:"tokuteiCourses"`
	Images         []string     `json:"images" validate:"required,min=1,dive,required"`
	Description    string       `json:"description"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Address = core.CleanString(ns.Address)
	ns.City = core.CleanString(ns.City)
	return validate.Struct(ns)
}

// School builds the entity record; the caller assigns the id.
func (ns NewSchool) School() School {
	return School{
		Name:           ns.Name,
		Address:        ns.Address,
		City:           ns.City,
		Phone:          ns.Phone,
		GoogleMapsURL:  ns.GoogleMapsURL,
		Lat:            ns.Lat,
		Lng:            ns.Lng,
		Schedule:       ns.Schedule,
		CourseTypes:    ns.CourseTypes,
		TokuteiCourses: ns.TokuteiCourses,
		Images:         ns.Images,
		Description:    ns.Description,
	}
}

func (c CourseType) Valid() bool {
	for _, ct := range AllCourseTypes {
		if c == ct {
			return true
		}
	}
	return false
}

func (s Schedule) Valid() bool {
	for _, sc := range AllSchedules {
		if s == sc {
			return true
		}
	}
	return false
}

// RegisterValidators adds the coursetype/schedule tags used by NewSchool.
func RegisterValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("coursetype", func(fl validator.FieldLevel) bool {
		return CourseType(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("schedule", func(fl validator.FieldLevel) bool {
		return Schedule(fl.Field().String()).Valid()
	})
}
