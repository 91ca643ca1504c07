package school

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSchools = []School{
	{
		ID:             "1",
		Name:           "Genki Japanese and Culture School",
		City:           "Tokyo",
		Schedule:       []Schedule{ScheduleMorning, ScheduleAfternoon},
		CourseTypes:    []CourseType{CourseJLPTN5, CourseJLPTN4, CourseJLPTN3},
		TokuteiCourses: []string{"Caregiving", "Food Service"},
	},
	{
		ID:          "2",
		Name:        "KAI Japanese Language School",
		City:        "Tokyo",
		Schedule:    []Schedule{ScheduleFullDay},
		CourseTypes: []CourseType{CourseJLPTN2, CourseJLPTN1},
	},
	{
		ID:             "3",
		Name:           "JaLS Group - Kyoto Campus",
		City:           "Kyoto",
		Schedule:       []Schedule{ScheduleMorning},
		CourseTypes:    []CourseType{CourseJLPTN5, CourseJLPTN3},
		TokuteiCourses: []string{"Construction"},
	},
	{
		ID:          "4",
		Name:        "Osaka YMCA International School",
		City:        "Osaka",
		Schedule:    []Schedule{ScheduleEvening},
		CourseTypes: []CourseType{CourseJLPTN4},
	},
}

func ids(schools []School) []string {
	out := make([]string, 0, len(schools))
	for _, s := range schools {
		out = append(out, s.ID)
	}
	return out
}

func Test_Filter_Apply(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{name: "empty filter returns everything", filter: Filter{}, wantIDs: []string{"1", "2", "3", "4"}},
		{name: "search on name is case-insensitive", filter: Filter{Search: "japanese"}, wantIDs: []string{"1", "2"}},
		{name: "search matches tokutei courses", filter: Filter{Search: "caregiving"}, wantIDs: []string{"1"}},
		{name: "search misses", filter: Filter{Search: "nope"}, wantIDs: []string{}},
		{name: "city is an exact match", filter: Filter{City: "Tokyo"}, wantIDs: []string{"1", "2"}},
		{name: "city is case-sensitive", filter: Filter{City: "tokyo"}, wantIDs: []string{}},
		{name: "course type membership", filter: Filter{CourseType: CourseJLPTN5}, wantIDs: []string{"1", "3"}},
		{name: "schedule membership", filter: Filter{Schedule: ScheduleMorning}, wantIDs: []string{"1", "3"}},
		{
			name:    "predicates compose with AND: Tokyo + N3 + Morning",
			filter:  Filter{City: "Tokyo", CourseType: CourseJLPTN3, Schedule: ScheduleMorning},
			wantIDs: []string{"1"},
		},
		{
			name:    "AND composition can be empty",
			filter:  Filter{City: "Kyoto", CourseType: CourseJLPTN1},
			wantIDs: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(testSchools)
			assert.Equal(t, tt.wantIDs, ids(got), "result keeps the input order")
		})
	}
}

func Test_Filter_Clean(t *testing.T) {
	f := Filter{Search: "  genki  "}
	f.Clean()
	assert.Equal(t, "genki", f.Search)

	assert.False(t, f.IsEmpty())
	assert.True(t, (&Filter{}).IsEmpty())
}
