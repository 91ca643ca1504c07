package school

import "strings"

// Filter holds the independent home-listing predicates. All set fields
// compose with logical AND; result order is the input collection's order.
type Filter struct {
	Search     string     `query:"search"`
	City       string     `query:"city"`
	CourseType CourseType `query:"courseType"`
	Schedule   Schedule   `query:"schedule"`
}

func (f *Filter) IsEmpty() bool {
	return f.Search == "" && f.City == "" && f.CourseType == "" && f.Schedule == ""
}

func (f *Filter) Clean() {
	f.Search = strings.TrimSpace(f.Search)
}

// Apply runs the filter over the full collection.
// Search does a case-insensitive substring match on the school name or any
// of its tokutei course names; City is an exact match; CourseType and
// Schedule are membership tests.
func (f Filter) Apply(schools []School) []School {
	result := schools

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		matched := make([]School, 0, len(result))
		for _, s := range result {
			if strings.Contains(strings.ToLower(s.Name), term) || matchesTokutei(s, term) {
				matched = append(matched, s)
			}
		}
		result = matched
	}
	if f.City != "" {
		matched := make([]School, 0, len(result))
		for _, s := range result {
			if s.City == f.City {
				matched = append(matched, s)
			}
		}
		result = matched
	}
	if f.CourseType != "" {
		matched := make([]School, 0, len(result))
		for _, s := range result {
			if hasCourseType(s, f.CourseType) {
				matched = append(matched, s)
			}
		}
		result = matched
	}
	if f.Schedule != "" {
		matched := make([]School, 0, len(result))
		for _, s := range result {
			if hasSchedule(s, f.Schedule) {
				matched = append(matched, s)
			}
		}
		result = matched
	}

	return result
}

func matchesTokutei(s School, term string) bool {
	for _, c := range s.TokuteiCourses {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	return false
}

func hasCourseType(s School, ct CourseType) bool {
	for _, c := range s.CourseTypes {
		if c == ct {
			return true
		}
	}
	return false
}

func hasSchedule(s School, sc Schedule) bool {
	for _, c := range s.Schedule {
		if c == sc {
			return true
		}
	}
	return false
}
