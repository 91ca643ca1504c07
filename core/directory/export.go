package directory

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/devtna/jlsfinder/core/school"
)

// seedSourceHeader/Footer wrap the live collection as replaceable seed
// source: the emitted file drops into the repository in place of the
// bundled dataset.
const (
	seedSourceHeader = `// Code generated by the jlsfinder export; drop in next to seed.go. DO NOT EDIT.

package directory

const seedSchoolsJSON = ` + "`"
	seedSourceFooter = "`\n"
)

// ExportSeedSource renders the current schools collection as source-level
// seed data.
func (s *Store) ExportSeedSource() (string, error) {
	return ExportSeedSource(s.Schools())
}

func ExportSeedSource(schools []school.School) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(schools); err != nil {
		return "", errors.Wrap(err, "encoding schools")
	}
	return seedSourceHeader + strings.TrimRight(buf.String(), "\n") + seedSourceFooter, nil
}

// ParseSeedSource reads an exported seed-source file back into records.
// Re-seeding from an export reproduces the exported set exactly.
func ParseSeedSource(src string) ([]school.School, error) {
	start := strings.Index(src, "`")
	end := strings.LastIndex(src, "`")
	if start < 0 || end <= start {
		return nil, errors.New("no seed data found in source")
	}
	var schools []school.School
	if err := json.Unmarshal([]byte(src[start+1:end]), &schools); err != nil {
		return nil, errors.Wrap(err, "decoding seed data")
	}
	return schools, nil
}

// ExportWorkbook renders the schools collection as a spreadsheet for the
// admin dashboard download.
func (s *Store) ExportWorkbook() (*excelize.File, error) {
	return ExportWorkbook(s.Schools())
}

func ExportWorkbook(schools []school.School) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Schools"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "renaming sheet")
	}

	header := []string{"ID", "Name", "Address", "City", "Phone", "Schedule", "Course Types", "Tokutei Courses", "Images", "Description"}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, errors.Wrap(err, "building header cell")
		}
		if err = f.SetCellStr(sheet, cell, h); err != nil {
			return nil, errors.Wrapf(err, "setting cell %s", cell)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}
	endCol, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheet, "A1", endCol, bold)
	_ = f.AutoFilter(sheet, "A1:"+endCol, nil)

	for i, sc := range schools {
		row := []string{
			sc.ID, sc.Name, sc.Address, sc.City,
			strings.Join(sc.Phone, ", "),
			joinSchedules(sc.Schedule),
			joinCourseTypes(sc.CourseTypes),
			strings.Join(sc.TokuteiCourses, ", "),
			strings.Join(sc.Images, ", "),
			sc.Description,
		}
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, errors.Wrap(err, "building cell")
			}
			if err = f.SetCellStr(sheet, cell, val); err != nil {
				return nil, errors.Wrapf(err, "setting cell %s", cell)
			}
		}
	}
	return f, nil
}

func joinSchedules(schedules []school.Schedule) string {
	parts := make([]string, 0, len(schedules))
	for _, s := range schedules {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

func joinCourseTypes(courseTypes []school.CourseType) string {
	parts := make([]string, 0, len(courseTypes))
	for _, ct := range courseTypes {
		parts = append(parts, string(ct))
	}
	return strings.Join(parts, ", ")
}
