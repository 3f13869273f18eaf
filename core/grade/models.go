package grade

import (
	"time"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/user"
)

// Score bounds
const (
	MinScore  = 0
	MaxScore  = 10
	PassScore = 4
)

type Grade struct {
	ID        string    `json:"_id" db:"id"`
	Student   string    `json:"student" db:"student_id" validate:"required"` // User ID
	Course    string    `json:"course" db:"course_id" validate:"required"`   // Course ID
	Score     float64   `json:"score" db:"score" validate:"gte=0,lte=10"`
	Semester  string    `json:"semester" db:"semester" validate:"required"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // UTC
}

// Validate checks the stored representation of a Grade.
func (g Grade) Validate(v *core.Validator) error {
	return v.Struct(g)
}

// Detail is a Grade with both its student and its course populated.
type Detail struct {
	ID        string          `json:"_id"`
	Student   *user.Summary   `json:"student"`
	Course    *course.Summary `json:"course"`
	Score     float64         `json:"score"`
	Semester  string          `json:"semester"`
	CreatedAt time.Time       `json:"createdAt"`
}

// StudentGrade is a Grade listed for one student: only the course is populated, with its credits.
type StudentGrade struct {
	ID        string          `json:"_id"`
	Student   string          `json:"student"`
	Course    *course.Summary `json:"course"`
	Score     float64         `json:"score"`
	Semester  string          `json:"semester"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CourseGrade is a Grade listed for one course: only the student is populated.
type CourseGrade struct {
	ID        string        `json:"_id"`
	Student   *user.Summary `json:"student"`
	Course    string        `json:"course"`
	Score     float64       `json:"score"`
	Semester  string        `json:"semester"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewGrade contains information needed to record a new Grade.
type NewGrade struct {
	Student  string   `json:"student" validate:"required"`
	Course   string   `json:"course" validate:"required"`
	Score    *float64 `json:"score" validate:"required,gte=0,lte=10"`
	Semester string   `json:"semester" validate:"required"`
}

func (ng *NewGrade) Validate(v *core.Validator) error {
	ng.Student = core.CleanString(ng.Student)
	ng.Course = core.CleanString(ng.Course)
	ng.Semester = core.CleanString(ng.Semester)
	return v.Struct(ng)
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
type UpdateGrade struct {
	Student  *string  `json:"student"`
	Course   *string  `json:"course"`
	Score    *float64 `json:"score"`
	Semester *string  `json:"semester"`
}

// Apply returns orig with the provided fields replaced.
func (ug UpdateGrade) Apply(orig Grade) Grade {
	g := orig
	if ug.Student != nil {
		g.Student = core.CleanString(*ug.Student)
	}
	if ug.Course != nil {
		g.Course = core.CleanString(*ug.Course)
	}
	if ug.Score != nil {
		g.Score = *ug.Score
	}
	if ug.Semester != nil {
		g.Semester = core.CleanString(*ug.Semester)
	}
	return g
}

type QueryFilter struct {
	Student string
	Course  string
}

// Letter returns the letter grade of a score out of 10.
func Letter(score float64) string {
	switch {
	case score >= 8.5:
		return "A"
	case score >= 7:
		return "B"
	case score >= 5.5:
		return "C"
	case score >= 4:
		return "D"
	default:
		return "F"
	}
}

// Points converts a letter grade to the 4-point scale.
func Points(letter string) float64 {
	switch letter {
	case "A":
		return 4
	case "B":
		return 3
	case "C":
		return 2
	case "D":
		return 1
	default:
		return 0
	}
}

type ScoredGrade struct {
	StudentGrade
	Letter string `json:"letter"`
}

type SemesterSummary struct {
	Semester string  `json:"semester"`
	Average  float64 `json:"average"`
	Credits  int     `json:"credits"`
	Count    int     `json:"count"`
}

// Summary aggregates the grades of one student.
type Summary struct {
	Student       string            `json:"student"`
	Count         int               `json:"count"`
	Average       float64           `json:"average"`
	GPA           float64           `json:"gpa"`
	EarnedCredits int               `json:"earnedCredits"`
	Semesters     []SemesterSummary `json:"semesters"`
	Grades        []ScoredGrade     `json:"grades"`
}

// Summarize aggregates grades listed for studentID.
func Summarize(studentID string, grades []StudentGrade) Summary {
	sum := Summary{
		Student:   studentID,
		Count:     len(grades),
		Semesters: []SemesterSummary{},
		Grades:    make([]ScoredGrade, 0, len(grades)),
	}
	if len(grades) == 0 {
		return sum
	}

	type acc struct {
		total   float64
		credits int
		count   int
	}
	var (
		total        float64
		points       float64
		gpaCredits   int
		order        []string
		semesters    = make(map[string]*acc)
		earnedCourse = make(map[string]struct{})
	)

	for _, g := range grades {
		letter := Letter(g.Score)
		sum.Grades = append(sum.Grades, ScoredGrade{StudentGrade: g, Letter: letter})
		total += g.Score

		sem, ok := semesters[g.Semester]
		if !ok {
			sem = &acc{}
			semesters[g.Semester] = sem
			order = append(order, g.Semester)
		}
		sem.total += g.Score
		sem.count++

		if g.Course == nil || g.Course.Credits == nil {
			continue
		}
		credits := *g.Course.Credits
		sem.credits += credits
		points += Points(letter) * float64(credits)
		gpaCredits += credits
		if g.Score >= PassScore {
			if _, seen := earnedCourse[g.Course.ID]; !seen {
				earnedCourse[g.Course.ID] = struct{}{}
				sum.EarnedCredits += credits
			}
		}
	}

	sum.Average = core.Round2(total / float64(len(grades)))
	if gpaCredits > 0 {
		sum.GPA = core.Round2(points / float64(gpaCredits))
	}
	for _, name := range order {
		sem := semesters[name]
		sum.Semesters = append(sum.Semesters, SemesterSummary{
			Semester: name,
			Average:  core.Round2(sem.total / float64(sem.count)),
			Credits:  sem.credits,
			Count:    sem.count,
		})
	}
	return sum
}
