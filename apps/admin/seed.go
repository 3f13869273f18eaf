package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/grade"
	"github.com/educhain/educhain/core/user"
)

const seedSemester = "2025-2026-1"

type (
	seedCourse struct {
		course.NewCourse
		teacher  string   // username
		students []string // usernames
	}

	seedGrade struct {
		student string // username
		course  string // code
		score   float64
	}
)

var (
	seedUsers = []user.NewUser{
		{Username: "admin", FullName: "Quản trị viên", Email: "admin@educhain.com", Password: "admin123", Role: user.RoleAdmin},
		{Username: "giaovien1", FullName: "Nguyễn Văn A", Email: "teacher1@educhain.com", Password: "teacher123", Role: user.RoleTeacher},
		{Username: "giaovien2", FullName: "Trần Thị B", Email: "teacher2@educhain.com", Password: "teacher123", Role: user.RoleTeacher},
		{Username: "sinhvien1", FullName: "Lê Văn C", Email: "student1@educhain.com", Password: "student123", Role: user.RoleStudent},
		{Username: "sinhvien2", FullName: "Phạm Thị D", Email: "student2@educhain.com", Password: "student123", Role: user.RoleStudent},
		{Username: "sinhvien3", FullName: "Hoàng Văn E", Email: "student3@educhain.com", Password: "student123", Role: user.RoleStudent},
	}

	seedCourses = []seedCourse{
		{
			NewCourse: course.NewCourse{Name: "Lập trình Web", Code: "IT101", Description: "Học về HTML, CSS, JavaScript và React", Credits: intPtr(3)},
			teacher:   "giaovien1",
			students:  []string{"sinhvien1", "sinhvien2", "sinhvien3"},
		},
		{
			NewCourse: course.NewCourse{Name: "Cơ sở dữ liệu", Code: "IT102", Description: "Học về MongoDB, MySQL và thiết kế database", Credits: intPtr(4)},
			teacher:   "giaovien1",
			students:  []string{"sinhvien1", "sinhvien2"},
		},
		{
			NewCourse: course.NewCourse{Name: "Toán cao cấp", Code: "MATH201", Description: "Giải tích và đại số tuyến tính", Credits: intPtr(3)},
			teacher:   "giaovien2",
			students:  []string{"sinhvien1", "sinhvien3"},
		},
	}

	seedGrades = []seedGrade{
		{student: "sinhvien1", course: "IT101", score: 8.5},
		{student: "sinhvien1", course: "IT102", score: 9.0},
		{student: "sinhvien1", course: "MATH201", score: 7.5},
		{student: "sinhvien2", course: "IT101", score: 7.0},
		{student: "sinhvien2", course: "IT102", score: 8.0},
		{student: "sinhvien3", course: "IT101", score: 9.5},
		{student: "sinhvien3", course: "MATH201", score: 8.0},
	}
)

func intPtr(i int) *int { return &i }

// seed wipes users, courses and grades, then loads the demo data set.
// Announcements, schedules and exams are left untouched.
func (cli *commandLine) seed(ctx context.Context) error {
	if err := cli.clearSeeded(ctx); err != nil {
		return err
	}

	userIDs := make(map[string]string, len(seedUsers)) // username -> ID
	for _, su := range seedUsers {
		usr, err := cli.svcs.Users.Create(ctx, su)
		if err != nil {
			return errors.Wrapf(err, "creating user %s", su.Username)
		}
		userIDs[usr.Username] = usr.ID
	}

	courseIDs := make(map[string]string, len(seedCourses)) // code -> ID
	for _, sc := range seedCourses {
		nc := sc.NewCourse
		nc.Teacher = userIDs[sc.teacher]
		for _, uname := range sc.students {
			nc.Students = append(nc.Students, userIDs[uname])
		}
		crs, err := cli.svcs.Courses.Create(ctx, nc)
		if err != nil {
			return errors.Wrapf(err, "creating course %s", sc.Code)
		}
		courseIDs[crs.Code] = crs.ID
	}

	for _, sg := range seedGrades {
		score := sg.score
		_, err := cli.svcs.Grades.Create(ctx, grade.NewGrade{
			Student:  userIDs[sg.student],
			Course:   courseIDs[sg.course],
			Score:    &score,
			Semester: seedSemester,
		})
		if err != nil {
			return errors.Wrapf(err, "creating grade %s/%s", sg.student, sg.course)
		}
	}

	fmt.Printf("seeded %d users, %d courses and %d grades\n", len(seedUsers), len(seedCourses), len(seedGrades))
	fmt.Println("accounts: admin/admin123, giaovien1/teacher123, sinhvien1/student123")
	return nil
}

func (cli *commandLine) clearSeeded(ctx context.Context) error {
	grades, err := cli.svcs.Grades.Query(ctx)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	for _, g := range grades {
		if err = cli.svcs.Grades.Delete(ctx, g.ID); err != nil {
			return errors.Wrap(err, "deleting grade")
		}
	}

	courses, err := cli.svcs.Courses.Query(ctx)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	for _, c := range courses {
		if err = cli.svcs.Courses.Delete(ctx, c.ID); err != nil {
			return errors.Wrap(err, "deleting course")
		}
	}

	users, err := cli.svcs.Users.Query(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	for _, usr := range users {
		if err = cli.svcs.Users.Delete(ctx, usr.ID); err != nil {
			return errors.Wrap(err, "deleting user")
		}
	}
	return nil
}
