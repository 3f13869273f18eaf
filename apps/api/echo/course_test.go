package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/user"
)

func Test_courseApi_create(t *testing.T) {
	env := setup(t)

	var first course.Course
	code := env.do(t, http.MethodPost, "/api/courses", map[string]interface{}{"code": "CS900", "name": "X", "credits": 3}, &first)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 3, first.Credits)
	assert.Equal(t, []string{}, first.Students)

	msg := course.ErrCodeExists.Error()
	env.run(t, []httpTest{
		{
			name: "duplicate code", method: http.MethodPost, path: "/api/courses",
			body:     marshalObj(t, map[string]interface{}{"code": "CS900", "name": "Y", "credits": 2}),
			wantCode: http.StatusBadRequest, wantData: errorBody(t, msg, map[string]string{"code": msg}),
		},
		{
			name: "missing name", method: http.MethodPost, path: "/api/courses",
			body:     []byte(`{"code": "CS901"}`),
			wantCode: http.StatusBadRequest, wantData: errorBody(t, "name is required", map[string]string{"name": "name is required"}),
		},
	})

	var list []course.Detail
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/courses", nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}

func Test_courseApi_population(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	teacher, err := env.svcs.Users.Create(ctx, user.NewUser{Username: "giaovien1", FullName: "Nguyễn Văn A", Email: "teacher1@educhain.com", Role: user.RoleTeacher})
	require.NoError(t, err)
	student, err := env.svcs.Users.Create(ctx, user.NewUser{Username: "sinhvien1", FullName: "Lê Văn C", Email: "student1@educhain.com"})
	require.NoError(t, err)

	c, err := env.svcs.Courses.Create(ctx, course.NewCourse{
		Name: "Lập trình Web", Code: "IT101", Teacher: teacher.ID, Students: []string{student.ID, "ghost"},
	})
	require.NoError(t, err)

	var detail map[string]interface{}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/courses/"+c.ID, nil, &detail))
	assert.Equal(t, map[string]interface{}{"_id": teacher.ID, "fullName": "Nguyễn Văn A", "email": "teacher1@educhain.com"}, detail["teacher"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"_id": student.ID, "fullName": "Lê Văn C", "email": "student1@educhain.com"},
	}, detail["students"])

	require.NoError(t, env.svcs.Users.Delete(ctx, teacher.ID))
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/courses/"+c.ID, nil, &detail))
	assert.Nil(t, detail["teacher"])

	env.run(t, []httpTest{
		{name: "not found", path: "/api/courses/lol", wantCode: http.StatusNotFound, wantData: errorBody(t, "Course not found")},
	})
}

func Test_courseApi_updateDelete(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	c, err := env.svcs.Courses.Create(ctx, course.NewCourse{Name: "Lập trình Web", Code: "IT101"})
	require.NoError(t, err)
	_, err = env.svcs.Courses.Create(ctx, course.NewCourse{Name: "Cơ sở dữ liệu", Code: "IT102"})
	require.NoError(t, err)

	var detail course.Detail
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/api/courses/"+c.ID, map[string]interface{}{"credits": 4}, &detail))
	assert.Equal(t, 4, detail.Credits)
	assert.Equal(t, "IT101", detail.Code)
	assert.Equal(t, []user.Summary{}, detail.Students)

	env.run(t, []httpTest{
		{
			name: "code taken", method: http.MethodPut, path: "/api/courses/" + c.ID,
			body: []byte(`{"code": "IT102"}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "not found", method: http.MethodPut, path: "/api/courses/lol",
			body: []byte(`{"credits": 1}`), wantCode: http.StatusNotFound,
		},
		{
			name: "delete", method: http.MethodDelete, path: "/api/courses/" + c.ID,
			wantCode: http.StatusOK, wantData: marshalObj(t, MessageResponse{Message: "Course deleted successfully"}),
		},
		{name: "delete again", method: http.MethodDelete, path: "/api/courses/" + c.ID, wantCode: http.StatusNotFound},
	})
}
