package course_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/user"
	"github.com/educhain/educhain/storage/database/inmem"
)

func setup(t *testing.T) (course.Service, user.Repository) {
	db := inmemdb.Open()
	users := inmemdb.NewUserRepository(db)
	return course.NewService(inmemdb.NewCourseRepository(db), users, core.NewValidator()), users
}

func createUser(t *testing.T, repo user.Repository, uname, name, role string) user.User {
	usr, err := repo.CreateUser(context.Background(), user.User{
		Username: uname, FullName: name, Email: uname + "@educhain.com", Role: role,
	})
	require.NoError(t, err)
	return usr
}

func intPtr(i int) *int { return &i }

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		c, err := svc.Create(ctx, course.NewCourse{Name: " Lập trình Web ", Code: "IT101"})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "Lập trình Web", c.Name)
		assert.Equal(t, course.DefaultCredits, c.Credits)
		assert.Equal(t, []string{}, c.Students)
		assert.Empty(t, c.Teacher)
		assert.False(t, c.CreatedAt.IsZero())
	})

	t.Run("zero credits", func(t *testing.T) {
		c, err := svc.Create(ctx, course.NewCourse{Name: "Seminar", Code: "SEM0", Credits: intPtr(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, c.Credits)
	})

	tests := []struct {
		name       string
		nc         course.NewCourse
		wantFields map[string]string
	}{
		{name: "empty", nc: course.NewCourse{}, wantFields: map[string]string{"name": "name is required", "code": "code is required"}},
		{name: "negative credits", nc: course.NewCourse{Name: "X", Code: "X1", Credits: intPtr(-1)}, wantFields: map[string]string{"credits": "credits must be 0 or greater"}},
		{name: "code taken", nc: course.NewCourse{Name: "Other", Code: " IT101 "}, wantFields: map[string]string{"code": course.ErrCodeExists.Error()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.nc)
			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantFields, verr.FieldMap())
		})
	}
}

func TestService_Population(t *testing.T) {
	svc, users := setup(t)
	ctx := context.Background()

	teacher := createUser(t, users, "giaovien1", "Nguyễn Văn A", user.RoleTeacher)
	s1 := createUser(t, users, "sinhvien1", "Lê Văn C", user.RoleStudent)
	s2 := createUser(t, users, "sinhvien2", "Phạm Thị D", user.RoleStudent)

	c, err := svc.Create(ctx, course.NewCourse{
		Name: "Cơ sở dữ liệu", Code: "IT102", Teacher: teacher.ID,
		Students: []string{s1.ID, " ", s2.ID, s1.ID}, Credits: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{s1.ID, s2.ID}, c.Students)

	detail, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, &user.Summary{ID: teacher.ID, FullName: "Nguyễn Văn A", Email: "giaovien1@educhain.com"}, detail.Teacher)
	assert.Equal(t, []user.Summary{s1.Summary(), s2.Summary()}, detail.Students)

	again, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, detail, again)

	// dangling references are dropped, not errors
	require.NoError(t, users.DeleteUser(ctx, teacher.ID))
	require.NoError(t, users.DeleteUser(ctx, s1.ID))

	list, err := svc.Query(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Teacher)
	assert.Equal(t, []user.Summary{s2.Summary()}, list[0].Students)

	_, err = svc.GetByID(ctx, "nope")
	assert.Equal(t, course.ErrNotFound, err)
}

func TestService_Update(t *testing.T) {
	svc, users := setup(t)
	ctx := context.Background()

	teacher := createUser(t, users, "giaovien1", "Nguyễn Văn A", user.RoleTeacher)
	c, err := svc.Create(ctx, course.NewCourse{Name: "Lập trình Web", Code: "IT101", Teacher: teacher.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, course.NewCourse{Name: "Toán cao cấp", Code: "MATH201"})
	require.NoError(t, err)

	strPtr := func(s string) *string { return &s }

	_, err = svc.Update(ctx, "nope", course.UpdateCourse{Name: strPtr("X")})
	assert.Equal(t, course.ErrNotFound, err)

	_, err = svc.Update(ctx, c.ID, course.UpdateCourse{Code: strPtr("MATH201")})
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FieldMap(), "code")

	_, err = svc.Update(ctx, c.ID, course.UpdateCourse{Name: strPtr(" ")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FieldMap(), "name")

	// same code is not a collision with itself
	detail, err := svc.Update(ctx, c.ID, course.UpdateCourse{Code: strPtr("IT101"), Credits: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, detail.Credits)
	assert.Equal(t, "Lập trình Web", detail.Name)
	assert.NotNil(t, detail.Teacher)

	detail, err = svc.Update(ctx, c.ID, course.UpdateCourse{Teacher: strPtr(""), Students: &[]string{teacher.ID}})
	require.NoError(t, err)
	assert.Nil(t, detail.Teacher)
	assert.Equal(t, []user.Summary{teacher.Summary()}, detail.Students)
}

func TestService_Delete(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, course.NewCourse{Name: "Lập trình Web", Code: "IT101"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.Equal(t, course.ErrNotFound, svc.Delete(ctx, c.ID))

	// the code is free again
	_, err = svc.Create(ctx, course.NewCourse{Name: "Lập trình Web", Code: "IT101"})
	assert.NoError(t, err)
}
