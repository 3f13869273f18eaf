package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educhain/educhain/core/user"
)

func Test_userApi_create(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	t.Run("default password", func(t *testing.T) {
		var resp map[string]interface{}
		code := env.do(t, http.MethodPost, "/api/users", map[string]string{"username": "SV100", "fullName": "Test", "email": "t@x.com"}, &resp)
		assert.Equal(t, http.StatusCreated, code)
		assert.NotEmpty(t, resp["_id"])
		assert.Equal(t, user.RoleStudent, resp["role"])
		assert.NotContains(t, resp, "password")
		assert.NotContains(t, resp, "passwordHash")

		stored, err := env.store.Users.GetUserByUsername(ctx, "SV100")
		require.NoError(t, err)
		assert.NoError(t, stored.CheckPassword(user.DefaultPassword))
	})

	env.run(t, []httpTest{
		{
			name: "duplicate username", method: http.MethodPost, path: "/api/users",
			body:     marshalObj(t, map[string]string{"username": "SV100", "fullName": "Other", "email": "o@x.com"}),
			wantCode: http.StatusBadRequest,
			wantData: errorBody(t, user.ErrUsernameExists.Error(), map[string]string{"username": user.ErrUsernameExists.Error()}),
		},
		{
			name: "invalid", method: http.MethodPost, path: "/api/users",
			body:     marshalObj(t, map[string]string{"username": "SV101", "email": "nope", "role": "dean"}),
			wantCode: http.StatusBadRequest,
			wantData: errorBody(t, "fullName is required; email must be a valid email address; role must be one of student, teacher or admin", map[string]string{
				"fullName": "fullName is required",
				"email":    "email must be a valid email address",
				"role":     "role must be one of student, teacher or admin",
			}),
		},
	})
}

func Test_userApi_queryRetrieve(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	teacher, err := env.svcs.Users.Create(ctx, user.NewUser{Username: "giaovien1", FullName: "Nguyễn Văn A", Email: "teacher1@educhain.com", Role: user.RoleTeacher})
	require.NoError(t, err)
	student, err := env.svcs.Users.Create(ctx, user.NewUser{Username: "sinhvien1", FullName: "Lê Văn C", Email: "student1@educhain.com"})
	require.NoError(t, err)

	env.run(t, []httpTest{
		{name: "all", path: "/api/users", wantCode: http.StatusOK, wantData: marshalObj(t, []user.User{teacher, student})},
		{name: "by role", path: "/api/users?role=student", wantCode: http.StatusOK, wantData: marshalObj(t, []user.User{student})},
		{name: "search", path: "/api/users?search=teacher1", wantCode: http.StatusOK, wantData: marshalObj(t, []user.User{teacher})},
		{name: "no match", path: "/api/users?search=lol", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "retrieve", path: "/api/users/" + student.ID, wantCode: http.StatusOK, wantData: marshalObj(t, student)},
		{name: "not found", path: "/api/users/lol", wantCode: http.StatusNotFound, wantData: errorBody(t, "User not found")},
	})
}

func Test_userApi_updateDelete(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	usr, err := env.svcs.Users.Create(ctx, user.NewUser{Username: "sinhvien1", FullName: "Lê Văn C", Email: "student1@educhain.com"})
	require.NoError(t, err)
	_, err = env.svcs.Users.Create(ctx, user.NewUser{Username: "sinhvien2", FullName: "Phạm Thị D", Email: "student2@educhain.com"})
	require.NoError(t, err)

	updated := usr
	updated.FullName = "Lê Văn Cường"

	env.run(t, []httpTest{
		{
			name: "rename", method: http.MethodPut, path: "/api/users/" + usr.ID,
			body: []byte(`{"fullName": "Lê Văn Cường"}`), wantCode: http.StatusOK, wantData: marshalObj(t, updated),
		},
		{
			name: "username taken", method: http.MethodPut, path: "/api/users/" + usr.ID,
			body: []byte(`{"username": "sinhvien2"}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "not found", method: http.MethodPut, path: "/api/users/lol",
			body: []byte(`{"fullName": "X"}`), wantCode: http.StatusNotFound, wantData: errorBody(t, "User not found"),
		},
		{
			name: "delete", method: http.MethodDelete, path: "/api/users/" + usr.ID,
			wantCode: http.StatusOK, wantData: marshalObj(t, MessageResponse{Message: "User deleted successfully"}),
		},
		{name: "delete again", method: http.MethodDelete, path: "/api/users/" + usr.ID, wantCode: http.StatusNotFound},
	})
}
