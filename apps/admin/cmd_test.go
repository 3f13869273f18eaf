package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/educhain/educhain/apps"
	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/user"
	"github.com/educhain/educhain/storage"
)

func setup(t *testing.T) *commandLine {
	user.HashCost = bcrypt.MinCost
	store := storage.NewMemoryStore()
	return &commandLine{
		store: store,
		svcs:  apps.NewServices(store, core.NewValidator()),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case err == nil:
		if tt.wantErr != nil || tt.wantErrStr != "" {
			t.Errorf("cli.run() error = nil, wantErr %v %s", tt.wantErr, tt.wantErrStr)
		}
	case tt.wantErr != nil:
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err.Error() != tt.wantErrStr {
			t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
		}
	default:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	t.Run("memory engine", func(t *testing.T) {
		tt := cliTest{wantErr: errNoSQLDB}
		tt.check(t, cli.run([]string{"admin", "migrate", "up"}))
	})

	// sql.Open does not connect; the goose runner is mocked below
	db, err := sql.Open("postgres", "postgres://localhost/educhain_test?sslmode=disable")
	require.NoError(t, err)
	defer db.Close()
	cli.store.DB = db

	gooseRunFunc = func(_ *sql.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "exam_rooms", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		tt := tt
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "missing email", args: []string{"adduser", "-username", "awe", "-fullname", "Awe"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "awe", "-fullname", "Awe", "-email", "awe@test.vn"}, wantErr: errHelp},
		{
			name:       "invalid role",
			args:       []string{"adduser", "-username", "awe", "-fullname", "Awe", "-email", "awe@test.vn", "-role", "dean"},
			extra:      extra{pwd: "lol"},
			wantErrStr: "role must be one of student, teacher or admin",
		},
		{
			name:  "valid",
			args:  []string{"adduser", "-username", "awe", "-fullname", "Awe", "-email", "awe@test.vn", "-role", "teacher"},
			extra: extra{pwd: "lol"},
		},
	}
	for _, tt := range tests {
		tt := tt
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErrStr != "" {
				var verr *core.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErrStr, verr.FieldMap()["role"])
				return
			}
			tt.check(t, err)
		})
	}

	usr, err := cli.svcs.Users.Authenticate(context.Background(), "awe", "lol")
	require.NoError(t, err)
	assert.Equal(t, user.RoleTeacher, usr.Role)
	assert.Equal(t, "awe@test.vn", usr.Email)
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	usr, err := cli.svcs.Users.Create(ctx, user.NewUser{Username: "awe", FullName: "User", Email: "awe@test.vn", Password: "mdr"})
	require.NoError(t, err)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		tt := tt
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			tt.check(t, err)
			if err == nil {
				refreshedUsr, err := cli.store.Users.GetUserByID(ctx, usr.ID)
				require.NoError(t, err)
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			}
		})
	}

	_, err = cli.svcs.Users.Authenticate(ctx, "awe", "lol")
	assert.NoError(t, err)
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	_, err := cli.svcs.Users.Create(ctx, user.NewUser{Username: "stale", FullName: "Stale", Email: "stale@test.vn"})
	require.NoError(t, err)

	// seeding twice replaces the previous data set
	for i := 0; i < 2; i++ {
		require.NoError(t, cli.run([]string{"admin", "seed"}))
	}

	users, err := cli.svcs.Users.Query(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, users, len(seedUsers))

	courses, err := cli.svcs.Courses.Query(ctx)
	require.NoError(t, err)
	require.Len(t, courses, len(seedCourses))
	for _, c := range courses {
		if assert.NotNil(t, c.Teacher, c.Code) {
			assert.Contains(t, []string{"Nguyễn Văn A", "Trần Thị B"}, c.Teacher.FullName)
		}
	}

	grades, err := cli.svcs.Grades.Query(ctx)
	require.NoError(t, err)
	assert.Len(t, grades, len(seedGrades))

	student, err := cli.svcs.Users.Authenticate(ctx, "sinhvien1", "student123")
	require.NoError(t, err)
	sum, err := cli.svcs.Grades.Summarize(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 10, sum.EarnedCredits)
	assert.Equal(t, 8.33, sum.Average)
}
