package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/user"
)

func TestReportingEnabled(t *testing.T) {
	conf := core.NewTestConfig()
	assert.False(t, ReportingEnabled(conf))

	conf.RollbarToken = "token"
	assert.False(t, ReportingEnabled(conf)) // test mode

	conf.TestMode = false
	assert.True(t, ReportingEnabled(conf))

	conf.Debug = true
	assert.False(t, ReportingEnabled(conf))
}

func TestRollbarLogger_print(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), core.NewTestConfig())

	logger.Error("saving grade",
		errors.New("boom"),
		user.User{ID: "u1", Username: "sinhvien1"},
		map[string]interface{}{"path": "/api/grades"},
	)

	assert.Equal(t, "ERROR: saving grade\n  boom\n  user: sinhvien1 (u1)\n  path: /api/grades\n", buf.String())
}
