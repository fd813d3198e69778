package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, 15*time.Minute, conf.HoldTTL)
}

func TestNewHoldTTLOverride(t *testing.T) {
	os.Setenv("HOLD_TTL_MINUTES", "30")
	defer os.Unsetenv("HOLD_TTL_MINUTES")

	conf := New()
	assert.Equal(t, 30*time.Minute, conf.HoldTTL)
}

func TestNewHoldTTLInvalidFallsBack(t *testing.T) {
	os.Setenv("HOLD_TTL_MINUTES", "soon")
	defer os.Unsetenv("HOLD_TTL_MINUTES")

	conf := New()
	assert.Equal(t, 15*time.Minute, conf.HoldTTL)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"response": {"message": "error it borked", "error": "bad request"}}`, rr.Body.String())
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
