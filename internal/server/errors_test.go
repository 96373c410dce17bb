package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeErrorHandler(t *testing.T, h *Handlers, err error, commit bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/anything", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if commit {
		c.Response().WriteHeader(http.StatusOK)
	}
	JSONErrorHandler(h)(err, c)
	return rec
}

func TestJSONErrorHandler(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	t.Run("echo http errors keep their status", func(t *testing.T) {
		h := &Handlers{Logger: logger}
		rec := invokeErrorHandler(t, h, echo.NewHTTPError(http.StatusNotFound), false)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Not Found", resp.Error)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Nil(t, resp.Details)
	})

	t.Run("plain errors become 500 and hide the cause", func(t *testing.T) {
		h := &Handlers{Logger: logger}
		rec := invokeErrorHandler(t, h, errors.New("redis exploded"), false)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "redis exploded")
	})

	t.Run("dev mode attaches the cause", func(t *testing.T) {
		h := &Handlers{Logger: logger, DevMode: true}
		rec := invokeErrorHandler(t, h, errors.New("redis exploded"), false)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "redis exploded", resp.Details)
	})

	t.Run("committed response is left alone", func(t *testing.T) {
		h := &Handlers{Logger: logger}
		rec := invokeErrorHandler(t, h, errors.New("late failure"), true)

		// The stream already owned the 200; nothing may be appended.
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
