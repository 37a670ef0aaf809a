package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizdeck_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	ext := NewExtractionError("no JSON object in %q", "hello")
	assert.True(t, IsExtractionError(ext))
	assert.True(t, IsExtractionError(fmt.Errorf("pass one: %w", ext)))
	assert.False(t, IsCapabilityError(ext))
	assert.False(t, IsValidationError(ext))

	capErr := &CapabilityError{Err: errors.New("dial tcp: refused")}
	assert.True(t, IsCapabilityError(capErr))
	assert.ErrorIs(t, capErr, capErr.Err)

	val := NewValidationError("title", "must not be empty")
	assert.True(t, IsValidationError(val))
	assert.Equal(t, "invalid title: must not be empty", val.Error())
}

func TestFailFromErrorStatusMapping(t *testing.T) {
	logger.InitNop()
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", NewValidationError("file", "bad"), http.StatusBadRequest},
		{"extraction", NewExtractionError("garbage output"), http.StatusBadRequest},
		{"capability", &CapabilityError{Err: errors.New("down")}, http.StatusBadGateway},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			FailFromError(c, tt.err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
