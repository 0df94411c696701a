package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorKind_HTTPStatus(t *testing.T) {
	cases := map[ErrorKind]int{
		KindValidation:   http.StatusBadRequest,
		KindConflict:     http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindInvalidToken: http.StatusUnauthorized,
		KindRevoked:      http.StatusUnauthorized,
		KindMalformed:    http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestKindOf_UnwrapsWrappedErrors(t *testing.T) {
	base := NewError(KindNotFound, "Shop not found")
	wrapped := fmt.Errorf("loading shop: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.True(t, errors.Is(wrapped, base))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestRespondError_HidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, zap.NewNop(), Internal("failed to load bookings", errors.New("connection reset by peer")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestRespondError_ClientMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, zap.NewNop(), NewError(KindForbidden, "Barbershop does not belong to the requester"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Barbershop does not belong to the requester"}`, rec.Body.String())
}
