package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 42, "manager1", "manager")

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, uint(42), id)
		assert.Equal(t, "manager1", GetUsernameFromContext(ctx))
		assert.Equal(t, "manager", GetUserRoleFromContext(ctx))
	})

	t.Run("empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, "", GetUserRoleFromContext(context.Background()))
	})
}

func TestInternalRequest(t *testing.T) {
	assert.False(t, IsInternalRequest(context.Background()))
	assert.True(t, IsInternalRequest(WithInternalRequest(context.Background())))
}

func TestPtrString(t *testing.T) {
	assert.Equal(t, "", PtrString(nil))
	v := "a"
	assert.Equal(t, "a", PtrString(&v))
}

func TestFormatKRW(t *testing.T) {
	tests := map[int64]string{
		0:       "0원",
		999:     "999원",
		1000:    "1,000원",
		82000:   "82,000원",
		1234567: "1,234,567원",
		-4000:   "-4,000원",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatKRW(in))
	}
}

func TestFormatDatePtr(t *testing.T) {
	assert.Equal(t, "", FormatDatePtr(nil))
	d := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-15", FormatDatePtr(&d))

	// KST midnight read back through a UTC session is still the KST day.
	midnight := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-20", FormatDatePtr(&midnight))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "bad input", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bad input", body["error"])
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 10, 15, 6, 30, 12, 0, time.UTC)
	num := GenerateOrderNumber(now)

	// HG-YYYYMMDD-HHMMSS-RRRR in KST
	parts := strings.Split(num, "-")
	if assert.Len(t, parts, 4) {
		assert.Equal(t, "HG", parts[0])
		assert.Equal(t, "20261015", parts[1])
		assert.Equal(t, "153012", parts[2])
		assert.Len(t, parts[3], 4)
	}
}
