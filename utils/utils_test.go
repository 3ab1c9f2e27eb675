package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/balojey/abdullateef-api/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculateAge(t *testing.T) {
	tests := []struct {
		name                string
		dob, at             time.Time
		years, months, days int
	}{
		{"birthday today", date(1990, 6, 10), date(2026, 6, 10), 36, 0, 0},
		{"birthday later this year", date(1990, 6, 10), date(2026, 3, 20), 35, 9, 10},
		{"birthday later this month", date(2000, 3, 15), date(2026, 3, 1), 25, 11, 14},
		{"born yesterday", date(2026, 2, 28), date(2026, 3, 1), 0, 0, 1},
		{"future date of birth", date(2030, 1, 1), date(2026, 1, 1), -4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, months, days := CalculateAge(tt.dob, tt.at)
			assert.Equal(t, tt.years, years)
			assert.Equal(t, tt.months, months)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))

	long := strings.Repeat("a", maxLoggedBody+10)
	got := truncate(long)
	assert.True(t, strings.HasSuffix(got, "...[TRUNCATED]"))
	assert.Len(t, got, maxLoggedBody+len("...[TRUNCATED]"))
}

func TestCreateSanitizedLogEntry(t *testing.T) {
	var entry types.LogEntry
	app := fiber.New()
	app.Post("/echo", func(c *fiber.Ctx) error {
		if err := c.Status(fiber.StatusCreated).SendString("created"); err != nil {
			return err
		}
		entry = CreateSanitizedLogEntry(c, 5*time.Millisecond)
		return nil
	})

	req := httptest.NewRequest("POST", "/echo?x=1", strings.NewReader(`{"name":"Aisha"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/echo?x=1", entry.Path)
	assert.Equal(t, `{"name":"Aisha"}`, entry.RequestBody)
	assert.Equal(t, "created", entry.ResponseBody)
	assert.Equal(t, fiber.StatusCreated, entry.StatusCode)
	assert.Equal(t, 5*time.Millisecond, entry.Duration)
	assert.False(t, entry.CreatedAt.IsZero())
}
