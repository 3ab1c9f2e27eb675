package utils

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/balojey/abdullateef-api/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// maxLoggedBody caps request and response bodies stored in the request log
const maxLoggedBody = 4000

// CalculateAge returns the age at the given moment in years, months and days.
// A date of birth after at yields a negative year count.
func CalculateAge(dob, at time.Time) (int, int, int) {
	years := at.Year() - dob.Year()
	months := int(at.Month()) - int(dob.Month())
	days := at.Day() - dob.Day()

	// Adjust for negative days (birthday day hasn't occurred this month)
	if days < 0 {
		previousMonth := now.With(at).BeginningOfMonth().AddDate(0, 0, -1) // last day of the previous month
		days += previousMonth.Day()
		months--
	}

	// Adjust for negative months (birthday hasn't occurred this year)
	if months < 0 {
		years--
		months += 12
	}

	return years, months, days
}

// sanitizeRequestBody replaces multipart payloads and oversized bodies with a summary
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})
		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}
			for key, files := range form.File {
				formData[key] = len(files)
			}
		}
		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	return truncate(string(c.Body()))
}

func truncate(body string) string {
	if len(body) <= maxLoggedBody {
		return body
	}
	return body[:maxLoggedBody] + "...[TRUNCATED]"
}

// CreateSanitizedLogEntry copies everything the request log needs out of c.
// Fiber reuses the context buffers once the handler returns, so nothing here may alias them.
func CreateSanitizedLogEntry(c *fiber.Ctx, duration time.Duration) types.LogEntry {
	return types.LogEntry{
		Method:       strings.Clone(c.Method()),
		Path:         strings.Clone(c.OriginalURL()),
		RemoteIP:     strings.Clone(c.IP()),
		RequestBody:  strings.Clone(sanitizeRequestBody(c)),
		ResponseBody: truncate(string(c.Response().Body())),
		StatusCode:   c.Response().StatusCode(),
		Duration:     duration,
		CreatedAt:    time.Now(),
	}
}
