package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestEntriesCarryRequestContext(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	app := fiber.New()
	app.Get("/clients", func(c *fiber.Ctx) error {
		c.Locals("requestid", "rid-1")
		Audit(c, "client.create", map[string]any{"client_id": 7})
		Error(c, "client.list.fail", errors.New("boom"), nil)
		return c.SendStatus(fiber.StatusOK)
	})
	_, err := app.Test(httptest.NewRequest("GET", "/clients", nil))
	require.NoError(t, err)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "audit", entries[0]["level"])
	assert.Equal(t, "client.create", entries[0]["action"])
	assert.Equal(t, "rid-1", entries[0]["req_id"])
	assert.Equal(t, "/clients", entries[0]["path"])
	assert.Equal(t, float64(7), entries[0]["fields"].(map[string]any)["client_id"])

	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "boom", entries[1]["err"])
}

func TestSetupFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup("production", "error", &buf)
	defer SetOutput(&bytes.Buffer{})

	Plain("startup", nil)
	Error(nil, "db.open.fail", errors.New("no such file"), nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.open.fail", entries[0]["action"])
}
