package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCOP(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999":        "999",
		"1000":       "1.000",
		"4500":       "4.500",
		"1234567":    "1.234.567",
		"1234567.5":  "1.234.568",
		"99999999":   "99.999.999",
		"-25000":     "-25.000",
		"12000.0000": "12.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, COP(decimal.RequireFromString(in)), in)
	}
}

func TestDates(t *testing.T) {
	assert.Equal(t, "", DateTime(time.Time{}))
	assert.Equal(t, "05/03/2026", Date(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))

	loc := time.Local
	time.Local = time.UTC
	defer func() { time.Local = loc }()
	assert.Equal(t, "14/03/2026 09:05", DateTime(time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC)))
}

func TestFormHelpers(t *testing.T) {
	assert.Equal(t, "", Field(nil, "name"))
	assert.Equal(t, "Ana", Field(map[string]string{"name": "Ana"}, "name"))
	assert.Equal(t, "", FieldErr(nil, "name"))
	assert.Equal(t, "first", FieldErr(map[string][]string{"name": {"first", "second"}}, "name"))
}
