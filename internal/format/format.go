// Package format renders amounts, dates and form values the way the shop's
// pages and receipts show them.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// COP rounds d to whole pesos and groups thousands with dots: 1234567.5 -> "1.234.568".
func COP(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(n + n/3 + 1)
	b.WriteString(sign)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// DateTime is the dd/mm/yyyy hh:mm layout used in sale details.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/2006 15:04")
}

// Date is the day-only layout for purchases and orders.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// Funcs is the template function map the page engine is built with.
var Funcs = map[string]any{
	"cop":      COP,
	"datetime": DateTime,
	"date":     Date,
	"field":    Field,
	"fieldErr": FieldErr,
}

// Field reads a submitted form value; a nil form yields "".
func Field(form map[string]string, name string) string { return form[name] }

// FieldErr returns the first error recorded for name, or "".
func FieldErr(errs map[string][]string, name string) string {
	if msgs := errs[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
