// Package validate runs per-entity rule tables over submitted field values.
// Rules are data; the only I/O goes through the Store handed to Check.
package validate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"tienda/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MsgRequired   = "This field is required."
	MsgDigits     = "Only digits are allowed."
	MsgDecimals   = "Decimal values are not allowed."
	MsgThousands  = "Do not use thousands separators."
	MsgLetters    = "Only letters and spaces are allowed."
	MsgEmail      = "Enter a valid email address."
	MsgChoice     = "Select a valid option."
	MsgAmount     = "Enter a valid amount."
	MsgWeakSecret = "Use 8 to 72 characters mixing upper and lower case letters, digits and symbols."
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[\p{L}0-9 _'\-]{1,50}$`)
)

// Store is the read-only view of the entity store the rules need.
type Store interface {
	// Exists reports whether a row of entity other than exceptID has key in field.
	Exists(ctx context.Context, entity domain.Entity, field, key string, exceptID int64) (bool, error)
	// Resolves reports whether entity has a row with id.
	Resolves(ctx context.Context, entity domain.Entity, id int64) (bool, error)
}

type Kind int

const (
	KindRequired Kind = iota
	KindOptional
	KindClean
	KindLower
	KindMatch
	KindDigits
	KindLength
	KindRange
	KindAmount
	KindEmail
	KindOneOf
	KindSecret
	KindUnique
	KindRef
	KindSameAs
)

// Rule is one validator. Only the parameters relevant to Kind are set.
type Rule struct {
	Kind    Kind
	Message string

	Pattern *regexp.Regexp
	Min     int64
	Max     int64
	Values  []string
	Default string

	Entity domain.Entity
	Field  string
	Key    func(string) string
}

func Required() Rule           { return Rule{Kind: KindRequired} }
func Optional(def string) Rule { return Rule{Kind: KindOptional, Default: def} }
func Clean() Rule              { return Rule{Kind: KindClean} }
func Lower() Rule              { return Rule{Kind: KindLower} }
func Digits() Rule             { return Rule{Kind: KindDigits} }
func Email() Rule              { return Rule{Kind: KindEmail} }
func Secret() Rule             { return Rule{Kind: KindSecret} }

func Match(re *regexp.Regexp, msg string) Rule {
	return Rule{Kind: KindMatch, Pattern: re, Message: msg}
}

// Length bounds the value's length in characters.
func Length(min, max int) Rule {
	return Rule{Kind: KindLength, Min: int64(min), Max: int64(max)}
}

// Range bounds an integer value; pair it with Digits.
func Range(min, max int64) Rule { return Rule{Kind: KindRange, Min: min, Max: max} }

// Amount accepts a non-negative decimal and bounds it.
func Amount(min, max int64) Rule { return Rule{Kind: KindAmount, Min: min, Max: max} }

func OneOf(values ...string) Rule { return Rule{Kind: KindOneOf, Values: values} }

// Unique rejects a value whose key is already used by another row.
func Unique(entity domain.Entity, field string, key func(string) string) Rule {
	return Rule{Kind: KindUnique, Entity: entity, Field: field, Key: key}
}

// Ref requires a selection that resolves to an existing row of entity.
func Ref(entity domain.Entity) Rule { return Rule{Kind: KindRef, Entity: entity} }

func SameAs(field, msg string) Rule { return Rule{Kind: KindSameAs, Field: field, Message: msg} }

// Msg overrides the rule's default message.
func (r Rule) Msg(msg string) Rule {
	r.Message = msg
	return r
}

type Field struct {
	Name  string
	Label string
	Rules []Rule
}

type Schema struct {
	Entity domain.Entity
	Fields []Field
}

type Result struct {
	Values    map[string]string
	Errors    domain.FieldErrors
	Conflicts []*domain.ConflictError
	fault     error
}

// Err returns a store fault first, then a *domain.ValidationError, or nil.
func (r Result) Err() error {
	if r.fault != nil {
		return r.fault
	}
	if len(r.Errors) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: r.Errors, Conflicts: r.Conflicts}
}

func (r Result) OK() bool { return r.fault == nil && len(r.Errors) == 0 }

// Fail records an error discovered outside the rule table (cross-record checks).
func (r *Result) Fail(field, msg string) {
	if r.Errors == nil {
		r.Errors = domain.FieldErrors{}
	}
	r.Errors.Add(field, msg)
}

func (r Result) String(name string) string { return r.Values[name] }

func (r Result) Int(name string) int {
	n, _ := strconv.Atoi(r.Values[name])
	return n
}

// ID returns the selected row id, 0 when the field was left empty.
func (r Result) ID(name string) int64 {
	n, _ := strconv.ParseInt(r.Values[name], 10, 64)
	return n
}

func (r Result) OptionalID(name string) *int64 {
	if id := r.ID(name); id > 0 {
		return &id
	}
	return nil
}

func (r Result) Decimal(name string) decimal.Decimal {
	d, err := decimal.NewFromString(r.Values[name])
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (r Result) Bool(name string) bool { return Truthy(r.Values[name]) }

// Truthy reads an HTML checkbox or JSON-ish boolean.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "on", "true", "yes", "si", "sí":
		return true
	}
	return false
}

// Check runs schema over input. currentID is the row being edited (0 on
// create) and is excluded from uniqueness checks. Rules of one field stop at
// its first failure; every field is checked.
func Check(ctx context.Context, store Store, schema Schema, input map[string]string, currentID int64) Result {
	res := Result{Values: map[string]string{}, Errors: domain.FieldErrors{}}
	for _, f := range schema.Fields {
		v, msg, conflict, err := runField(ctx, store, f, input, res.Values, currentID)
		if err != nil {
			res.fault = fmt.Errorf("validate %s.%s: %w", schema.Entity, f.Name, err)
			return res
		}
		if msg != "" {
			res.Errors.Add(f.Name, msg)
			if conflict != nil {
				res.Conflicts = append(res.Conflicts, conflict)
			}
			continue
		}
		res.Values[f.Name] = v
	}
	return res
}

func runField(ctx context.Context, store Store, f Field, input, done map[string]string, currentID int64) (string, string, *domain.ConflictError, error) {
	v := input[f.Name]
	for _, r := range f.Rules {
		switch r.Kind {
		case KindRequired:
			if strings.TrimSpace(v) == "" {
				return "", pick(r.Message, MsgRequired), nil, nil
			}
		case KindOptional:
			if strings.TrimSpace(v) == "" {
				return r.Default, "", nil, nil
			}
		case KindClean:
			v = domain.Clean(v)
		case KindLower:
			v = strings.ToLower(strings.TrimSpace(v))
		case KindMatch:
			if !r.Pattern.MatchString(v) {
				return "", r.Message, nil, nil
			}
		case KindDigits:
			n, msg := NormalizeDigits(v)
			if msg != "" {
				return "", pick(r.Message, msg), nil, nil
			}
			v = n
		case KindLength:
			if n := int64(utf8.RuneCountInString(v)); n < r.Min || n > r.Max {
				return "", pick(r.Message, lengthMsg(r.Min, r.Max)), nil, nil
			}
		case KindRange:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < r.Min || n > r.Max {
				return "", pick(r.Message, fmt.Sprintf("Enter a value between %s and %s.", group(r.Min), group(r.Max))), nil, nil
			}
		case KindAmount:
			d, err := decimal.NewFromString(strings.TrimSpace(v))
			if err != nil || d.IsNegative() {
				return "", pick(r.Message, MsgAmount), nil, nil
			}
			if d.LessThan(decimal.NewFromInt(r.Min)) || d.GreaterThan(decimal.NewFromInt(r.Max)) {
				return "", pick(r.Message, fmt.Sprintf("Enter a value between %s and %s.", group(r.Min), group(r.Max))), nil, nil
			}
			v = d.String()
		case KindEmail:
			v = strings.TrimSpace(v)
			if len(v) > 254 || !reEmail.MatchString(v) {
				return "", pick(r.Message, MsgEmail), nil, nil
			}
		case KindOneOf:
			v = strings.TrimSpace(v)
			if !contains(r.Values, v) {
				return "", pick(r.Message, MsgChoice), nil, nil
			}
		case KindSecret:
			if !strongSecret(v) {
				return "", pick(r.Message, MsgWeakSecret), nil, nil
			}
		case KindUnique:
			key := v
			if r.Key != nil {
				key = r.Key(v)
			}
			taken, err := store.Exists(ctx, r.Entity, r.Field, key, currentID)
			if err != nil {
				return "", "", nil, err
			}
			if taken {
				c := &domain.ConflictError{Entity: r.Entity, Field: f.Name, Value: v}
				return "", pick(r.Message, fmt.Sprintf("%q is already registered.", v)), c, nil
			}
		case KindRef:
			v = strings.TrimSpace(v)
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil || id <= 0 {
				return "", pick(r.Message, MsgChoice), nil, nil
			}
			ok, err := store.Resolves(ctx, r.Entity, id)
			if err != nil {
				return "", "", nil, err
			}
			if !ok {
				return "", pick(r.Message, fmt.Sprintf("The selected %s does not exist.", strings.ReplaceAll(string(r.Entity), "_", " "))), nil, nil
			}
		case KindSameAs:
			other, ok := done[r.Field]
			if !ok {
				other = input[r.Field]
			}
			if v != other {
				return "", r.Message, nil, nil
			}
		}
	}
	return v, "", nil, nil
}

// Q validates a free-text search query.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if utf8.RuneCountInString(s) > 50 {
		s = string([]rune(s)[:50])
	}
	return s, reQ.MatchString(s)
}

func strongSecret(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

func lengthMsg(min, max int64) string {
	if min == max {
		return fmt.Sprintf("Must be exactly %d characters long.", min)
	}
	return fmt.Sprintf("Must be between %d and %d characters long.", min, max)
}

func pick(custom, def string) string {
	if custom != "" {
		return custom
	}
	return def
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

var printer = message.NewPrinter(language.English)

// group renders n with comma thousands grouping for messages ("999,999").
func group(n int64) string { return printer.Sprintf("%d", n) }

// MsgNoItems is raised when a sale arrives without line items.
const MsgNoItems = "Add at least one product."

// CheckLines validates every line against schema and merges failures into res
// under "items.<index>.<field>". An empty list fails on "items".
func CheckLines(ctx context.Context, store Store, res *Result, schema Schema, lines []map[string]string) []Result {
	if len(lines) == 0 {
		res.Fail("items", MsgNoItems)
		return nil
	}
	out := make([]Result, 0, len(lines))
	for i, line := range lines {
		lr := Check(ctx, store, schema, line, 0)
		if lr.fault != nil && res.fault == nil {
			res.fault = lr.fault
		}
		for field, msgs := range lr.Errors {
			for _, m := range msgs {
				res.Fail(fmt.Sprintf("items.%d.%s", i, field), m)
			}
		}
		out = append(out, lr)
	}
	return out
}
