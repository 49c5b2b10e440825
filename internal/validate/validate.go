// Package validate implements a declarative field validation framework for
// JSON request bodies. A Schema is an ordered list of field descriptors; each
// descriptor carries a kind tag plus required/nullable flags and is evaluated
// exactly once per pass, so one request can report several field errors at
// the same time.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Kind tags select the type/format predicate applied to present values.
type Kind int

const (
	Text Kind = iota
	Arguments
	Email
	Phone
	Date
	Birthday
	Gender
	ClientIDs
)

// DateLayout is the wire format for date and birthday fields (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// maxAge bounds birthday fields. The contract counts 70 years as 70×365
// days with no leap-year correction.
const maxAge = 70 * 365 * 24 * time.Hour

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9.+_-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^7\d{10}$`)
)

// Field describes one validated input field.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Nullable bool
}

// Schema is an ordered set of field descriptors. Order matters for callers
// that enumerate cleaned fields.
type Schema []Field

// Result holds the outcome of one validation pass. Every declared field
// lands in exactly one of the two maps: CleanedData for accepted values
// (nil for absent optional fields), Errors for rejected ones.
type Result struct {
	CleanedData map[string]any
	Errors      map[string]string
}

// IsValid reports whether the pass produced no field errors.
func (r Result) IsValid() bool { return len(r.Errors) == 0 }

// Validate runs every declared field against the raw input independently;
// earlier failures never short-circuit later fields. Unknown input keys are
// ignored. JSON null and an absent key are treated the same. The clock is
// injected so birthday checks stay deterministic in tests.
func (s Schema) Validate(input map[string]any, now time.Time) Result {
	res := Result{
		CleanedData: make(map[string]any, len(s)),
		Errors:      make(map[string]string),
	}
	for _, f := range s {
		value := input[f.Name]
		if value == nil {
			if f.Required {
				res.Errors[f.Name] = fmt.Sprintf("%s is required", f.Name)
			} else {
				res.CleanedData[f.Name] = nil
			}
			continue
		}
		if !f.Nullable && isEmpty(value) {
			res.Errors[f.Name] = fmt.Sprintf("%s cannot be empty", f.Name)
			continue
		}
		if reason := checkKind(f, value, now); reason != "" {
			res.Errors[f.Name] = reason
			continue
		}
		res.CleanedData[f.Name] = value
	}
	return res
}

// isEmpty reports whether a present value is semantically empty. Only
// strings and sequences have an empty form; objects and numbers do not.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	}
	return false
}

func checkKind(f Field, value any, now time.Time) string {
	switch f.Kind {
	case Text:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("%s must be a string", f.Name)
		}
	case Arguments:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Sprintf("%s must be an object", f.Name)
		}
	case Email:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be a string", f.Name)
		}
		if !emailRe.MatchString(s) {
			return "invalid email format"
		}
	case Phone:
		// Phones arrive as JSON strings or numbers; both are matched
		// against the stringified form.
		s, ok := Stringify(value)
		if !ok || !phoneRe.MatchString(s) {
			return "invalid phone number format"
		}
	case Date:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be in format DD.MM.YYYY", f.Name)
		}
		if _, err := time.Parse(DateLayout, s); err != nil {
			return fmt.Sprintf("%s must be in format DD.MM.YYYY", f.Name)
		}
	case Birthday:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be in format DD.MM.YYYY", f.Name)
		}
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return fmt.Sprintf("%s must be in format DD.MM.YYYY", f.Name)
		}
		if now.Sub(d) > maxAge {
			return fmt.Sprintf("%s must be less than 70 years ago", f.Name)
		}
	case Gender:
		n, ok := Int(value)
		if !ok || n < 0 || n > 2 {
			return fmt.Sprintf("%s must be 0, 1 or 2", f.Name)
		}
	case ClientIDs:
		list, ok := value.([]any)
		if !ok {
			return fmt.Sprintf("%s must be a list of integers", f.Name)
		}
		for _, el := range list {
			if _, ok := Int64(el); !ok {
				return fmt.Sprintf("%s must be a list of integers", f.Name)
			}
		}
	}
	return ""
}

// Stringify renders a scalar value the way the phone predicate and the
// scoring fingerprint expect it: strings pass through, whole JSON numbers
// render without an exponent or fraction.
func Stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	}
	return "", false
}

// Int64 extracts an integer from a JSON-decoded value. Fractional numbers
// are rejected.
func Int64(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// Int is Int64 narrowed to the platform int.
func Int(value any) (int, bool) {
	n, ok := Int64(value)
	return int(n), ok
}
