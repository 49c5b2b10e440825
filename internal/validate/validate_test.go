package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// ValidateSuite covers the field validation framework: the ordered rules
// (required/absent, non-nullable/empty, kind predicate), error aggregation
// without short-circuit, and the cleaned/errors partition invariant.
type ValidateSuite struct {
	suite.Suite
	now time.Time
}

func TestValidateSuite(t *testing.T) {
	suite.Run(t, new(ValidateSuite))
}

func (s *ValidateSuite) SetupTest() {
	// Midnight, so parsed dates compare against the clock without a
	// time-of-day remainder.
	s.now = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
}

func (s *ValidateSuite) TestRequiredAndNullable() {
	schema := Schema{
		{Name: "login", Kind: Text, Required: true, Nullable: true},
		{Name: "method", Kind: Text, Required: true},
		{Name: "account", Kind: Text, Nullable: true},
	}

	s.Run("absent required field fails", func() {
		res := schema.Validate(map[string]any{"method": "x"}, s.now)
		s.False(res.IsValid())
		s.Equal("login is required", res.Errors["login"])
	})

	s.Run("json null counts as absent", func() {
		res := schema.Validate(map[string]any{"login": nil, "method": "x"}, s.now)
		s.Equal("login is required", res.Errors["login"])
	})

	s.Run("empty non-nullable field fails", func() {
		res := schema.Validate(map[string]any{"login": "h&f", "method": ""}, s.now)
		s.Equal("method cannot be empty", res.Errors["method"])
	})

	s.Run("empty nullable field passes", func() {
		res := schema.Validate(map[string]any{"login": "", "method": "x"}, s.now)
		s.True(res.IsValid())
		s.Equal("", res.CleanedData["login"])
	})

	s.Run("absent optional field passes with nil cleaned value", func() {
		res := schema.Validate(map[string]any{"login": "h&f", "method": "x"}, s.now)
		s.True(res.IsValid())
		value, declared := res.CleanedData["account"]
		s.True(declared)
		s.Nil(value)
	})
}

func (s *ValidateSuite) TestNoShortCircuit() {
	schema := Schema{
		{Name: "login", Kind: Text, Required: true, Nullable: true},
		{Name: "token", Kind: Text, Required: true, Nullable: true},
		{Name: "method", Kind: Text, Required: true},
	}
	res := schema.Validate(map[string]any{"method": 7.0}, s.now)
	s.Len(res.Errors, 3)
	s.Equal("login is required", res.Errors["login"])
	s.Equal("token is required", res.Errors["token"])
	s.Equal("method must be a string", res.Errors["method"])
}

func (s *ValidateSuite) TestCleanedAndErrorsPartition() {
	schema := Schema{
		{Name: "first_name", Kind: Text, Nullable: true},
		{Name: "gender", Kind: Gender, Nullable: true},
	}
	res := schema.Validate(map[string]any{"first_name": "Ivan", "gender": 5.0}, s.now)
	for _, f := range schema {
		_, cleaned := res.CleanedData[f.Name]
		_, failed := res.Errors[f.Name]
		s.NotEqual(cleaned, failed, "field %s must land in exactly one map", f.Name)
	}
}

func (s *ValidateSuite) TestUnknownKeysIgnored() {
	schema := Schema{{Name: "login", Kind: Text, Required: true, Nullable: true}}
	res := schema.Validate(map[string]any{"login": "x", "extra": 1.0}, s.now)
	s.True(res.IsValid())
	_, ok := res.CleanedData["extra"]
	s.False(ok)
}

func (s *ValidateSuite) TestTextAndArguments() {
	schema := Schema{
		{Name: "method", Kind: Text, Required: true},
		{Name: "arguments", Kind: Arguments, Required: true, Nullable: true},
	}

	s.Run("valid", func() {
		res := schema.Validate(map[string]any{
			"method":    "online_score",
			"arguments": map[string]any{"phone": "79175002040"},
		}, s.now)
		s.True(res.IsValid())
	})

	s.Run("non-string method", func() {
		res := schema.Validate(map[string]any{"method": 1.0, "arguments": map[string]any{}}, s.now)
		s.Equal("method must be a string", res.Errors["method"])
	})

	s.Run("non-object arguments", func() {
		res := schema.Validate(map[string]any{"method": "x", "arguments": []any{1.0}}, s.now)
		s.Equal("arguments must be an object", res.Errors["arguments"])
	})
}

func (s *ValidateSuite) TestEmail() {
	schema := Schema{{Name: "email", Kind: Email, Nullable: true}}

	for _, email := range []string{"ivan@otus.ru", "a.b+c_d-e@sub.domain.org"} {
		res := schema.Validate(map[string]any{"email": email}, s.now)
		s.True(res.IsValid(), email)
	}
	for _, email := range []string{"not-an-email", "a@b", "a@b.c", "@otus.ru", "ivan@.ru"} {
		res := schema.Validate(map[string]any{"email": email}, s.now)
		s.Equal("invalid email format", res.Errors["email"], email)
	}
}

func (s *ValidateSuite) TestPhone() {
	schema := Schema{{Name: "phone", Kind: Phone, Nullable: true}}

	s.Run("string phone", func() {
		res := schema.Validate(map[string]any{"phone": "79175002040"}, s.now)
		s.True(res.IsValid())
	})

	s.Run("numeric phone", func() {
		res := schema.Validate(map[string]any{"phone": 79175002040.0}, s.now)
		s.True(res.IsValid())
	})

	for name, phone := range map[string]any{
		"wrong prefix": "89175002040",
		"too short":    "7917500204",
		"too long":     "791750020400",
		"letters":      "7917500204x",
		"fractional":   79175002040.5,
		"unsupported":  true,
	} {
		res := schema.Validate(map[string]any{"phone": phone}, s.now)
		s.Equal("invalid phone number format", res.Errors["phone"], name)
	}
}

func (s *ValidateSuite) TestDate() {
	schema := Schema{{Name: "date", Kind: Date, Nullable: true}}

	res := schema.Validate(map[string]any{"date": "20.07.2017"}, s.now)
	s.True(res.IsValid())

	for _, date := range []string{"2017-07-20", "32.01.2017", "20.13.2017", "yesterday"} {
		res := schema.Validate(map[string]any{"date": date}, s.now)
		s.Equal("date must be in format DD.MM.YYYY", res.Errors["date"], date)
	}
}

func (s *ValidateSuite) TestBirthday() {
	schema := Schema{{Name: "birthday", Kind: Birthday, Nullable: true}}

	s.Run("recent birthday passes", func() {
		res := schema.Validate(map[string]any{"birthday": "01.01.1990"}, s.now)
		s.True(res.IsValid())
	})

	s.Run("older than 70x365 days fails", func() {
		res := schema.Validate(map[string]any{"birthday": "01.01.1950"}, s.now)
		s.Equal("birthday must be less than 70 years ago", res.Errors["birthday"])
	})

	s.Run("day-based bound, no leap-year correction", func() {
		// 70*365 days before s.now; calendar-year subtraction would place
		// the cutoff differently because of leap days.
		exact := s.now.Add(-70 * 365 * 24 * time.Hour)
		res := schema.Validate(map[string]any{"birthday": exact.Format(DateLayout)}, s.now)
		s.True(res.IsValid())

		over := exact.AddDate(0, 0, -1)
		res = schema.Validate(map[string]any{"birthday": over.Format(DateLayout)}, s.now)
		s.Equal("birthday must be less than 70 years ago", res.Errors["birthday"])
	})

	s.Run("bad format", func() {
		res := schema.Validate(map[string]any{"birthday": "1990/01/01"}, s.now)
		s.Equal("birthday must be in format DD.MM.YYYY", res.Errors["birthday"])
	})
}

func (s *ValidateSuite) TestGender() {
	schema := Schema{{Name: "gender", Kind: Gender, Nullable: true}}

	for _, g := range []float64{0, 1, 2} {
		res := schema.Validate(map[string]any{"gender": g}, s.now)
		s.True(res.IsValid(), g)
	}
	for name, g := range map[string]any{
		"out of range": 3.0,
		"negative":     -1.0,
		"fractional":   1.5,
		"string":       "male",
	} {
		res := schema.Validate(map[string]any{"gender": g}, s.now)
		s.Equal("gender must be 0, 1 or 2", res.Errors["gender"], name)
	}
}

func (s *ValidateSuite) TestClientIDs() {
	schema := Schema{{Name: "client_ids", Kind: ClientIDs, Required: true}}

	s.Run("valid list", func() {
		res := schema.Validate(map[string]any{"client_ids": []any{1.0, 2.0, 3.0}}, s.now)
		s.True(res.IsValid())
	})

	s.Run("empty list fails as non-nullable", func() {
		res := schema.Validate(map[string]any{"client_ids": []any{}}, s.now)
		s.Equal("client_ids cannot be empty", res.Errors["client_ids"])
	})

	for name, ids := range map[string]any{
		"not a list":       "1,2,3",
		"string element":   []any{1.0, "2"},
		"fraction element": []any{1.5},
	} {
		res := schema.Validate(map[string]any{"client_ids": ids}, s.now)
		s.Equal("client_ids must be a list of integers", res.Errors["client_ids"], name)
	}
}

func (s *ValidateSuite) TestStringify() {
	got, ok := Stringify(79175002040.0)
	s.True(ok)
	s.Equal("79175002040", got)

	got, ok = Stringify("x")
	s.True(ok)
	s.Equal("x", got)

	_, ok = Stringify(1.5)
	s.False(ok)

	_, ok = Stringify(true)
	s.False(ok)
}
