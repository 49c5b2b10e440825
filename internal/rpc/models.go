package rpc

import (
	"time"

	"scoregate/internal/scoring"
	"scoregate/internal/validate"
)

// AdminLogin is the login that selects the admin authentication branch and
// the fixed-score path. Exact, case-sensitive match.
const AdminLogin = "admin"

// Gender values accepted by the score argument schema.
const (
	GenderUnknown = 0
	GenderMale    = 1
	GenderFemale  = 2
)

// Method names routed by the dispatcher.
const (
	MethodOnlineScore      = "online_score"
	MethodClientsInterests = "clients_interests"
)

// Response codes mirror HTTP status codes; the same value is used both as
// the HTTP status and inside the response envelope.
const (
	StatusOK             = 200
	StatusBadRequest     = 400
	StatusForbidden      = 403
	StatusNotFound       = 404
	StatusInvalidRequest = 422
	StatusInternalError  = 500
)

// StatusText maps failure codes to their canonical messages.
var StatusText = map[int]string{
	StatusBadRequest:     "Bad Request",
	StatusForbidden:      "Forbidden",
	StatusNotFound:       "Not Found",
	StatusInvalidRequest: "Invalid Request",
	StatusInternalError:  "Internal Server Error",
}

// The schema tables are built once at startup and iterated directly; there
// is no runtime discovery of fields.
var (
	envelopeSchema = validate.Schema{
		{Name: "account", Kind: validate.Text, Nullable: true},
		{Name: "login", Kind: validate.Text, Required: true, Nullable: true},
		{Name: "token", Kind: validate.Text, Required: true, Nullable: true},
		{Name: "arguments", Kind: validate.Arguments, Required: true, Nullable: true},
		{Name: "method", Kind: validate.Text, Required: true},
	}

	scoreSchema = validate.Schema{
		{Name: "first_name", Kind: validate.Text, Nullable: true},
		{Name: "last_name", Kind: validate.Text, Nullable: true},
		{Name: "email", Kind: validate.Email, Nullable: true},
		{Name: "phone", Kind: validate.Phone, Nullable: true},
		{Name: "birthday", Kind: validate.Birthday, Nullable: true},
		{Name: "gender", Kind: validate.Gender, Nullable: true},
	}

	interestsSchema = validate.Schema{
		{Name: "client_ids", Kind: validate.ClientIDs, Required: true},
		{Name: "date", Kind: validate.Date, Nullable: true},
	}
)

// Envelope is the validated outer request: account, login, token, method
// and the method-specific arguments object.
type Envelope struct {
	validate.Result
}

// NewEnvelope validates a raw JSON body against the envelope schema.
func NewEnvelope(body map[string]any, now time.Time) *Envelope {
	return &Envelope{Result: envelopeSchema.Validate(body, now)}
}

func (e *Envelope) stringField(name string) string {
	s, _ := e.CleanedData[name].(string)
	return s
}

// Account returns the cleaned account, empty string when absent.
func (e *Envelope) Account() string { return e.stringField("account") }

func (e *Envelope) Login() string  { return e.stringField("login") }
func (e *Envelope) Token() string  { return e.stringField("token") }
func (e *Envelope) Method() string { return e.stringField("method") }

// Arguments returns the cleaned arguments object, nil when it was null.
func (e *Envelope) Arguments() map[string]any {
	m, _ := e.CleanedData["arguments"].(map[string]any)
	return m
}

// IsAdmin reports whether the caller authenticated under the admin login.
func (e *Envelope) IsAdmin() bool { return e.Login() == AdminLogin }

// ScoreArgs is the validated argument set for online_score. All fields are
// optional; eligibility is gated by HasValidPair instead.
type ScoreArgs struct {
	validate.Result
}

// NewScoreArgs validates the arguments object against the score schema.
func NewScoreArgs(args map[string]any, now time.Time) *ScoreArgs {
	return &ScoreArgs{Result: scoreSchema.Validate(args, now)}
}

// HasValidPair reports whether at least one attribute pair is fully
// present: phone+email, first+last name, or gender+birthday. Empty strings
// do not count as present; gender 0 does.
func (a *ScoreArgs) HasValidPair() bool {
	phone := truthy(a.CleanedData["phone"])
	email := truthy(a.CleanedData["email"])
	first := truthy(a.CleanedData["first_name"])
	last := truthy(a.CleanedData["last_name"])
	gender := a.CleanedData["gender"] != nil
	birthday := truthy(a.CleanedData["birthday"])
	return (phone && email) || (first && last) || (gender && birthday)
}

// Provided lists, in schema order, the fields whose cleaned value was
// supplied non-null. Recorded into the request context for observability.
func (a *ScoreArgs) Provided() []string {
	var names []string
	for _, f := range scoreSchema {
		if a.CleanedData[f.Name] != nil {
			names = append(names, f.Name)
		}
	}
	return names
}

// Person converts the cleaned arguments into the scoring engine's input.
func (a *ScoreArgs) Person() scoring.Person {
	p := scoring.Person{
		FirstName: stringOr(a.CleanedData["first_name"]),
		LastName:  stringOr(a.CleanedData["last_name"]),
		Email:     stringOr(a.CleanedData["email"]),
		Birthday:  stringOr(a.CleanedData["birthday"]),
	}
	if v := a.CleanedData["phone"]; v != nil {
		p.Phone, _ = validate.Stringify(v)
	}
	if v := a.CleanedData["gender"]; v != nil {
		if g, ok := validate.Int(v); ok {
			p.Gender = &g
		}
	}
	return p
}

// InterestsArgs is the validated argument set for clients_interests.
type InterestsArgs struct {
	validate.Result
}

// NewInterestsArgs validates the arguments object against the interests schema.
func NewInterestsArgs(args map[string]any, now time.Time) *InterestsArgs {
	return &InterestsArgs{Result: interestsSchema.Validate(args, now)}
}

// ClientIDs returns the requested ids in input order, duplicates preserved.
func (a *InterestsArgs) ClientIDs() []int64 {
	list, _ := a.CleanedData["client_ids"].([]any)
	ids := make([]int64, 0, len(list))
	for _, el := range list {
		if id, ok := validate.Int64(el); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// truthy mirrors the presence rule used by pair checks and score weights:
// non-empty strings and non-zero numbers count, nil never does.
func truthy(value any) bool {
	switch v := value.(type) {
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}

func stringOr(value any) string {
	s, _ := value.(string)
	return s
}
