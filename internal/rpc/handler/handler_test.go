package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"scoregate/internal/rpc"
	"scoregate/internal/scoring"
	"scoregate/internal/scoring/store"
)

// HandlerSuite drives the full HTTP stack (router, middleware, handler,
// dispatcher, engine) against the in-memory store.
type HandlerSuite struct {
	suite.Suite
	store  *store.Memory
	router http.Handler
	now    time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.now = time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.store = store.NewMemory()
	engine, err := scoring.New(s.store, scoring.WithLogger(logger))
	s.Require().NoError(err)

	service, err := rpc.New(engine,
		rpc.Config{Salt: "Otus", AdminSalt: "42"},
		rpc.WithLogger(logger),
		rpc.WithClock(func() time.Time { return s.now }),
	)
	s.Require().NoError(err)

	h, err := New(service, WithLogger(logger))
	s.Require().NoError(err)

	s.router = NewRouter(h, nil, logger)
}

func (s *HandlerSuite) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/method", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) postJSON(body map[string]any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	return s.post(string(raw))
}

type envelope struct {
	Response json.RawMessage `json:"response"`
	Error    json.RawMessage `json:"error"`
	Code     int             `json:"code"`
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (s *HandlerSuite) TestMalformedBody() {
	rec := s.post(`{"login": `)
	s.Equal(http.StatusBadRequest, rec.Code)

	env := s.decode(rec)
	s.Equal(400, env.Code)
	s.JSONEq(`"Bad Request"`, string(env.Error))
}

func (s *HandlerSuite) TestUnknownRoute() {
	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
	env := s.decode(rec)
	s.Equal(404, env.Code)
	s.JSONEq(`"Not Found"`, string(env.Error))
}

func (s *HandlerSuite) TestWrongContentType() {
	req := httptest.NewRequest(http.MethodPost, "/method", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestForbidden() {
	rec := s.postJSON(map[string]any{
		"account":   "horns&hoofs",
		"login":     "h&f",
		"method":    "online_score",
		"token":     "sdd",
		"arguments": map[string]any{},
	})

	s.Equal(http.StatusForbidden, rec.Code)
	env := s.decode(rec)
	s.Equal(403, env.Code)
	s.JSONEq(`"Forbidden"`, string(env.Error))
}

func (s *HandlerSuite) TestOnlineScore() {
	rec := s.postJSON(map[string]any{
		"account": "horns&hoofs",
		"login":   "h&f",
		"method":  "online_score",
		"token":   rpc.UserDigest("horns&hoofs", "h&f", "Otus"),
		"arguments": map[string]any{
			"phone": "79175002040",
			"email": "ivan@otus.ru",
		},
	})

	s.Equal(http.StatusOK, rec.Code)
	env := s.decode(rec)
	s.Equal(200, env.Code)
	s.JSONEq(`{"score": 3}`, string(env.Response))
}

func (s *HandlerSuite) TestOnlineScoreMissingPair() {
	rec := s.postJSON(map[string]any{
		"account":   "horns&hoofs",
		"login":     "h&f",
		"method":    "online_score",
		"token":     rpc.UserDigest("horns&hoofs", "h&f", "Otus"),
		"arguments": map[string]any{"first_name": "Ivan"},
	})

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	env := s.decode(rec)
	s.Equal(422, env.Code)
}

func (s *HandlerSuite) TestAdminScore() {
	rec := s.postJSON(map[string]any{
		"login":  "admin",
		"method": "online_score",
		"token":  rpc.AdminDigest(s.now, "42"),
		"arguments": map[string]any{
			"phone": "79175002040",
			"email": "ivan@otus.ru",
		},
	})

	s.Equal(http.StatusOK, rec.Code)
	env := s.decode(rec)
	s.JSONEq(`{"score": 42}`, string(env.Response))
}

func (s *HandlerSuite) TestClientsInterests() {
	s.store.SeedInterests(1, []string{"sport", "travel"})
	s.store.SeedInterests(2, []string{"pets", "books"})

	rec := s.postJSON(map[string]any{
		"account": "horns&hoofs",
		"login":   "h&f",
		"method":  "clients_interests",
		"token":   rpc.UserDigest("horns&hoofs", "h&f", "Otus"),
		"arguments": map[string]any{
			"client_ids": []int{1, 2},
			"date":       "20.07.2017",
		},
	})

	s.Equal(http.StatusOK, rec.Code)
	env := s.decode(rec)
	s.JSONEq(`{"1": ["sport", "travel"], "2": ["pets", "books"]}`, string(env.Response))
}

func (s *HandlerSuite) TestClientsInterestsUnknownClient() {
	rec := s.postJSON(map[string]any{
		"account": "horns&hoofs",
		"login":   "h&f",
		"method":  "clients_interests",
		"token":   rpc.UserDigest("horns&hoofs", "h&f", "Otus"),
		"arguments": map[string]any{
			"client_ids": []int{3},
		},
	})

	s.Equal(http.StatusOK, rec.Code)
	env := s.decode(rec)
	s.JSONEq(`{"3": []}`, string(env.Response))
}

func (s *HandlerSuite) TestValidationErrorsReported() {
	rec := s.postJSON(map[string]any{
		"login":     "h&f",
		"method":    "online_score",
		"token":     rpc.UserDigest("", "h&f", "Otus"),
		"arguments": map[string]any{"phone": "123", "gender": 7},
	})

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	env := s.decode(rec)
	var errs map[string]string
	s.Require().NoError(json.Unmarshal(env.Error, &errs))
	s.Equal("invalid phone number format", errs["phone"])
	s.Equal("gender must be 0, 1 or 2", errs["gender"])
}

func (s *HandlerSuite) TestRequestIDEchoed() {
	req := httptest.NewRequest(http.MethodPost, "/method", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal("abc-123", rec.Header().Get("X-Request-ID"))
}
