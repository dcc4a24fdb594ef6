package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/shelfmark/internal/domain"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

// tokenTable authenticates the bearer tokens it knows.
type tokenTable map[string]*domain.Principal

func (t tokenTable) Authenticate(token string) (*domain.Principal, error) {
	if p, ok := t[token]; ok {
		return p, nil
	}
	return nil, customError.WrapUnauthorized("Invalid or expired token")
}

var (
	userA = &domain.Principal{UserID: uuid.New(), Email: "a@example.com", Name: "A"}
	userB = &domain.Principal{UserID: uuid.New(), Email: "b@example.com", Name: "B"}
)

func testTokens() tokenTable {
	return tokenTable{"token-a": userA, "token-b": userB}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}
