package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDB struct{ err error }

func (f fakeDB) Ping(context.Context) error { return f.err }

type fakeMQ struct{ err error }

func (f fakeMQ) Ping() error { return f.err }

func getHealth(h http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		db     fakeDB
		mq     mqPinger
		status int
		body   string
	}{
		{"all up", fakeDB{}, fakeMQ{}, http.StatusOK, `"queue":"ok"`},
		{"no broker configured", fakeDB{}, nil, http.StatusOK, `"queue":"disabled"`},
		{"database down", fakeDB{err: errors.New("refused")}, fakeMQ{}, http.StatusServiceUnavailable, "database unreachable"},
		{"broker closed", fakeDB{}, fakeMQ{err: errors.New("rabbitmq connection is closed")}, http.StatusServiceUnavailable, "rabbitmq unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := getHealth(healthHandler(tt.db, tt.mq))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}
