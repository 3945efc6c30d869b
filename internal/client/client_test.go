package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const testToken = "valid-token"

// fakeAPI is a minimal in-memory stand-in for the HTTP API.
type fakeAPI struct {
	mu       sync.Mutex
	habits   []domain.Habit
	checkIns map[string]domain.CheckIn // key: habitID|date
	fail     bool
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{checkIns: make(map[string]domain.CheckIn)}

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				return
			}
			f.mu.Lock()
			fail := f.fail
			f.mu.Unlock()
			if fail {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "CorrectHorse1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, AuthResult{Token: testToken, User: User{ID: "u1", Email: creds.Email}})
	})
	mux.HandleFunc("GET /api/v1/habits", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.habits)
	}))
	mux.HandleFunc("POST /api/v1/habits", authed(func(w http.ResponseWriter, r *http.Request) {
		var in HabitInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "habit name cannot be empty"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		h := domain.Habit{
			ID:        "h" + string(rune('0'+len(f.habits))),
			UserID:    "u1",
			Name:      in.Name,
			IsActive:  true,
			CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(len(f.habits)) * time.Hour),
		}
		// The API lists habits oldest first.
		f.habits = append(f.habits, h)
		writeJSON(w, http.StatusCreated, h)
	}))
	mux.HandleFunc("DELETE /api/v1/habits/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, h := range f.habits {
			if h.ID == r.PathValue("id") {
				f.habits = append(f.habits[:i], f.habits[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "habit not found"})
	}))
	mux.HandleFunc("PUT /api/v1/habits/{id}/checkins", authed(func(w http.ResponseWriter, r *http.Request) {
		var in CheckInInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		habitID := r.PathValue("id")

		f.mu.Lock()
		defer f.mu.Unlock()
		key := habitID + "|" + in.Date
		ci, ok := f.checkIns[key]
		if !ok {
			ci = domain.CheckIn{ID: "c-" + key, HabitID: habitID, UserID: "u1", Date: in.Date}
		}
		ci.Completed = in.Completed
		ci.Timestamp = time.Now().UTC()
		f.checkIns[key] = ci
		writeJSON(w, http.StatusOK, ci)
	}))
	mux.HandleFunc("GET /api/v1/habits/{id}/checkins", authed(func(w http.ResponseWriter, r *http.Request) {
		habitID := r.PathValue("id")
		from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")

		f.mu.Lock()
		defer f.mu.Unlock()
		out := []domain.CheckIn{}
		for _, ci := range f.checkIns {
			if ci.HabitID != habitID {
				continue
			}
			if from != "" && (ci.Date < from || ci.Date > to) {
				continue
			}
			out = append(out, ci)
		}
		writeJSON(w, http.StatusOK, out)
	}))
	mux.HandleFunc("GET /api/v1/habits/{id}/checkins/{date}", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		ci, ok := f.checkIns[r.PathValue("id")+"|"+r.PathValue("date")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "check-in not found"})
			return
		}
		writeJSON(w, http.StatusOK, ci)
	}))
	mux.HandleFunc("DELETE /api/v1/checkins/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for key, ci := range f.checkIns {
			if ci.ID == r.PathValue("id") {
				delete(f.checkIns, key)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "check-in not found"})
	}))
	mux.HandleFunc("GET /api/v1/categories", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Category{{ID: "cat1", UserID: "u1", Name: "Health"}})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) setFailing(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func TestClient_Login(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL)

	res, err := c.Login(context.Background(), Credentials{Email: "a@kanso.app", Password: "CorrectHorse1"})
	require.NoError(t, err)
	assert.Equal(t, testToken, res.Token)
	assert.Equal(t, "u1", res.User.ID)

	_, err = c.Login(context.Background(), Credentials{Email: "a@kanso.app", Password: "nope"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid email or password", apiErr.Message)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClient_LookupCheckInAbsentIsNil(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL).WithToken(testToken)

	ci, err := c.LookupCheckIn(context.Background(), "h1", "2025-01-01")
	require.NoError(t, err)
	assert.Nil(t, ci)

	_, err = c.UpsertCheckIn(context.Background(), "h1", CheckInInput{Date: "2025-01-01", Completed: true})
	require.NoError(t, err)

	ci, err = c.LookupCheckIn(context.Background(), "h1", "2025-01-01")
	require.NoError(t, err)
	require.NotNil(t, ci)
	assert.True(t, ci.Completed)
}

func TestClient_NotFoundMapsToSentinel(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL).WithToken(testToken)

	err := c.DeleteHabit(context.Background(), "missing")

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_TransportError(t *testing.T) {
	c := New("http://127.0.0.1:1").WithToken(testToken)

	_, err := c.ListHabits(context.Background(), "")

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
