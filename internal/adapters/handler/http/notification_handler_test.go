package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/reminders"
)

func TestNotificationEndpoints(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.newUser(t, "inbox@kanso.app")

	w := api.do(http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]reminders.Notification](t, w))

	tests := []struct {
		query    string
		wantCode int
	}{
		{"", http.StatusNoContent},
		{"?max_age_minutes=30", http.StatusNoContent},
		{"?max_age_minutes=0", http.StatusNoContent},
		{"?max_age_minutes=-1", http.StatusBadRequest},
		{"?max_age_minutes=soon", http.StatusBadRequest},
		{"?max_age_minutes=200000000", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run("clear"+tt.query, func(t *testing.T) {
			w := api.do(http.MethodDelete, "/api/v1/notifications"+tt.query, token, nil)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestNotificationEndpoints_ClearKeepsOtherUsersHistory(t *testing.T) {
	api := newTestAPI(t)
	api.scheduler.Start(t.Context())

	aliceID, aliceToken := api.newUser(t, "alice@kanso.app")
	bobID, bobToken := api.newUser(t, "bob@kanso.app")

	at := time.Now().Add(20 * time.Millisecond)
	require.True(t, api.scheduler.ScheduleReminder(aliceID, "Read", "h-alice", at, 0))
	require.True(t, api.scheduler.ScheduleReminder(bobID, "Run", "h-bob", at, 0))
	require.Eventually(t, func() bool {
		return len(api.scheduler.Notifications(aliceID)) == 1 && len(api.scheduler.Notifications(bobID)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	w := api.do(http.MethodDelete, "/api/v1/notifications?max_age_minutes=0", aliceToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]reminders.Notification](t, w))

	w = api.do(http.MethodGet, "/api/v1/notifications", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]reminders.Notification](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "h-bob", got[0].HabitID)
}
