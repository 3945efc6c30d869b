package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/notify"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/revocation"
	"github.com/comitanigiacomo/kanso-habits/internal/client"
	"github.com/comitanigiacomo/kanso-habits/internal/core/reminders"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

func startServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewInMemoryUserRepository()
	habits := repository.NewInMemoryHabitRepository()
	checkIns := repository.NewInMemoryCheckInRepository()
	tokens := services.NewTokenService("cli-test-secret", "kanso-test", time.Hour, users, revocation.NewMemoryStore())
	scheduler := reminders.NewScheduler(notify.NewLogNotifier(zerolog.Nop()), 10)

	annotations := adapterHTTP.NewAnnotationHandler(
		services.NewNoteService(repository.NewInMemoryNoteRepository(), habits),
		services.NewDistractionService(repository.NewInMemoryNoteRepository(), habits),
		services.NewPomodoroService(repository.NewInMemoryPomodoroRepository(), habits),
	)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:         adapterHTTP.NewAuthHandler(services.NewAuthService(users, tokens, services.FederatedConfig{}, scheduler)),
		HabitHandler:        adapterHTTP.NewHabitHandler(services.NewHabitService(habits, scheduler)),
		CheckInHandler:      adapterHTTP.NewCheckInHandler(services.NewCheckInService(checkIns, habits)),
		StatsHandler:        adapterHTTP.NewStatsHandler(services.NewStatsService(habits, checkIns)),
		CategoryHandler:     adapterHTTP.NewCategoryHandler(services.NewCategoryService(repository.NewInMemoryCategoryRepository())),
		AnnotationHandler:   annotations,
		NotificationHandler: adapterHTTP.NewNotificationHandler(scheduler),
		TokenValidator:      tokens,
		StartTime:           time.Now(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, tokenPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, tokenPath)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHabitctl_Workflow(t *testing.T) {
	url := startServer(t)
	tokenPath := filepath.Join(t.TempDir(), ".kanso", "token")

	_, err := run(t, tokenPath, "--api", url, "habits", "list")
	require.ErrorIs(t, err, client.ErrNotAuthenticated)

	out, err := run(t, tokenPath, "--api", url, "register", "-e", "cli@kanso.app", "-p", "LongEnough1")
	require.NoError(t, err)
	assert.Contains(t, out, "registered cli@kanso.app")

	out, err = run(t, tokenPath, "--api", url, "login", "-e", "cli@kanso.app", "-p", "LongEnough1")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as cli@kanso.app")
	assert.FileExists(t, tokenPath)

	out, err = run(t, tokenPath, "--api", url, "habits", "create", "Meditate", "--days", "1,3,5", "-c", "mind")
	require.NoError(t, err)
	match := regexp.MustCompile(`\(([0-9a-f-]{36})\)`).FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	habitID := match[1]

	out, err = run(t, tokenPath, "--api", url, "habits", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Meditate")
	assert.Contains(t, out, "Mon,Wed,Fri")

	_, err = run(t, tokenPath, "--api", url, "checkin", habitID, "--date", "2025-02-03")
	require.NoError(t, err)
	_, err = run(t, tokenPath, "--api", url, "checkin", habitID, "--date", "2025-02-05", "--undone")
	require.NoError(t, err)

	out, err = run(t, tokenPath, "--api", url, "checkins", habitID)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03 done\n2025-02-05 missed\n", out)

	out, err = run(t, tokenPath, "--api", url, "stats", habitID)
	require.NoError(t, err)
	assert.Contains(t, out, "50%")

	_, err = run(t, tokenPath, "--api", url, "logout")
	require.NoError(t, err)
	assert.NoFileExists(t, tokenPath)
}

func TestTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")

	_, err := loadToken(path)
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)

	require.NoError(t, saveToken(path, savedLogin{Token: "tok", UserID: "u1", Email: "a@kanso.app"}))
	saved, err := loadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.UserID)

	require.NoError(t, removeToken(path))
	require.NoError(t, removeToken(path), "removing twice is fine")
}
