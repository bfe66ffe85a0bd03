package identity_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/authapp/identity/internal/identity/http"
	"github.com/authapp/identity/internal/identity/service"
	"github.com/authapp/identity/internal/identity/store/drivers/sqlite"
	"github.com/authapp/identity/pkg/cryptox"
	"github.com/authapp/identity/pkg/identitysdk"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
	userEmail     = "user@example.com"
	userPassword  = "user123"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "identity-e2e")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// setupServer runs the full HTTP stack over an in-memory database, seeded
// with the default accounts, and returns its base URL.
func setupServer(t *testing.T) string {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	boot := &service.BootstrapService{Store: st}
	require.NoError(t, boot.Seed(context.Background()))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	router := httpapi.NewRouter("test", st, logger, []string{"*"})
	router.AuthService = service.NewAuthService(st, time.Hour)
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

// adminClient returns a client already logged in as the seeded admin.
func adminClient(t *testing.T, baseURL string) *identitysdk.Client {
	t.Helper()

	client := identitysdk.NewClient(baseURL)
	res, err := client.Login(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.True(t, res.Success)
	return client
}
