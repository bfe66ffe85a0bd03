package identity_test

import (
	"net/http"
	"testing"

	"github.com/authapp/identity/pkg/identitysdk"
	"github.com/stretchr/testify/require"
)

func TestUsersRequireAdminSession(t *testing.T) {
	baseURL := setupServer(t)

	t.Run("no session gets 401", func(t *testing.T) {
		client := identitysdk.NewClient(baseURL)
		_, err := client.ListUsers(t.Context())
		var apiErr *identitysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("plain user gets 403", func(t *testing.T) {
		client := identitysdk.NewClient(baseURL)
		res, err := client.Login(t.Context(), userEmail, userPassword)
		require.NoError(t, err)
		require.True(t, res.Success)

		_, err = client.ListUsers(t.Context())
		var apiErr *identitysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})
}

func TestUsersCRUD(t *testing.T) {
	baseURL := setupServer(t)
	admin := adminClient(t, baseURL)
	ctx := t.Context()

	var createdID string

	t.Run("create", func(t *testing.T) {
		u, err := admin.CreateUser(ctx, identitysdk.CreateUserRequest{
			Email:    "new@example.com",
			Password: "new-user-pass",
		})
		require.NoError(t, err)
		require.NotEmpty(t, u.ID)
		require.Equal(t, []string{"USER"}, u.Roles)
		require.True(t, u.Enabled)
		createdID = u.ID
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := admin.CreateUser(ctx, identitysdk.CreateUserRequest{
			Email:    "new@example.com",
			Password: "whatever-pass",
		})
		var apiErr *identitysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
		require.Equal(t, "conflict", apiErr.Body.Error)
	})

	t.Run("get", func(t *testing.T) {
		u, err := admin.GetUser(ctx, createdID)
		require.NoError(t, err)
		require.Equal(t, "new@example.com", u.Email)
	})

	t.Run("list and stats", func(t *testing.T) {
		list, err := admin.ListUsers(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, list.Count)

		stats, err := admin.Stats(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 3, stats.TotalUsers)
		require.EqualValues(t, 1, stats.AdminUsers)
		require.EqualValues(t, 2, stats.PlainUsers)
	})

	t.Run("exists and search", func(t *testing.T) {
		exists, err := admin.EmailExists(ctx, "new@example.com")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = admin.EmailExists(ctx, "ghost@example.com")
		require.NoError(t, err)
		require.False(t, exists)

		found, err := admin.SearchUsers(ctx, "NEW")
		require.NoError(t, err)
		require.Equal(t, 1, found.Count)
	})

	t.Run("update flags and roles", func(t *testing.T) {
		locked := false
		u, err := admin.UpdateUser(ctx, createdID, identitysdk.UpdateUserRequest{
			Roles:            []string{"ADMIN", "USER"},
			AccountNonLocked: &locked,
		})
		require.NoError(t, err)
		require.False(t, u.AccountNonLocked)
		require.ElementsMatch(t, []string{"ADMIN", "USER"}, u.Roles)

		// A locked account cannot log in.
		client := identitysdk.NewClient(baseURL)
		res, err := client.Login(ctx, "new@example.com", "new-user-pass")
		require.NoError(t, err)
		require.False(t, res.Success)
		require.Equal(t, "Account is locked", res.Message)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, admin.DeleteUser(ctx, createdID))

		_, err := admin.GetUser(ctx, createdID)
		var apiErr *identitysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)

		// Deleting again reports not found.
		err = admin.DeleteUser(ctx, createdID)
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}
