package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profiles-feed-be/internal/config"
	"profiles-feed-be/internal/models"
	"profiles-feed-be/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPassword = "testpass123"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		FrontendURL:       "http://feed.test",
		MinPasswordLength: 5,
	}
	store := repository.NewMemoryStore()
	return NewRouter(cfg, Repositories{Users: store.Users(), Tokens: store.Tokens(), Feed: store.Feed()}, nil)
}

func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// signupAndLogin creates a user and returns its token and id.
func signupAndLogin(t *testing.T, router http.Handler, email string) (string, string) {
	t.Helper()

	w := do(t, router, http.MethodPost, "/users/create", "", gin.H{
		"email":    email,
		"password": testPassword,
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[models.UserResponse](t, w)

	w = do(t, router, http.MethodPost, "/users/token", "", gin.H{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[models.TokenResponse](t, w)

	return token.Token, user.ID
}

func createItem(t *testing.T, router http.Handler, token, description string) models.FeedItemResponse {
	t.Helper()
	w := do(t, router, http.MethodPost, "/feed/items", token, gin.H{"description": description})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.FeedItemResponse](t, w)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProtectedEndpointsRequireAuthentication(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router, "owner@example.com")
	item := createItem(t, router, token, "secret")
	itemPath := fmt.Sprintf("/feed/items/%d", item.ID)

	endpoints := []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodPut, "/users/me"},
		{http.MethodPatch, "/users/me"},
		{http.MethodGet, "/feed/items"},
		{http.MethodPost, "/feed/items"},
		{http.MethodGet, itemPath},
		{http.MethodPut, itemPath},
		{http.MethodPatch, itemPath},
		{http.MethodDelete, itemPath},
		{http.MethodGet, itemPath + "/qrcode"},
	}

	for _, ep := range endpoints {
		for _, bad := range []string{"", "0000000000000000000000000000000000000000", "not-a-token"} {
			t.Run(fmt.Sprintf("%s %s token=%q", ep.method, ep.path, bad), func(t *testing.T) {
				w := do(t, router, ep.method, ep.path, bad, gin.H{"description": "x"})

				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.Equal(t, "Token", w.Header().Get("WWW-Authenticate"))
				assert.NotContains(t, w.Body.String(), "secret")
				assert.NotContains(t, w.Body.String(), "owner@example.com")
			})
		}
	}

	// Nothing was created or deleted by the rejected calls.
	w := do(t, router, http.MethodGet, "/feed/items", token, nil)
	items := decode[[]models.FeedItemResponse](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "secret", items[0].Description)
}

func TestCreateUser(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/users/create", "", gin.H{
		"email":    "a@x.com",
		"password": testPassword,
		"name":     "A",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode[map[string]any](t, w)
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "A", body["name"])
	assert.NotEmpty(t, body["id"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, w.Body.String(), testPassword)

	tests := []struct {
		name string
		body any
	}{
		{name: "duplicate email", body: gin.H{"email": "a@x.com", "password": testPassword, "name": "Again"}},
		{name: "invalid email", body: gin.H{"email": "not-an-email", "password": testPassword, "name": "B"}},
		{name: "short password", body: gin.H{"email": "b@x.com", "password": "pw", "name": "B"}},
		{name: "missing name", body: gin.H{"email": "b@x.com", "password": testPassword}},
		{name: "malformed json", body: `{"email":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/users/create", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestCreateToken(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router, "a@x.com")

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{name: "valid", body: gin.H{"email": "a@x.com", "password": testPassword}, wantStatus: http.StatusOK},
		{name: "wrong password", body: gin.H{"email": "a@x.com", "password": "wrong"}, wantStatus: http.StatusUnauthorized},
		{name: "unknown user", body: gin.H{"email": "z@x.com", "password": testPassword}, wantStatus: http.StatusUnauthorized},
		{name: "missing password", body: gin.H{"email": "a@x.com"}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/users/token", "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Len(t, decode[models.TokenResponse](t, w).Token, 40)
			}
		})
	}
}

func TestBearerSchemeIsAccepted(t *testing.T) {
	router := newTestRouter(t)
	token, userID := signupAndLogin(t, router, "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, decode[models.UserResponse](t, w).ID)
}

func TestManageSelf(t *testing.T) {
	router := newTestRouter(t)
	token, userID := signupAndLogin(t, router, "me@x.com")
	signupAndLogin(t, router, "other@x.com")

	w := do(t, router, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.UserResponse{ID: userID, Email: "me@x.com", Name: "Test User"}, decode[models.UserResponse](t, w))

	w = do(t, router, http.MethodPatch, "/users/me", token, gin.H{"name": "Renamed", "id": "forged"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.UserResponse{ID: userID, Email: "me@x.com", Name: "Renamed"}, decode[models.UserResponse](t, w))

	w = do(t, router, http.MethodPatch, "/users/me", token, gin.H{"email": "other@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPut, "/users/me", token, gin.H{"name": "Only name"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "PUT requires every writable field")

	w = do(t, router, http.MethodPut, "/users/me", token, gin.H{
		"email":    "moved@x.com",
		"password": "newpass123",
		"name":     "Moved",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "newpass123")

	w = do(t, router, http.MethodPost, "/users/token", "", gin.H{"email": "moved@x.com", "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "old password must stop working")
	w = do(t, router, http.MethodPost, "/users/token", "", gin.H{"email": "moved@x.com", "password": "newpass123"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Existing tokens survive a profile update.
	w = do(t, router, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "moved@x.com", decode[models.UserResponse](t, w).Email)

	w = do(t, router, http.MethodPatch, "/users/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, "empty PATCH is a no-op")
}

func TestListFeedNewestFirst(t *testing.T) {
	router := newTestRouter(t)
	tokenA, userA := signupAndLogin(t, router, "a@x.com")

	createItem(t, router, tokenA, "first")
	createItem(t, router, tokenA, "second")

	w := do(t, router, http.MethodGet, "/feed/items", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]models.FeedItemResponse](t, w)

	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Description)
	assert.Equal(t, "first", items[1].Description)
	assert.Greater(t, items[0].ID, items[1].ID)
	for _, item := range items {
		assert.Equal(t, userA, item.Owner)
	}
}

func TestListFeedEmptyIsArray(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router, "a@x.com")

	w := do(t, router, http.MethodGet, "/feed/items", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFeedIsLimitedToOwner(t *testing.T) {
	router := newTestRouter(t)
	tokenA, userA := signupAndLogin(t, router, "a@x.com")
	tokenB, _ := signupAndLogin(t, router, "b@x.com")

	itemA := createItem(t, router, tokenA, "a's item")
	createItem(t, router, tokenB, "b's item")
	path := fmt.Sprintf("/feed/items/%d", itemA.ID)

	w := do(t, router, http.MethodGet, "/feed/items", tokenB, nil)
	itemsB := decode[[]models.FeedItemResponse](t, w)
	require.Len(t, itemsB, 1)
	assert.Equal(t, "b's item", itemsB[0].Description)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		w := do(t, router, method, path, tokenB, gin.H{"description": "taken over"})
		assert.Equal(t, http.StatusNotFound, w.Code, method)
		assert.NotContains(t, w.Body.String(), "a's item")
	}
	w = do(t, router, http.MethodGet, path+"/qrcode", tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Same response as for an id that never existed.
	missing := do(t, router, http.MethodGet, "/feed/items/999999", tokenB, nil)
	notOwned := do(t, router, http.MethodGet, path, tokenB, nil)
	assert.Equal(t, missing.Code, notOwned.Code)
	assert.Equal(t, missing.Body.String(), notOwned.Body.String())

	w = do(t, router, http.MethodGet, path, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.FeedItemResponse](t, w)
	assert.Equal(t, "a's item", got.Description)
	assert.Equal(t, userA, got.Owner)
}

func TestCreateFeedItemForcesOwner(t *testing.T) {
	router := newTestRouter(t)
	tokenA, userA := signupAndLogin(t, router, "a@x.com")
	_, userB := signupAndLogin(t, router, "b@x.com")

	w := do(t, router, http.MethodPost, "/feed/items", tokenA, gin.H{
		"description": "hello",
		"owner":       userB,
		"user":        userB,
		"id":          424242,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[models.FeedItemResponse](t, w)

	assert.Equal(t, userA, item.Owner)
	assert.NotEqual(t, int64(424242), item.ID)
}

func TestCreateFeedItemValidation(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router, "a@x.com")

	for _, body := range []any{gin.H{}, gin.H{"description": ""}, gin.H{"description": "   "}, `not json`} {
		w := do(t, router, http.MethodPost, "/feed/items", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}
}

func TestUpdateFeedItemIgnoresOwner(t *testing.T) {
	router := newTestRouter(t)
	tokenA, userA := signupAndLogin(t, router, "a@x.com")
	tokenB, userB := signupAndLogin(t, router, "b@x.com")
	item := createItem(t, router, tokenA, "original")
	path := fmt.Sprintf("/feed/items/%d", item.ID)

	w := do(t, router, http.MethodPatch, path, tokenA, gin.H{"owner": userB, "user": userB})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, userA, decode[models.FeedItemResponse](t, w).Owner)

	w = do(t, router, http.MethodPatch, path, tokenA, gin.H{"description": "patched", "owner": userB})
	require.Equal(t, http.StatusOK, w.Code)
	patched := decode[models.FeedItemResponse](t, w)
	assert.Equal(t, "patched", patched.Description)
	assert.Equal(t, userA, patched.Owner)

	w = do(t, router, http.MethodPut, path, tokenA, gin.H{"description": "replaced", "owner": userB})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, path, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	refetched := decode[models.FeedItemResponse](t, w)
	assert.Equal(t, "replaced", refetched.Description)
	assert.Equal(t, userA, refetched.Owner)

	w = do(t, router, http.MethodGet, "/feed/items", tokenB, nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, router, http.MethodPut, path, tokenA, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "PUT requires a description")
	w = do(t, router, http.MethodPatch, path, tokenA, gin.H{"description": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteFeedItem(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router, "a@x.com")
	keep := createItem(t, router, token, "keep")
	drop := createItem(t, router, token, "drop")
	path := fmt.Sprintf("/feed/items/%d", drop.ID)

	w := do(t, router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, router, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "second delete must not succeed")

	w = do(t, router, http.MethodGet, "/feed/items", token, nil)
	items := decode[[]models.FeedItemResponse](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
}

func TestFeedItemIDMustBeNumeric(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router, "a@x.com")

	for _, id := range []string{"abc", "0", "-1", "1.5", "99999999999999999999"} {
		w := do(t, router, http.MethodGet, "/feed/items/"+id, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, id)
	}
}

func TestFeedItemQRCode(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router, "a@x.com")
	item := createItem(t, router, token, "share me")

	w := do(t, router, http.MethodGet, fmt.Sprintf("/feed/items/%d/qrcode", item.ID), token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}
