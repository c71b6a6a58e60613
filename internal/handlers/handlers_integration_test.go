package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"wishwell/internal/handlers"
	"wishwell/internal/models"
	"wishwell/internal/repositories"
	"wishwell/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers/services. Each call gets its own database so tests stay isolated.
func setupApp() (*fiber.App, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Wishlist{}, &models.Wish{}, &models.Offer{})
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	wishlistRepo := repositories.NewGORMWishlistRepository(db)
	wishRepo := repositories.NewGORMWishRepository(db)
	offerRepo := repositories.NewGORMOfferRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	userService := services.NewUserService(userRepo, wishRepo, wishlistRepo, offerRepo)
	wishlistService := services.NewWishlistService(wishlistRepo)
	wishService := services.NewWishService(wishRepo, wishlistRepo, nil)
	offerService := services.NewOfferService(offerRepo, wishService, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService, authService).RegisterRoutes(apiV1)
	handlers.NewWishlistHandler(wishlistService, authService).RegisterRoutes(apiV1)
	handlers.NewWishHandler(wishService, authService).RegisterRoutes(apiV1)
	handlers.NewOfferHandler(offerService, authService).RegisterRoutes(apiV1)

	return app, nil
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && (raw[0] == '{') {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// registerAndLogin creates an account and returns its token and user id.
func registerAndLogin(t *testing.T, app *fiber.App, username, email string) (string, uint) {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	require.NotZero(t, id)
	return token, uint(id)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)

	registerBody := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", body["message"])

	// Signup defaults are applied and the password hash is never serialized
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "https://i.pravatar.cc/300", user["avatar"])
	assert.Equal(t, "Nothing to tell yet", user["about"])
	assert.NotContains(t, user, "password")

	// Duplicate email is a conflict
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	// Wrong password is rejected without leaking which field was wrong
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWishlistAndWishLifecycle(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token, _ := registerAndLogin(t, app, "owner", "owner@example.com")

	resp, wishlist := doJSON(t, app, http.MethodPost, "/api/v1/wishlists", token, map[string]string{
		"name": "Birthday",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	wishlistID := uint(wishlist["id"].(float64))

	resp, wish := doJSON(t, app, http.MethodPost, "/api/v1/wishes", token, map[string]interface{}{
		"name":        "Telescope",
		"price":       "100.00",
		"wishlist_id": wishlistID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	wishID := uint(wish["id"].(float64))

	// Unauthenticated reads work
	resp, fetched := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/wishes/%d", wishID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Telescope", fetched["name"])

	// Unauthenticated mutation does not
	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/wishes/%d", wishID), "", map[string]string{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Protected fields in the patch body are ignored, mutable ones applied
	resp, updated := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/wishes/%d", wishID), token, map[string]interface{}{
		"name":     "Dobsonian Telescope",
		"owner_id": 999,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dobsonian Telescope", updated["name"])
	assert.NotEqual(t, float64(999), updated["owner_id"])

	// An explicit raised fails the whole update
	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/wishes/%d", wishID), token, map[string]string{
		"raised": "500.00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/wishes/%d", wishID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/wishes/%d", wishID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOfferFlowAcrossUsers(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	ownerToken, _ := registerAndLogin(t, app, "owner", "owner@example.com")
	friendToken, _ := registerAndLogin(t, app, "friend", "friend@example.com")

	_, wishlist := doJSON(t, app, http.MethodPost, "/api/v1/wishlists", ownerToken, map[string]string{
		"name": "Birthday",
	})
	wishlistID := uint(wishlist["id"].(float64))

	_, wish := doJSON(t, app, http.MethodPost, "/api/v1/wishes", ownerToken, map[string]interface{}{
		"name":        "Telescope",
		"price":       "100.00",
		"wishlist_id": wishlistID,
	})
	wishID := uint(wish["id"].(float64))

	// The owner cannot pledge toward their own wish
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/offers", ownerToken, map[string]interface{}{
		"amount":  "10.00",
		"item_id": wishID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, offer := doJSON(t, app, http.MethodPost, "/api/v1/offers", friendToken, map[string]interface{}{
		"amount":  "30.00",
		"item_id": wishID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	offerID := uint(offer["id"].(float64))

	// The wish's raised total reflects the pledge
	resp, raised := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/wishes/%d/raised", wishID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := decimal.NewFromString(fmt.Sprintf("%v", raised["raised"]))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("30.00")), "got %s", got)

	// The price is frozen now
	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/wishes/%d", wishID), ownerToken, map[string]string{
		"price": "200.00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// So is deleting the wish
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/wishes/%d", wishID), ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A pledge past the remaining headroom is rejected
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/offers", friendToken, map[string]interface{}{
		"amount":  "80.00",
		"item_id": wishID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The wish owner may not touch someone else's pledge
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/offers/%d", offerID), ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Retracting the pledge unfreezes everything
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/offers/%d", offerID), friendToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raised = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/wishes/%d/raised", wishID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got, err = decimal.NewFromString(fmt.Sprintf("%v", raised["raised"]))
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "got %s", got)

	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/wishes/%d", wishID), ownerToken, map[string]string{
		"price": "200.00",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCrossUserMutationForbidden(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	ownerToken, _ := registerAndLogin(t, app, "owner", "owner@example.com")
	strangerToken, _ := registerAndLogin(t, app, "stranger", "stranger@example.com")

	_, wishlist := doJSON(t, app, http.MethodPost, "/api/v1/wishlists", ownerToken, map[string]string{
		"name": "Birthday",
	})
	wishlistID := uint(wishlist["id"].(float64))

	resp, _ := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/wishlists/%d", wishlistID), strangerToken, map[string]string{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/wishlists/%d", wishlistID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, unchanged := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/wishlists/%d", wishlistID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Birthday", unchanged["name"])
}

func TestCopyWish(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	ownerToken, _ := registerAndLogin(t, app, "owner", "owner@example.com")
	copierToken, copierID := registerAndLogin(t, app, "copier", "copier@example.com")

	_, sourceList := doJSON(t, app, http.MethodPost, "/api/v1/wishlists", ownerToken, map[string]string{
		"name": "Birthday",
	})
	_, wish := doJSON(t, app, http.MethodPost, "/api/v1/wishes", ownerToken, map[string]interface{}{
		"name":        "Telescope",
		"price":       "100.00",
		"wishlist_id": uint(sourceList["id"].(float64)),
	})
	wishID := uint(wish["id"].(float64))

	_, targetList := doJSON(t, app, http.MethodPost, "/api/v1/wishlists", copierToken, map[string]string{
		"name": "Mine too",
	})
	targetListID := uint(targetList["id"].(float64))

	resp, clone := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/wishes/%d/copy", wishID), copierToken, map[string]interface{}{
		"wishlist_id": targetListID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Telescope", clone["name"])
	assert.Equal(t, float64(copierID), clone["owner_id"])

	// The source tracks how often it was copied
	resp, source := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/wishes/%d", wishID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), source["copied"])

	// Copying into a wishlist you do not own is forbidden
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/wishes/%d/copy", wishID), ownerToken, map[string]interface{}{
		"wishlist_id": targetListID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUserProfileEndpoints(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token, userID := registerAndLogin(t, app, "profileuser", "profile@example.com")

	resp, me := doJSON(t, app, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "profileuser", me["username"])

	resp, updated := doJSON(t, app, http.MethodPatch, "/api/v1/users/me", token, map[string]string{
		"about": "Stargazer",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Stargazer", updated["about"])

	resp, public := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Stargazer", public["about"])
	assert.NotContains(t, public, "password")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
