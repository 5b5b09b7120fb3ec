package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cartify/cartify/internal/handlers"
	"github.com/cartify/cartify/internal/logging"
	"github.com/cartify/cartify/internal/models"
	"github.com/cartify/cartify/internal/mykafka"
	cartsvc "github.com/cartify/cartify/internal/service/cart"
	itemsvc "github.com/cartify/cartify/internal/service/items"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.User{}, &models.CartLine{}))

	items := []models.Item{
		{Name: "Headphones", Price: 2999, Category: "electronics"},
		{Name: "Mug", Price: 299, Category: "home"},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}

	cartService := &cartsvc.Service{DB: db}
	itemService := &itemsvc.Service{DB: db}
	producer := &mykafka.Producer{}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logging.New("error"))
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())

	Register(e, &Deps{
		AuthHandler:   &handlers.AuthHandler{DB: db, JWTSecret: testSecret, Cart: cartService, Producer: producer},
		ItemHandler:   &handlers.ItemHandler{Items: itemService, Producer: producer},
		CartHandler:   &handlers.CartHandler{Cart: cartService, Producer: producer},
		SearchHandler: &handlers.SearchHandler{},
		JWTSecret:     testSecret,
	})
	return e, db
}

func doJSON(e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signup(t *testing.T, e *echo.Echo, email string) string {
	rec := doJSON(e, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestCartRequiresAuth(t *testing.T) {
	e, _ := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/cart"},
		{http.MethodDelete, "/api/v1/cart/1"},
		{http.MethodDelete, "/api/v1/cart/clear"},
	} {
		rec := doJSON(e, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp["error"])
	}
}

func TestCartFlow(t *testing.T) {
	e, _ := newTestServer(t)
	tok := signup(t, e, "user@example.com")

	rec := doJSON(e, http.MethodPost, "/api/v1/cart", tok, map[string]interface{}{
		"itemId": 1, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/cart", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lines []models.CartLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
	require.Equal(t, "Headphones", lines[0].Item.Name)

	rec = doJSON(e, http.MethodDelete, "/api/v1/cart/2", tok, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/v1/cart/1", tok, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/v1/cart/clear", tok, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoginMergeEndToEnd(t *testing.T) {
	e, db := newTestServer(t)
	signup(t, e, "user@example.com")

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "user@example.com",
		"password": "password",
		"clientCart": []map[string]interface{}{
			{"itemId": 1, "quantity": 2},
			{"itemId": 1, "quantity": 3},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var lines []models.CartLine
	require.NoError(t, db.Order("id").Find(&lines).Error)
	require.Len(t, lines, 1)
	require.Equal(t, 5, lines[0].Quantity)
}

func TestItemsPublic(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/items", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/items/42", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Item not found", resp["error"])
}
