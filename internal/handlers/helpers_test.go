package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cartify/cartify/internal/hash"
	"github.com/cartify/cartify/internal/models"
	"github.com/cartify/cartify/internal/mykafka"
	cartsvc "github.com/cartify/cartify/internal/service/cart"
	itemsvc "github.com/cartify/cartify/internal/service/items"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Auth *AuthHandler
	Cart *CartHandler
	Item *ItemHandler
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.User{}, &models.CartLine{}))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)

	cartService := &cartsvc.Service{DB: db}
	itemService := &itemsvc.Service{DB: db}
	producer := &mykafka.Producer{}

	return &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		Auth: &AuthHandler{DB: db, JWTSecret: testSecret, Cart: cartService, Producer: producer},
		Cart: &CartHandler{Cart: cartService, Producer: producer},
		Item: &ItemHandler{Items: itemService, Producer: producer},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser mimics what the auth middleware puts into the context.
func asUser(c echo.Context, userID uint) {
	c.Set("userID", userID)
}

func (env *testEnv) createUser(email, password string) models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{Email: email, PasswordHash: pwHash}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) seedItems() {
	items := []models.Item{
		{Name: "Headphones", Price: 2999, Category: "electronics"},
		{Name: "T-Shirt", Price: 799, Category: "clothing"},
		{Name: "Mug", Price: 299, Category: "home"},
	}
	for i := range items {
		require.NoError(env.T, env.DB.Create(&items[i]).Error)
	}
}
