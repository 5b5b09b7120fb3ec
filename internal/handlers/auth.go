package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cartify/cartify/internal/hash"
	"github.com/cartify/cartify/internal/logging"
	"github.com/cartify/cartify/internal/models"
	"github.com/cartify/cartify/internal/mykafka"
	cartsvc "github.com/cartify/cartify/internal/service/cart"
	"github.com/cartify/cartify/internal/service/token"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Cart      *cartsvc.Service
	Producer  *mykafka.Producer
}

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	var existing models.User
	result := h.DB.Where("email = ?", req.Email).First(&existing)
	if result.Error == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email already in use")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, result.Error.Error())
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := models.User{Email: req.Email, PasswordHash: pwHash}
	if err := h.DB.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tok, err := token.Sign(user.ID, user.Email, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"token": tok,
		"user":  userResponse{ID: user.ID, Email: user.Email},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email      string               `json:"email"`
		Password   string               `json:"password"`
		ClientCart []cartsvc.LocalEntry `json:"clientCart"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	// Best effort: a failed merge must not block token issuance.
	if len(req.ClientCart) > 0 {
		if err := h.Cart.MergeLocalCart(user.ID, req.ClientCart); err != nil {
			logging.FromContext(c.Request().Context()).Error("cart merge failed",
				"userID", user.ID, "entries", len(req.ClientCart), "error", err)
		}
	}

	tok, err := token.Sign(user.ID, user.Email, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"token": tok,
		"user":  userResponse{ID: user.ID, Email: user.Email},
	})
}
