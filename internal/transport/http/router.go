package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cartify/cartify/internal/handlers"
	authmw "github.com/cartify/cartify/internal/middleware/auth"
)

type Deps struct {
	AuthHandler   *handlers.AuthHandler
	ItemHandler   *handlers.ItemHandler
	CartHandler   *handlers.CartHandler
	SearchHandler *handlers.SearchHandler
	JWTSecret     []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", d.AuthHandler.Signup)
	auth.POST("/login", d.AuthHandler.Login)

	items := v1.Group("/items")
	items.GET("", d.ItemHandler.GetItems)
	items.GET("/search", d.SearchHandler.Search)
	items.GET("/:id", d.ItemHandler.GetItem)
	items.POST("", d.ItemHandler.CreateItem)
	items.PATCH("/:id", d.ItemHandler.UpdateItem)
	items.DELETE("/:id", d.ItemHandler.DeleteItem)

	cart := v1.Group("/cart", authmw.RequireAuth(d.JWTSecret))
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddItem)
	cart.PATCH("/:itemId", d.CartHandler.UpdateQuantity)
	cart.DELETE("/clear", d.CartHandler.ClearCart)
	cart.DELETE("/:itemId", d.CartHandler.RemoveItem)
}

// ErrorHandler is the shared fallback: known HTTP errors keep their code,
// anything else becomes a generic 500 with no internals leaked.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			code := he.Code
			msg := fmt.Sprint(he.Message)
			if code >= http.StatusInternalServerError {
				log.Error("request failed", "status", code, "error", msg)
				msg = "internal server error"
			}
			_ = c.JSON(code, echo.Map{"error": msg})
			return
		}

		log.Error("unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
