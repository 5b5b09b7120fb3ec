package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cartify/cartify/internal/logging"
	authmw "github.com/cartify/cartify/internal/middleware/auth"
	"github.com/cartify/cartify/internal/mykafka"
	cartsvc "github.com/cartify/cartify/internal/service/cart"
)

type CartHandler struct {
	Cart     *cartsvc.Service
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	lines, err := h.Cart.GetCart(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		ItemID   uint `json:"itemId"`
		Quantity int  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ItemID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "itemId is required")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	line, err := h.Cart.AddItem(userID, req.ItemID, req.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":     "cart_item_added",
		"userID":   userID,
		"itemID":   req.ItemID,
		"quantity": line.Quantity,
	})

	return c.JSON(http.StatusCreated, line)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || itemID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	line, existed, err := h.Cart.UpdateQuantity(userID, uint(itemID), req.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !existed {
		return echo.NewHTTPError(http.StatusNotFound, "Item not in cart")
	}

	h.publish(c, map[string]any{
		"type":     "cart_quantity_set",
		"userID":   userID,
		"itemID":   itemID,
		"quantity": req.Quantity,
	})

	if line == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, line)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || itemID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	existed, err := h.Cart.RemoveItem(userID, uint(itemID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !existed {
		return echo.NewHTTPError(http.StatusNotFound, "Item not in cart")
	}

	h.publish(c, map[string]any{
		"type":   "cart_item_removed",
		"userID": userID,
		"itemID": itemID,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	if err := h.Cart.ClearCart(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	return c.NoContent(http.StatusNoContent)
}
