package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cartify/cartify/internal/logging"
	"github.com/cartify/cartify/internal/mykafka"
	itemsvc "github.com/cartify/cartify/internal/service/items"
)

type ItemHandler struct {
	Items    *itemsvc.Service
	Producer *mykafka.Producer
}

func (h *ItemHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "item_events", fmt.Sprint(event["itemID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func parseFilter(c echo.Context) (itemsvc.Filter, error) {
	f := itemsvc.Filter{Category: c.QueryParam("category")}

	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid minPrice")
		}
		f.MinPrice = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid maxPrice")
		}
		f.MaxPrice = &v
	}
	return f, nil
}

func (h *ItemHandler) GetItems(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	items, err := h.Items.List(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	item, err := h.Items.Get(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if item == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Item not found")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var in itemsvc.CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if in.Name == "" || in.Category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and category are required")
	}
	if in.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be non-negative")
	}

	item, err := h.Items.Create(in)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":   "item_created",
		"itemID": item.ID,
		"name":   item.Name,
	})

	return c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var in itemsvc.UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if in.Price != nil && *in.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be non-negative")
	}

	item, err := h.Items.Update(uint(id), in)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if item == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Item not found")
	}

	h.publish(c, map[string]any{
		"type":   "item_updated",
		"itemID": item.ID,
	})

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	if err := h.Items.Delete(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":   "item_deleted",
		"itemID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
