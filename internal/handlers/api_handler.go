package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pedidos_directos/internal/cart"
	"pedidos_directos/internal/catalog"
	"pedidos_directos/internal/models"
	"pedidos_directos/internal/money"
	"pedidos_directos/internal/services"
	"pedidos_directos/internal/session"
	"pedidos_directos/pkg/sheets"
)

type APIHandler struct {
	orderService services.OrderService
	formatter    *money.Formatter
}

func NewAPIHandler(orderService services.OrderService, formatter *money.Formatter) *APIHandler {
	return &APIHandler{
		orderService: orderService,
		formatter:    formatter,
	}
}

type businessView struct {
	Name      string `json:"name"`
	Subtitle  string `json:"subtitle,omitempty"`
	HeroImage string `json:"hero_image,omitempty"`
}

type optionsView struct {
	Label    string   `json:"label,omitempty"`
	Choices  []string `json:"choices"`
	Selected string   `json:"selected"`
}

type menuItemView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       money.Cents  `json:"price"`
	PriceText   string       `json:"price_text"`
	Options     *optionsView `json:"options,omitempty"`
	Quantity    int          `json:"quantity"`
}

type cartLineView struct {
	ItemID       string      `json:"item_id"`
	Name         string      `json:"name"`
	Option       string      `json:"option,omitempty"`
	Quantity     int         `json:"quantity"`
	UnitPrice    money.Cents `json:"unit_price"`
	Subtotal     money.Cents `json:"subtotal"`
	SubtotalText string      `json:"subtotal_text"`
}

func (h *APIHandler) businessView(sess *session.Session) businessView {
	return businessView{
		Name:      sess.Business.Name,
		Subtitle:  sess.Business.Subtitle,
		HeroImage: sess.Business.HeroImage,
	}
}

// menuView mirrors what the widget renders per item: price, option
// choices with the current selection, and the quantity already in the
// cart at that selection.
func (h *APIHandler) menuView(sess *session.Session) []menuItemView {
	items := make([]menuItemView, 0, len(sess.Business.Items))
	for _, it := range sess.Business.Items {
		view := menuItemView{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			PriceText:   h.formatter.Format(it.Price),
			Quantity:    sess.Cart.Quantity(sess.Selections.Key(it)),
		}
		if it.Options.IsSelect() {
			view.Options = &optionsView{
				Label:    it.Options.Label,
				Choices:  it.Options.Choices,
				Selected: sess.Selections.Resolve(it),
			}
		}
		items = append(items, view)
	}
	return items
}

func (h *APIHandler) cartView(lines []models.CartLine) []cartLineView {
	views := make([]cartLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, cartLineView{
			ItemID:       l.ItemID,
			Name:         l.Name,
			Option:       l.Option,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			Subtotal:     l.Subtotal(),
			SubtotalText: h.formatter.Format(l.Subtotal()),
		})
	}
	return views
}

func (h *APIHandler) sessionState(c *gin.Context, sess *session.Session) (gin.H, error) {
	preview, err := h.orderService.Preview(c.Request.Context(), sess.ID)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"session_id":   sess.ID,
		"slug":         sess.Slug,
		"business":     h.businessView(sess),
		"menu":         h.menuView(sess),
		"cart":         h.cartView(preview.Lines),
		"total":        preview.Total,
		"total_text":   preview.TotalText,
		"order_number": preview.OrderNumber,
		"customer":     sess.Customer,
	}, nil
}

func (h *APIHandler) respondWithState(c *gin.Context, status int, sess *session.Session) {
	state, err := h.sessionState(c, sess)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(status, state)
}

func (h *APIHandler) CreateSession(c *gin.Context) {
	var req struct {
		Slug string `json:"slug"`
	}
	// Body is optional; an empty request falls back to the default business.
	_ = c.ShouldBindJSON(&req)

	sess, err := h.orderService.CreateSession(c.Request.Context(), req.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Business not found",
				"hint":  "Check that a catalog document exists for this slug",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to load business catalog",
			"hint":  "The catalog source is unreachable; try again later",
		})
		return
	}

	h.respondWithState(c, http.StatusCreated, sess)
}

func (h *APIHandler) GetSession(c *gin.Context) {
	sess, err := h.orderService.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK, sess)
}

func (h *APIHandler) IncrementItem(c *gin.Context) {
	sess, err := h.orderService.IncrementItem(c.Request.Context(), c.Param("session_id"), c.Param("item_id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK, sess)
}

func (h *APIHandler) DecrementItem(c *gin.Context) {
	sess, err := h.orderService.DecrementItem(c.Request.Context(), c.Param("session_id"), c.Param("item_id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK, sess)
}

func (h *APIHandler) SelectOption(c *gin.Context) {
	var req struct {
		Choice string `json:"choice" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sess, err := h.orderService.SelectOption(c.Request.Context(), c.Param("session_id"), c.Param("item_id"), req.Choice)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidChoice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Choice is not offered for this item"})
			return
		}
		h.sessionError(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK, sess)
}

func (h *APIHandler) UpdateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sess, err := h.orderService.UpdateCustomer(c.Request.Context(), c.Param("session_id"), customer)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	h.respondWithState(c, http.StatusOK, sess)
}

func (h *APIHandler) Preview(c *gin.Context) {
	preview, err := h.orderService.Preview(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      preview.Message,
		"link":         preview.Link,
		"total":        preview.Total,
		"total_text":   preview.TotalText,
		"order_number": preview.OrderNumber,
	})
}

func (h *APIHandler) Send(c *gin.Context) {
	result, err := h.orderService.Send(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			// The widget treats an empty-cart send as a silent no-op.
			c.JSON(http.StatusOK, gin.H{"sent": false, "reason": "empty_cart"})
		case errors.Is(err, services.ErrSendInFlight):
			c.JSON(http.StatusConflict, gin.H{"sent": false, "reason": "send_in_flight"})
		default:
			h.sessionError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sent":         true,
		"link":         result.Link,
		"message":      result.Message,
		"order_number": result.OrderNumber,
		"order_logged": result.Outcome == sheets.OutcomeSubmitted,
		"total":        result.Total,
		"total_text":   result.TotalText,
	})
}

func (h *APIHandler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, session.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
