package api

import (
	"net/http"

	"storefront-service/internal/cart"

	"github.com/gin-gonic/gin"
)

// listProducts returns the catalog, newest first
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct returns one product's detail
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func cartResponse(ct *cart.Cart) gin.H {
	return gin.H{
		"cart":        ct,
		"total_items": ct.TotalItems(),
		"total_price": ct.TotalPrice(),
	}
}

// getCart returns the shopper's current cart
func (h *Handler) getCart(c *gin.Context) {
	ct, err := h.carts.Get(c.Request.Context(), cartSession(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// addCartItem merges a product into the cart, clamped to its stock
func (h *Handler) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ct, err := h.carts.Add(c.Request.Context(), cartSession(c), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// updateCartItem replaces a line's quantity; zero or below removes it
func (h *Handler) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	ct, err := h.carts.Update(c.Request.Context(), cartSession(c), c.Param("productId"), req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

// removeCartItem deletes a line from the cart
func (h *Handler) removeCartItem(c *gin.Context) {
	ct, err := h.carts.Remove(c.Request.Context(), cartSession(c), c.Param("productId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

// clearCart empties the cart
func (h *Handler) clearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), cartSession(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart.New()))
}

type checkoutRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
}

// checkout submits the shopper's cart as a store order
func (h *Handler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sessionID := cartSession(c)
	ct, err := h.carts.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	order, err := h.orders.CreateStoreOrder(c.Request.Context(), req.CustomerName, req.Phone, req.Address, ct)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.carts.Clear(c.Request.Context(), sessionID); err != nil {
		// the order is in; a stale cart is the lesser problem
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

type customRequestRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Category      string `json:"category" binding:"required"`
	ProductDetail string `json:"product_detail" binding:"required"`
	BudgetRange   string `json:"budget_range"`
}

// createCustomRequest submits an out-of-catalog supply request
func (h *Handler) createCustomRequest(c *gin.Context) {
	var req customRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orders.CreateCustomRequest(c.Request.Context(),
		req.CustomerName, req.Phone, req.Category, req.ProductDetail, req.BudgetRange)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// listTeamCategories returns the roster categories in display order
func (h *Handler) listTeamCategories(c *gin.Context) {
	categories, err := h.team.GetCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// getTeamCategory returns one roster category
func (h *Handler) getTeamCategory(c *gin.Context) {
	category, err := h.team.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// listMembersByCategory returns the members of one category
func (h *Handler) listMembersByCategory(c *gin.Context) {
	members, err := h.team.GetMembersByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// listTeamMembers returns the full roster in display order
func (h *Handler) listTeamMembers(c *gin.Context) {
	members, err := h.team.GetMembers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// getTeamMember returns one roster member
func (h *Handler) getTeamMember(c *gin.Context) {
	member, err := h.team.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

// listUncategorizedMembers returns roster members with no category
func (h *Handler) listUncategorizedMembers(c *gin.Context) {
	members, err := h.team.GetUncategorizedMembers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// createContactMessage accepts a contact-form submission
func (h *Handler) createContactMessage(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	msg, err := h.contact.CreateMessage(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message_id": msg.ID})
}
