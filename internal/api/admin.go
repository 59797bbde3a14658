package api

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-service/internal/auth"
	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// adminLogin verifies the shared admin password and sets the session
// cookie
func (h *Handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.gate.Verify(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			util.AdminLoginsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false})
			return
		}
		h.writeError(c, err)
		return
	}

	util.AdminLoginsTotal.WithLabelValues("success").Inc()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, sess.Token, int(h.gate.TTL().Seconds()), "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// adminSessionCheck reports whether the caller holds a live admin
// session, without failing the request
func (h *Handler) adminSessionCheck(c *gin.Context) {
	token, _ := c.Cookie(auth.CookieName)
	_, err := h.gate.Check(c.Request.Context(), token)
	c.JSON(http.StatusOK, gin.H{"ok": err == nil})
}

// listOrders returns all orders for the admin console
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.GetOrders(c.Request.Context(), adminSession(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// getOrder returns one order
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), adminSession(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Order not found",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateOrderStatus moves an order along the status state machine
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.orders.UpdateOrderStatus(c.Request.Context(), adminSession(c), c.Param("id"), req.Status); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// createProduct accepts a multipart product form with an optional image
func (h *Handler) createProduct(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid price"})
		return
	}
	stock, _ := strconv.Atoi(c.DefaultPostForm("stock", "0"))

	in := service.CreateProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Price:       price,
		Stock:       stock,
	}

	if file, err := c.FormFile("image"); err == nil && file.Size > 0 {
		f, err := file.Open()
		if err != nil {
			h.writeError(c, err)
			return
		}
		defer f.Close()
		in.Image = &service.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
			Reader:      f,
		}
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), adminSession(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

type updateStockRequest struct {
	Stock int `json:"stock"`
}

// updateProductStock sets a product's stock to an absolute value
func (h *Handler) updateProductStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.catalog.UpdateStock(c.Request.Context(), adminSession(c), c.Param("id"), req.Stock); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// deleteProduct removes a product from the catalog
func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), adminSession(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// formImage pulls the required image file out of a multipart form
func formImage(c *gin.Context) (*service.ImageUpload, func(), bool) {
	file, err := c.FormFile("image")
	if err != nil || file.Size == 0 {
		return nil, func() {}, false
	}
	f, err := file.Open()
	if err != nil {
		return nil, func() {}, false
	}
	upload := &service.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Reader:      f,
	}
	return upload, func() { f.Close() }, true
}

// createTeamCategory accepts a multipart category form
func (h *Handler) createTeamCategory(c *gin.Context) {
	image, cleanup, ok := formImage(c)
	defer cleanup()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category image is required"})
		return
	}

	category, err := h.team.CreateCategory(c.Request.Context(), adminSession(c), c.PostForm("name"), image)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// deleteTeamCategory removes a roster category
func (h *Handler) deleteTeamCategory(c *gin.Context) {
	if err := h.team.DeleteCategory(c.Request.Context(), adminSession(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// createTeamMember accepts a multipart member form
func (h *Handler) createTeamMember(c *gin.Context) {
	image, cleanup, ok := formImage(c)
	defer cleanup()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Member photo is required"})
		return
	}

	member, err := h.team.CreateMember(c.Request.Context(), adminSession(c),
		c.PostForm("name"), c.PostForm("bio"), c.PostForm("category_id"), image)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// deleteTeamMember removes a roster member
func (h *Handler) deleteTeamMember(c *gin.Context) {
	if err := h.team.DeleteMember(c.Request.Context(), adminSession(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type reorderRequest struct {
	Entries []service.SortEntry `json:"entries" binding:"required,min=1"`
}

// reorderTeamCategories applies new category display positions
func (h *Handler) reorderTeamCategories(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.team.ReorderCategories(c.Request.Context(), adminSession(c), req.Entries); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// reorderTeamMembers applies new member display positions
func (h *Handler) reorderTeamMembers(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.team.ReorderMembers(c.Request.Context(), adminSession(c), req.Entries); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// listContactMessages returns contact-form submissions for the admin
// console
func (h *Handler) listContactMessages(c *gin.Context) {
	messages, err := h.contact.GetMessages(c.Request.Context(), adminSession(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
