package handler

import (
	"net/http"
	"strconv"

	catalogapp "github.com/erp/backoffice/internal/application/catalog"
	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductHandler handles product and inventory HTTP requests
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *catalogapp.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{BaseHandler: BaseHandler{logger: logger}, products: products}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.GetProducts(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(&h.BaseHandler, c, products, func(p catalog.Product, term string) bool {
		return containsFold(term, p.Name, p.SKU, p.Category)
	})
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), getTenantID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.Product
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.products.AddProduct(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PATCH /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var patch catalog.ProductPatch
	if !h.bindJSON(c, &patch) {
		return
	}
	product, err := h.products.UpdateProduct(c.Request.Context(), getTenantID(c), c.Param("id"), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), getTenantID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Inventory handles GET /products/inventory?low_stock=N
func (h *ProductHandler) Inventory(c *gin.Context) {
	threshold := -1
	if raw := c.Query("low_stock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "low_stock must be a non-negative integer")
			return
		}
		threshold = n
	}
	summary, err := h.products.InventorySummary(c.Request.Context(), getTenantID(c), threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
