package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/validate"
)

type customerDTO struct {
	CustomerID *int64    `json:"customer_id,omitempty"`
	Name       string    `json:"name" binding:"required,max=100"`
	Email      string    `json:"email" binding:"required,email,max=120"`
	Phone      string    `json:"phone" binding:"required,len=10,numeric"`
	AddrLine1  string    `json:"addr_line1" binding:"required,min=4,max=120"`
	AddrLine2  *string   `json:"addr_line2,omitempty" binding:"omitempty,max=120"`
	City       string    `json:"city" binding:"required,min=2,max=80"`
	StateCode  string    `json:"state_code" binding:"required"`
	ZipCode    string    `json:"zip_code" binding:"required"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCustomerDTO(c models.Customer) customerDTO {
	id := c.ID
	return customerDTO{
		CustomerID: &id,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		AddrLine1:  c.AddrLine1,
		AddrLine2:  c.AddrLine2,
		City:       c.City,
		StateCode:  c.StateCode,
		ZipCode:    c.ZipCode,
		CreatedAt:  c.CreatedAt,
	}
}

func (dto customerDTO) toEntity() models.Customer {
	created := dto.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return models.Customer{
		Name:      dto.Name,
		Email:     dto.Email,
		Phone:     dto.Phone,
		AddrLine1: dto.AddrLine1,
		AddrLine2: dto.AddrLine2,
		City:      dto.City,
		StateCode: dto.StateCode,
		ZipCode:   dto.ZipCode,
		CreatedAt: created,
	}
}

// validateCustomer returns the first violated rule, or "".
func validateCustomer(dto customerDTO) string {
	if strings.Contains(dto.Email, " ") {
		return "email must not contain whitespace"
	}
	if !validate.StateCode(dto.StateCode) {
		return "state code must be a two-letter code for a state, the District of Columbia, or the five US territories"
	}
	if !validate.ZipCode(dto.ZipCode) {
		return "zip code must be five to nine digits"
	}
	if inFuture(dto.CreatedAt) {
		return "creation date cannot be in the future"
	}
	return ""
}

func (h HandlerSet) ListCustomers(c *gin.Context) {
	customers, err := h.store.ListCustomers(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]customerDTO, 0, len(customers))
	for _, customer := range customers {
		out = append(out, toCustomerDTO(customer))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	customer, err := h.store.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "customer not found")
		return
	}
	c.JSON(http.StatusOK, toCustomerDTO(customer))
}

func (h HandlerSet) CreateCustomer(c *gin.Context) {
	var dto customerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.CustomerID != nil {
		badRequest(c, "customer ID must not be set on creation")
		return
	}
	if msg := validateCustomer(dto); msg != "" {
		badRequest(c, msg)
		return
	}

	customer := dto.toEntity()
	if err := h.store.CreateCustomer(c.Request.Context(), &customer); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(customer.ID))
	c.JSON(http.StatusCreated, toCustomerDTO(customer))
}

func (h HandlerSet) UpdateCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto customerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if msg := validateCustomer(dto); msg != "" {
		badRequest(c, msg)
		return
	}

	customer := dto.toEntity()
	customer.ID = id
	if err := h.store.UpdateCustomer(c.Request.Context(), customer); err != nil {
		h.storeError(c, err, "customer not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "customer not found")
		return
	}
	c.Status(http.StatusNoContent)
}
