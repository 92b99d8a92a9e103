package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/security"
	"insureops/api/internal/validate"
)

// userDTO carries the password inbound only; the stored hash never leaves
// the server.
type userDTO struct {
	UserID     *int64     `json:"user_id,omitempty"`
	Email      string     `json:"email" binding:"required,email,max=120"`
	Password   string     `json:"password,omitempty" binding:"omitempty,min=8,max=128"`
	Role       string     `json:"role"`
	CustomerID *int64     `json:"customer_id,omitempty"`
	EmployeeID *int64     `json:"employee_id,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func toUserDTO(u models.User) userDTO {
	id := u.ID
	return userDTO{
		UserID:     &id,
		Email:      u.Email,
		Role:       u.Role,
		CustomerID: u.CustomerID,
		EmployeeID: u.EmployeeID,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (dto userDTO) toEntity() models.User {
	created := dto.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	role := dto.Role
	if role == "" {
		role = models.UserRoleDefault
	}
	return models.User{
		Email:      strings.TrimSpace(strings.ToLower(dto.Email)),
		Role:       role,
		CustomerID: dto.CustomerID,
		EmployeeID: dto.EmployeeID,
		IsActive:   dto.IsActive,
		CreatedAt:  created,
	}
}

// validateUser runs the shared rules: role allow-list, email uniqueness and
// the optional links to a customer or employee row.
func (h HandlerSet) validateUser(c *gin.Context, u models.User, excludeID int64) bool {
	if !validate.OneOf(models.UserRoles, u.Role) {
		badRequest(c, "role must be one of Customer, Employee, Admin")
		return false
	}
	if inFuture(u.CreatedAt) {
		badRequest(c, "creation date cannot be in the future")
		return false
	}

	ctx := c.Request.Context()
	inUse, err := h.store.UserEmailInUse(ctx, u.Email, excludeID)
	if err != nil {
		h.storeError(c, err, "")
		return false
	}
	if inUse {
		badRequest(c, "the given email is already in use")
		return false
	}

	if u.CustomerID != nil {
		exists, err := h.store.CustomerExists(ctx, *u.CustomerID)
		if err != nil {
			h.storeError(c, err, "")
			return false
		}
		if !exists {
			badRequest(c, "the referenced customer does not exist")
			return false
		}
	}
	if u.EmployeeID != nil {
		exists, err := h.store.EmployeeExists(ctx, *u.EmployeeID)
		if err != nil {
			h.storeError(c, err, "")
			return false
		}
		if !exists {
			badRequest(c, "the referenced employee does not exist")
			return false
		}
	}
	return true
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

func (h HandlerSet) CreateUser(c *gin.Context) {
	var dto userDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.UserID != nil {
		badRequest(c, "user ID must not be set on creation")
		return
	}
	if dto.Password == "" {
		badRequest(c, "password is required")
		return
	}

	user := dto.toEntity()
	if !h.validateUser(c, user, 0) {
		return
	}

	hash, err := security.HashPassword(dto.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	user.PasswordHash = hash

	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(user.ID))
	c.JSON(http.StatusCreated, toUserDTO(user))
}

// UpdateUser replaces the profile fields. The password only changes when a
// new one is supplied; an empty password keeps the stored hash.
func (h HandlerSet) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto userDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}

	current, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "user not found")
		return
	}

	user := dto.toEntity()
	user.ID = id
	user.CreatedAt = current.CreatedAt
	user.PasswordHash = current.PasswordHash
	if dto.Password != "" {
		hash, err := security.HashPassword(dto.Password)
		if err != nil {
			h.log.Error().Err(err).Msg("password hashing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		user.PasswordHash = hash
	}
	now := time.Now().UTC()
	user.UpdatedAt = &now

	if !h.validateUser(c, user, id) {
		return
	}
	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		h.storeError(c, err, "user not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) PatchUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var ops []patchOp
	if err := c.ShouldBindJSON(&ops); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "user not found")
		return
	}

	for _, op := range ops {
		var fieldErr error
		switch op.Field {
		case "email":
			fieldErr = json.Unmarshal(op.Value, &user.Email)
			user.Email = strings.TrimSpace(strings.ToLower(user.Email))
		case "role":
			fieldErr = json.Unmarshal(op.Value, &user.Role)
		case "customer_id":
			fieldErr = json.Unmarshal(op.Value, &user.CustomerID)
		case "employee_id":
			fieldErr = json.Unmarshal(op.Value, &user.EmployeeID)
		case "is_active":
			fieldErr = json.Unmarshal(op.Value, &user.IsActive)
		case "password":
			var password string
			if fieldErr = json.Unmarshal(op.Value, &password); fieldErr == nil {
				if len(password) < 8 {
					badRequest(c, "password must be at least 8 characters")
					return
				}
				hash, err := security.HashPassword(password)
				if err != nil {
					h.log.Error().Err(err).Msg("password hashing failed")
					c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
					return
				}
				user.PasswordHash = hash
			}
		default:
			badRequest(c, "unknown field: "+op.Field)
			return
		}
		if fieldErr != nil {
			badRequest(c, "invalid value for field "+op.Field)
			return
		}
	}
	if user.Email == "" {
		badRequest(c, "email must not be empty")
		return
	}
	now := time.Now().UTC()
	user.UpdatedAt = &now

	if !h.validateUser(c, user, id) {
		return
	}
	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		h.storeError(c, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "user not found")
		return
	}
	c.Status(http.StatusNoContent)
}
