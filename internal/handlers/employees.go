package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/validate"
)

type employeeDTO struct {
	EmployeeID *int64    `json:"employee_id,omitempty"`
	Name       string    `json:"name" binding:"required,max=100"`
	Title      *string   `json:"title,omitempty" binding:"omitempty,max=60"`
	Email      *string   `json:"email,omitempty" binding:"omitempty,email,max=120"`
	Phone      *string   `json:"phone,omitempty" binding:"omitempty,max=25"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toEmployeeDTO(e models.Employee) employeeDTO {
	id := e.ID
	return employeeDTO{
		EmployeeID: &id,
		Name:       e.Name,
		Title:      e.Title,
		Email:      e.Email,
		Phone:      e.Phone,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
	}
}

func (dto employeeDTO) toEntity() models.Employee {
	created := dto.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	status := dto.Status
	if status == "" {
		status = "Active"
	}
	return models.Employee{
		Name:      dto.Name,
		Title:     dto.Title,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Status:    status,
		CreatedAt: created,
	}
}

// validateEmployee checks the entity-level rules; excludeID skips the row
// under update in the uniqueness query.
func (h HandlerSet) validateEmployee(c *gin.Context, e models.Employee, excludeID int64) bool {
	if !validate.OneOf(models.EmployeeStatuses, e.Status) {
		badRequest(c, "status must be one of Active, Inactive, Leave, Terminated")
		return false
	}
	if e.Email != nil {
		inUse, err := h.store.EmployeeEmailInUse(c.Request.Context(), *e.Email, excludeID)
		if err != nil {
			h.storeError(c, err, "")
			return false
		}
		if inUse {
			badRequest(c, "the given email is already in use")
			return false
		}
	}
	return true
}

func (h HandlerSet) ListEmployees(c *gin.Context) {
	employees, err := h.store.ListEmployees(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]employeeDTO, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeDTO(e))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	employee, err := h.store.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "employee not found")
		return
	}
	c.JSON(http.StatusOK, toEmployeeDTO(employee))
}

func (h HandlerSet) CreateEmployee(c *gin.Context) {
	var dto employeeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.EmployeeID != nil {
		badRequest(c, "employee ID must not be set on creation")
		return
	}

	employee := dto.toEntity()
	if !h.validateEmployee(c, employee, 0) {
		return
	}
	if err := h.store.CreateEmployee(c.Request.Context(), &employee); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(employee.ID))
	c.JSON(http.StatusCreated, toEmployeeDTO(employee))
}

func (h HandlerSet) UpdateEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto employeeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}

	employee := dto.toEntity()
	employee.ID = id
	if !h.validateEmployee(c, employee, id) {
		return
	}
	if err := h.store.UpdateEmployee(c.Request.Context(), employee); err != nil {
		h.storeError(c, err, "employee not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// PatchEmployee applies field-level operations to a copy of the stored row,
// validates the result as a whole, then persists it.
func (h HandlerSet) PatchEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var ops []patchOp
	if err := c.ShouldBindJSON(&ops); err != nil {
		badRequest(c, err.Error())
		return
	}

	employee, err := h.store.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "employee not found")
		return
	}

	for _, op := range ops {
		var fieldErr error
		switch op.Field {
		case "name":
			fieldErr = json.Unmarshal(op.Value, &employee.Name)
		case "title":
			fieldErr = json.Unmarshal(op.Value, &employee.Title)
		case "email":
			fieldErr = json.Unmarshal(op.Value, &employee.Email)
		case "phone":
			fieldErr = json.Unmarshal(op.Value, &employee.Phone)
		case "status":
			fieldErr = json.Unmarshal(op.Value, &employee.Status)
		default:
			badRequest(c, "unknown field: "+op.Field)
			return
		}
		if fieldErr != nil {
			badRequest(c, "invalid value for field "+op.Field)
			return
		}
	}
	if employee.Name == "" {
		badRequest(c, "name must not be empty")
		return
	}
	if !h.validateEmployee(c, employee, id) {
		return
	}

	if err := h.store.UpdateEmployee(c.Request.Context(), employee); err != nil {
		h.storeError(c, err, "employee not found")
		return
	}
	c.JSON(http.StatusOK, toEmployeeDTO(employee))
}

func (h HandlerSet) DeleteEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteEmployee(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "employee not found")
		return
	}
	c.Status(http.StatusNoContent)
}
