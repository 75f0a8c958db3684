package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"employee-management/internal/apperror"
	"employee-management/internal/middleware"
	"employee-management/internal/models"
	"employee-management/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	msgDuplicateEmail = "Email already exists. Please use a different email."
	msgNotFound       = "Employee not found"
	msgAddFailed      = "Error adding employee"
	msgUpdateFailed   = "Error updating employee"
	msgDeleteFailed   = "Error deleting employee"
	msgSearchFailed   = "Error searching employees"
	msgListFailed     = "Error fetching employees"
	msgGetFailed      = "Error fetching employee"
	msgDeleted        = "Employee deleted successfully"
)

type EmployeeHandler struct {
	Repo repository.EmployeeRepository
	Log  *slog.Logger
}

func NewEmployeeHandler(repo repository.EmployeeRepository, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{Repo: repo, Log: logger}
}

// POST /api/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var in models.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		h.fail(c, apperror.New(apperror.KindInvalid, msgAddFailed, err))
		return
	}
	emp, err := in.ToEmployee()
	if err != nil {
		h.fail(c, apperror.New(apperror.KindInvalid, msgAddFailed, err))
		return
	}
	if err := h.Repo.Create(c.Request.Context(), &emp); err != nil {
		h.fail(c, classify(err, apperror.KindInvalid, msgAddFailed))
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// GET /api/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	emp, err := h.Repo.FindByKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, classify(err, apperror.KindInternal, msgGetFailed))
		return
	}
	c.JSON(http.StatusOK, emp)
}

// PUT /api/employees/:id
// Only the supplied fields change; the merged record must still pass the
// full schema.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var in models.UpdateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, apperror.New(apperror.KindInvalid, msgUpdateFailed, err))
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Repo.FindByKey(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, classify(err, apperror.KindInvalid, msgUpdateFailed))
		return
	}

	merged := *existing
	if err := in.ApplyTo(&merged); err != nil {
		h.fail(c, apperror.New(apperror.KindInvalid, msgUpdateFailed, err))
		return
	}
	if err := merged.Validate(); err != nil {
		h.fail(c, apperror.New(apperror.KindInvalid, msgUpdateFailed, err))
		return
	}

	updated, err := h.Repo.Update(ctx, existing.ID, in, &merged)
	if err != nil {
		h.fail(c, classify(err, apperror.KindInvalid, msgUpdateFailed))
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.Repo.DeleteByKey(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, classify(err, apperror.KindInvalid, msgDeleteFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}

// GET /api/employees/search?employeeId=&name=&department=
func (h *EmployeeHandler) SearchEmployees(c *gin.Context) {
	var q models.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, apperror.New(apperror.KindInvalid, msgSearchFailed, err))
		return
	}
	employees, err := h.Repo.Search(c.Request.Context(), q)
	if err != nil {
		h.fail(c, classify(err, apperror.KindInternal, msgSearchFailed))
		return
	}
	c.JSON(http.StatusOK, employees)
}

// GET /api/employees?employeeId=&name=&department=&dateFrom=&dateTo=
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var q models.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, apperror.New(apperror.KindInvalid, msgListFailed, err))
		return
	}
	h.Log.Debug("list employees", "query", c.Request.URL.RawQuery)

	from, to, err := q.JoiningRange()
	if errors.Is(err, models.ErrInvalidDateRange) {
		h.fail(c, apperror.New(apperror.KindInvalid, err.Error(), nil))
		return
	}
	if err != nil {
		h.fail(c, apperror.New(apperror.KindInvalid, "Invalid date", err))
		return
	}

	employees, err := h.Repo.List(c.Request.Context(), repository.ListFilter{
		EmployeeID: q.EmployeeID,
		Name:       q.Name,
		Department: q.Department,
		JoinedFrom: from,
		JoinedTo:   to,
	})
	if err != nil {
		h.fail(c, classify(err, apperror.KindInternal, msgListFailed))
		return
	}
	c.JSON(http.StatusOK, employees)
}

// classify maps repository errors to their kind; anything else falls back
// to the endpoint's default.
func classify(err error, fallback apperror.Kind, message string) *apperror.Error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperror.New(apperror.KindConflict, msgDuplicateEmail, nil)
	case errors.Is(err, repository.ErrNotFound):
		return apperror.New(apperror.KindNotFound, msgNotFound, nil)
	case errors.Is(err, repository.ErrStoreNotReady):
		return apperror.New(apperror.KindInternal, message, err)
	default:
		return apperror.As(err, fallback, message)
	}
}

// fail writes {message, error} with the status for the error's kind.
func (h *EmployeeHandler) fail(c *gin.Context, ae *apperror.Error) {
	body := gin.H{"message": ae.Message}
	if ae.Err != nil {
		body["error"] = ae.Err.Error()
		_ = c.Error(ae.Err)
	}

	attrs := []any{"kind", ae.Kind.String(), "path", c.FullPath(), "request_id", middleware.RequestID(c)}
	if ae.Err != nil {
		attrs = append(attrs, "error", ae.Err)
	}
	if ae.Kind == apperror.KindInternal {
		h.Log.Error(ae.Message, attrs...)
	} else {
		h.Log.Warn(ae.Message, attrs...)
	}

	c.JSON(ae.Kind.Status(), body)
}
