package repository

import (
	"context"
	"errors"

	"employee-management/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no employee matches the resolved key.
	ErrNotFound       = errors.New("employee not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrStoreNotReady is returned by writes while the unique indexes cannot
	// be created.
	ErrStoreNotReady  = errors.New("employee store not ready")
)

// EmployeeRepository defines persistence for employees.
//
// Keys passed to FindByKey and DeleteByKey are resolved the same way: a
// 24-character hex string is treated as the document ObjectID, anything else
// as the business employeeId.
type EmployeeRepository interface {
	Create(ctx context.Context, e *models.Employee) error
	FindByKey(ctx context.Context, key string) (*models.Employee, error)
	// Update applies the fields named by patch, taking their values from
	// merged, and returns the stored document after the update.
	Update(ctx context.Context, id primitive.ObjectID, patch models.UpdateEmployeeDTO, merged *models.Employee) (*models.Employee, error)
	DeleteByKey(ctx context.Context, key string) error
	Search(ctx context.Context, q models.SearchQuery) ([]models.Employee, error)
	List(ctx context.Context, f ListFilter) ([]models.Employee, error)
}
