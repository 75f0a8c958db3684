package repository

import (
	"context"
	"errors"
	"testing"

	"employee-management/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryRepositoryKeys(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	e := models.Employee{ID: primitive.NewObjectID(), EmployeeID: "EMP-1", FirstName: "A", LastName: "B", Email: "a@b.io"}
	if err := repo.Create(ctx, &e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.CreatedAt.IsZero() || !e.CreatedAt.Equal(e.UpdatedAt) {
		t.Errorf("timestamps not stamped: %v %v", e.CreatedAt, e.UpdatedAt)
	}

	for _, key := range []string{e.ID.Hex(), "EMP-1"} {
		got, err := repo.FindByKey(ctx, key)
		if err != nil || got.ID != e.ID {
			t.Errorf("FindByKey(%q) = %v, %v", key, got, err)
		}
	}
	if _, err := repo.FindByKey(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown ObjectID: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepositoryEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	a := models.Employee{ID: primitive.NewObjectID(), EmployeeID: "A", Email: "a@b.io"}
	b := models.Employee{ID: primitive.NewObjectID(), EmployeeID: "B", Email: "b@b.io"}
	for _, e := range []*models.Employee{&a, &b} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	dup := models.Employee{ID: primitive.NewObjectID(), EmployeeID: "C", Email: "a@b.io"}
	if err := repo.Create(ctx, &dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Create dup: err = %v, want ErrDuplicateEmail", err)
	}

	email := "a@b.io"
	merged := b
	merged.Email = email
	if _, err := repo.Update(ctx, b.ID, models.UpdateEmployeeDTO{Email: &email}, &merged); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Update dup: err = %v, want ErrDuplicateEmail", err)
	}

	// keeping one's own address is not a conflict
	same := "b@b.io"
	if _, err := repo.Update(ctx, b.ID, models.UpdateEmployeeDTO{Email: &same}, &b); err != nil {
		t.Errorf("Update own email: %v", err)
	}
}
