package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"employee-management/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EmployeeIndexes are created before the first write. The unique email index is what
// turns a second insert with the same address into a duplicate-key error.
var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}},
		Options: options.Index().SetName("idx_employeeId"),
	},
}

type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time

	// indexed is set once createIndexes succeeds; failures leave it unset so
	// the next write tries again.
	indexMu       sync.Mutex
	indexed       bool
	createIndexes func(ctx context.Context) error
}

// NewMongoRepository returns an employee repository backed by coll.
func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	r := &MongoRepository{
		coll: coll,
		now:  func() time.Time { return time.Now().UTC() },
	}
	r.createIndexes = func(ctx context.Context) error {
		_, err := r.coll.Indexes().CreateMany(ctx, EmployeeIndexes)
		return err
	}
	return r
}

// EnsureIndexes creates EmployeeIndexes unless an earlier call already did.
// Writes call it first, so email uniqueness holds even when the database
// came up after startup.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	r.indexMu.Lock()
	defer r.indexMu.Unlock()
	if r.indexed {
		return nil
	}
	if err := r.createIndexes(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreNotReady, err)
	}
	r.indexed = true
	return nil
}

// Create inserts e, stamping createdAt and updatedAt.
func (r *MongoRepository) Create(ctx context.Context, e *models.Employee) error {
	if err := r.EnsureIndexes(ctx); err != nil {
		return err
	}
	now := r.now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

// FindByKey returns the employee for key or ErrNotFound.
func (r *MongoRepository) FindByKey(ctx context.Context, key string) (*models.Employee, error) {
	var e models.Employee
	if err := r.coll.FindOne(ctx, keyFilter(key)).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.UpdateEmployeeDTO, merged *models.Employee) (*models.Employee, error) {
	if err := r.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var e models.Employee
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, updateDocument(patch, merged, r.now()), opts).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, mapWriteErr(err)
	}
	return &e, nil
}

// DeleteByKey removes the employee for key or returns ErrNotFound.
func (r *MongoRepository) DeleteByKey(ctx context.Context, key string) error {
	res, err := r.coll.DeleteOne(ctx, keyFilter(key))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Search(ctx context.Context, q models.SearchQuery) ([]models.Employee, error) {
	return r.find(ctx, searchFilter(q))
}

func (r *MongoRepository) List(ctx context.Context, f ListFilter) ([]models.Employee, error) {
	return r.find(ctx, listFilter(f))
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]models.Employee, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]models.Employee, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Employee{}
	}
	return out, nil
}

func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}
