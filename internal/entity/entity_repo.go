package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/internal/models"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrBadValue     = errors.New("filter values must be scalars")
)

type ListOptions struct {
	Page     int
	PageSize int
	Sort     string
}

type Repository interface {
	List(ctx context.Context, def *Definition, opts ListOptions) (interface{}, int64, error)
	Get(ctx context.Context, def *Definition, id uint) (models.Record, error)
	Filter(ctx context.Context, def *Definition, query map[string]interface{}, sort string, limit int) (interface{}, error)
	Create(ctx context.Context, rec models.Record) error
	CreateBatch(ctx context.Context, recs []models.Record) error
	Update(ctx context.Context, rec models.Record) error
	Delete(ctx context.Context, def *Definition, id uint) (bool, error)
	WithTransaction(txFunc func(Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, def *Definition, opts ListOptions) (interface{}, int64, error) {
	order, err := orderClause(def, opts.Sort)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(def.New()).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := def.NewSlice()
	offset := (opts.Page - 1) * opts.PageSize
	err = r.db.WithContext(ctx).Order(order).Offset(offset).Limit(opts.PageSize).Find(items).Error
	return items, total, err
}

// Get returns (nil, nil) when the record does not exist.
func (r *gormRepository) Get(ctx context.Context, def *Definition, id uint) (models.Record, error) {
	rec := def.New()
	if err := r.db.WithContext(ctx).First(rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (r *gormRepository) Filter(ctx context.Context, def *Definition, query map[string]interface{}, sort string, limit int) (interface{}, error) {
	where := make(map[string]interface{}, len(query))
	for field, value := range query {
		col, ok := def.Column(field)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		switch value.(type) {
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("%w: %s", ErrBadValue, field)
		}
		where[col] = value
	}
	order, err := orderClause(def, sort)
	if err != nil {
		return nil, err
	}

	items := def.NewSlice()
	tx := r.db.WithContext(ctx).Order(order)
	if len(where) > 0 {
		tx = tx.Where(where)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	return items, tx.Find(items).Error
}

func (r *gormRepository) Create(ctx context.Context, rec models.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// CreateBatch inserts every record or none.
func (r *gormRepository) CreateBatch(ctx context.Context, recs []models.Record) error {
	return r.WithTransaction(func(repo Repository) error {
		for i, rec := range recs {
			if err := repo.Create(ctx, rec); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *gormRepository) Update(ctx context.Context, rec models.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *gormRepository) Delete(ctx context.Context, def *Definition, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(def.New(), id)
	return res.RowsAffected > 0, res.Error
}

func (r *gormRepository) WithTransaction(txFunc func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&gormRepository{db: tx})
	})
}

// orderClause turns "-match_date,innings" into "match_date DESC, innings ASC".
// Fields are resolved against the entity's columns, so nothing from the
// request reaches SQL unchecked.
func orderClause(def *Definition, sort string) (string, error) {
	if strings.TrimSpace(sort) == "" {
		return "id ASC", nil
	}
	var parts []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		} else if strings.HasPrefix(field, "+") {
			field = field[1:]
		}
		col, ok := def.Column(field)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return "id ASC", nil
	}
	return strings.Join(parts, ", "), nil
}
