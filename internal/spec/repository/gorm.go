package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/specdock/specdock/internal/spec"
)

// GormRepo persists spec records through GORM. The dialector decides whether
// that is an sqlite file or a postgres server; the repository is agnostic.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// Migrate creates or updates the specs table.
func (g *GormRepo) Migrate() error {
	return g.db.AutoMigrate(&spec.Record{})
}

func (g *GormRepo) Create(ctx context.Context, rec *spec.Record) error {
	return g.db.WithContext(ctx).Create(rec).Error
}

func (g *GormRepo) Get(ctx context.Context, id string) (*spec.Record, error) {
	var rec spec.Record
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (g *GormRepo) List(ctx context.Context) ([]*spec.Record, error) {
	var recs []*spec.Record
	err := g.db.WithContext(ctx).Order("created_at desc").Find(&recs).Error
	return recs, err
}

func (g *GormRepo) Delete(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&spec.Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&spec.Record{}).Count(&n).Error
	return n, err
}
