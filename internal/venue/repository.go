package venue

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, v *Venue) error
	FindByName(ctx context.Context, name string) (*Venue, error)
	FindAll(ctx context.Context) ([]Venue, error)

	// SaveVersioned persists the venue only when nobody else updated it since
	// it was loaded. Returns gorm.ErrRecordNotFound-style miss as (false, nil).
	SaveVersioned(ctx context.Context, v *Venue) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Venue) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindByName(ctx context.Context, name string) (*Venue, error) {
	var v Venue
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).Order("name ASC").Find(&venues).Error
	return venues, err
}

func (r *repository) SaveVersioned(ctx context.Context, v *Venue) (bool, error) {
	oldVersion := v.Version
	v.Version++

	res := r.db.WithContext(ctx).
		Model(&Venue{}).
		Where("id = ? AND version = ?", v.ID, oldVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(v)
	if res.Error != nil {
		v.Version = oldVersion
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		v.Version = oldVersion
		return false, nil
	}
	return true, nil
}
