package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	templatedomain "github.com/parishlabs/tdrms/internal/template/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() templatedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, t *templatedomain.Template) error {
	return db.WithContext(ctx).Create(t).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]templatedomain.Template, error) {
	var templates []templatedomain.Template
	err := db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*templatedomain.Template, error) {
	var t templatedomain.Template
	err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*templatedomain.Template, error) {
	var t templatedomain.Template
	err := db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, t *templatedomain.Template) error {
	return db.WithContext(ctx).
		Model(&templatedomain.Template{}).
		Where("id = ?", t.ID).
		Select("name", "organization", "address", "purpose", "signatories", "branding", "active", "updated_at").
		Updates(t).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&templatedomain.Template{}).Error
}
