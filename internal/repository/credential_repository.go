package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db}
}

func (r *CredentialRepository) Find(ctx context.Context, provider string) (*model.Credential, error) {
	var cred model.Credential
	err := r.db.WithContext(ctx).First(&cred, "provider = ?", provider).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// Save inserts the credential or replaces the stored value for its provider.
func (r *CredentialRepository) Save(ctx context.Context, cred *model.Credential) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(cred).Error
}

func (r *CredentialRepository) Delete(ctx context.Context, provider string) error {
	res := r.db.WithContext(ctx).Delete(&model.Credential{}, "provider = ?", provider)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
