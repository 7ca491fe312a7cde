package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) CreateInTx(tx *gorm.DB, result *model.Result) error {
	return tx.Create(result).Error
}

func (r *ResultRepository) FindByUser(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&results).Error
	return results, err
}
