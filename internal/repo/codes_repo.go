// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// CustomCode model: the runtime-registered response codes that must
// survive a restart.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// No business logic lives here: the registry remains the source of truth
// while the process runs, and these rows only rebuild it at startup.
//
// Error semantics:
//   - CreateCustomCode returns ErrDuplicate when (category, code) is taken.
//   - GetCustomCode and DeleteCustomCode return ErrNotFound for a missing pair.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-response-codes/internal/domain"
)

// CreateCustomCode inserts a new CustomCode row. data must already be
// JSON-encoded; an empty string is stored as "null".
func CreateCustomCode(ctx context.Context, db *gorm.DB, category, code string, status int, message, data string) (*domain.CustomCode, error) {
	if data == "" {
		data = "null"
	}
	now := time.Now().UTC()
	c := &domain.CustomCode{
		ID:        uuid.NewString(),
		Category:  category,
		Code:      code,
		Status:    status,
		Message:   message,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return c, nil
}

// GetCustomCode fetches the row stored for (category, code).
func GetCustomCode(ctx context.Context, db *gorm.DB, category, code string) (*domain.CustomCode, error) {
	var c domain.CustomCode
	err := db.WithContext(ctx).
		Where("category = ? AND code = ?", category, code).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCustomCode removes the row stored for (category, code). If no rows
// are affected it returns ErrNotFound.
func DeleteCustomCode(ctx context.Context, db *gorm.DB, category, code string) error {
	res := db.WithContext(ctx).
		Where("category = ? AND code = ?", category, code).
		Delete(&domain.CustomCode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCustomCodes returns every stored code ordered by category, then code.
func ListCustomCodes(ctx context.Context, db *gorm.DB) ([]domain.CustomCode, error) {
	var out []domain.CustomCode
	err := db.WithContext(ctx).
		Order("category asc").
		Order("code asc").
		Find(&out).Error
	return out, err
}
