package dao

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// paginate applies limit and offset, falling back to defaultLimit when limit is not positive
func paginate(limit, offset, defaultLimit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			limit = defaultLimit
		}
		if offset < 0 {
			offset = 0
		}
		return db.Limit(limit).Offset(offset)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching term anywhere
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// ilike matches column against a containsPattern case-insensitively on every dialect
func ilike(column string) string {
	return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column)
}

// exists reports whether a row of model matches id
func exists(ctx context.Context, db *gorm.DB, model interface{}, id interface{}) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// first loads one row matching the conditions or returns ErrNotFound
func first[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

// find loads every row matching the conditions, newest first
func find[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) ([]T, error) {
	rows := []T{}
	if err := db.WithContext(ctx).Where(query, args...).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// deleteByID removes the row of model with id, or returns ErrNotFound
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id interface{}) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// updateColumns writes the given columns on the row of model with id, or returns ErrNotFound
func updateColumns(ctx context.Context, db *gorm.DB, model interface{}, id interface{}, columns map[string]interface{}) error {
	if len(columns) == 0 {
		found, err := exists(ctx, db, model, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return nil
	}
	result := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
