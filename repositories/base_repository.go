// repositories/base_repository.go
package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"akis.link/models"
	"akis.link/pkg/queryparams"
)

// ErrNotFound kayıt bulunamadığında tüm repository'lerin döndürdüğü ortak hata.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm entity repository'lerinin paylaştığı generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetCount() (int64, error)
	SetAllowedSortColumns(columns []string)
}

// BaseRepository IBaseRepository'nin GORM uygulamasıdır.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]bool
}

// NewBaseRepository verilen bağlantıyla generik repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:                 db,
		allowedSortColumns: map[string]bool{"created_at": true},
	}
}

// SetAllowedSortColumns sıralamaya izin verilen kolonları belirler.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	allowed := make(map[string]bool, len(columns))
	for _, col := range columns {
		allowed[col] = true
	}
	r.allowedSortColumns = allowed
}

// Create kaydı oluşturur; audit alanları BaseModel hook'larıyla dolar.
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// FindByID kaydı birincil anahtarla bulur.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update verilen alanları günceller. updated_by context'teki kullanıcıdan set edilir.
func (r *BaseRepository[T]) Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	if userID, ok := models.UserIDFromContext(ctx); ok {
		data["updated_by"] = userID
	}
	var entity T
	result := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete kaydı siler.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var entity T
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCount toplam kayıt sayısını döndürür.
func (r *BaseRepository[T]) GetCount() (int64, error) {
	var entity T
	var count int64
	err := r.db.Model(&entity).Count(&count).Error
	return count, err
}

// orderClause izin verilen kolonlara göre güvenli ORDER BY parçası üretir.
func (r *BaseRepository[T]) orderClause(params queryparams.ListParams) string {
	sortBy := params.SortBy
	if !r.allowedSortColumns[sortBy] {
		sortBy = queryparams.DefaultSortBy
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	return sortBy + " " + orderBy
}

// Arayüz uyumluluğu kontrolü
var _ IBaseRepository[models.Board] = (*BaseRepository[models.Board])(nil)
