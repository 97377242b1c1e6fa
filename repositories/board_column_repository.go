// repositories/board_column_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"akis.link/configs/configsdatabase"
	"akis.link/models"
)

// IBoardColumnRepository kolon veritabanı işlemleri için arayüz.
type IBoardColumnRepository interface {
	Create(ctx context.Context, column *models.BoardColumn) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BoardColumn, error)
	FindAllByBoard(ctx context.Context, boardID uuid.UUID) ([]models.BoardColumn, error)
	Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateOrderIndexes(ctx context.Context, columns []models.BoardColumn) error
	CountByBoard(boardID uuid.UUID) (int64, error)
}

// BoardColumnRepository IBoardColumnRepository arayüzünü uygular.
type BoardColumnRepository struct {
	base *BaseRepository[models.BoardColumn]
	db   *gorm.DB
}

// NewBoardColumnRepository yeni bir BoardColumnRepository örneği oluşturur.
func NewBoardColumnRepository() IBoardColumnRepository {
	return NewBoardColumnRepositoryTx(configsdatabase.GetDB())
}

// NewBoardColumnRepositoryTx transaction içinde kullanılacak örneği oluşturur.
func NewBoardColumnRepositoryTx(db *gorm.DB) IBoardColumnRepository {
	return &BoardColumnRepository{base: NewBaseRepository[models.BoardColumn](db), db: db}
}

func (r *BoardColumnRepository) Create(ctx context.Context, column *models.BoardColumn) error {
	return r.base.Create(ctx, column)
}

func (r *BoardColumnRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.BoardColumn, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllByBoard kolonları sıra indeksine göre döndürür.
func (r *BoardColumnRepository) FindAllByBoard(ctx context.Context, boardID uuid.UUID) ([]models.BoardColumn, error) {
	var columns []models.BoardColumn
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("order_index ASC").
		Find(&columns).Error
	return columns, err
}

func (r *BoardColumnRepository) Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.Update(ctx, id, data)
}

func (r *BoardColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

// UpdateOrderIndexes verilen kolonların sıra indekslerini tek tek yazar.
// Sadece servis katmanının renormalizasyon adımı tarafından çağrılır.
func (r *BoardColumnRepository) UpdateOrderIndexes(ctx context.Context, columns []models.BoardColumn) error {
	for _, col := range columns {
		err := r.db.WithContext(ctx).
			Model(&models.BoardColumn{}).
			Where("id = ?", col.ID).
			Update("order_index", col.OrderIndex).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *BoardColumnRepository) CountByBoard(boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.BoardColumn{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

// Arayüz uyumluluğu kontrolü
var _ IBoardColumnRepository = (*BoardColumnRepository)(nil)
