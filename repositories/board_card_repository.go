// repositories/board_card_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"akis.link/configs/configsdatabase"
	"akis.link/models"
)

// IBoardCardRepository kart veritabanı işlemleri için arayüz.
type IBoardCardRepository interface {
	Create(ctx context.Context, card *models.BoardCard) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BoardCard, error)
	FindAllByColumn(ctx context.Context, columnID uuid.UUID) ([]models.BoardCard, error)
	FindAllByBoard(ctx context.Context, boardID uuid.UUID) ([]models.BoardCard, error)
	Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByColumn(ctx context.Context, columnID uuid.UUID) error
	UpdatePlacement(ctx context.Context, cardID, columnID uuid.UUID, orderIndex int) error
	UpdateOrderIndexes(ctx context.Context, cards []models.BoardCard) error
	CountByColumn(columnID uuid.UUID) (int64, error)
}

// BoardCardRepository IBoardCardRepository arayüzünü uygular.
type BoardCardRepository struct {
	base *BaseRepository[models.BoardCard]
	db   *gorm.DB
}

// NewBoardCardRepository yeni bir BoardCardRepository örneği oluşturur.
func NewBoardCardRepository() IBoardCardRepository {
	return NewBoardCardRepositoryTx(configsdatabase.GetDB())
}

// NewBoardCardRepositoryTx transaction içinde kullanılacak örneği oluşturur.
func NewBoardCardRepositoryTx(db *gorm.DB) IBoardCardRepository {
	return &BoardCardRepository{base: NewBaseRepository[models.BoardCard](db), db: db}
}

func (r *BoardCardRepository) Create(ctx context.Context, card *models.BoardCard) error {
	return r.base.Create(ctx, card)
}

func (r *BoardCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.BoardCard, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllByColumn kolonun kartlarını sıra indeksine göre döndürür.
func (r *BoardCardRepository) FindAllByColumn(ctx context.Context, columnID uuid.UUID) ([]models.BoardCard, error) {
	var cards []models.BoardCard
	err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("order_index ASC").
		Find(&cards).Error
	return cards, err
}

func (r *BoardCardRepository) FindAllByBoard(ctx context.Context, boardID uuid.UUID) ([]models.BoardCard, error) {
	var cards []models.BoardCard
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("order_index ASC").
		Find(&cards).Error
	return cards, err
}

func (r *BoardCardRepository) Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.Update(ctx, id, data)
}

func (r *BoardCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

// DeleteAllByColumn kolonun tüm kartlarını siler (cascade kolon silme için).
func (r *BoardCardRepository) DeleteAllByColumn(ctx context.Context, columnID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Delete(&models.BoardCard{}).Error
}

// UpdatePlacement kartın kolon ve sıra indeksini tek adımda yazar.
// Kolonlar arası taşımanın atomik geçiş adımıdır.
func (r *BoardCardRepository) UpdatePlacement(ctx context.Context, cardID, columnID uuid.UUID, orderIndex int) error {
	result := r.db.WithContext(ctx).
		Model(&models.BoardCard{}).
		Where("id = ?", cardID).
		Updates(map[string]interface{}{
			"column_id":   columnID,
			"order_index": orderIndex,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateOrderIndexes verilen kartların sıra indekslerini yazar.
func (r *BoardCardRepository) UpdateOrderIndexes(ctx context.Context, cards []models.BoardCard) error {
	for _, card := range cards {
		err := r.db.WithContext(ctx).
			Model(&models.BoardCard{}).
			Where("id = ?", card.ID).
			Update("order_index", card.OrderIndex).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *BoardCardRepository) CountByColumn(columnID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.BoardCard{}).Where("column_id = ?", columnID).Count(&count).Error
	return count, err
}

// Arayüz uyumluluğu kontrolü
var _ IBoardCardRepository = (*BoardCardRepository)(nil)
