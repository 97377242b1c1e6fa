// repositories/board_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"akis.link/configs/configsdatabase"
	"akis.link/models"
	"akis.link/pkg/queryparams"
	"akis.link/pkg/turkishsearch"
)

// IBoardRepository pano veritabanı işlemleri için arayüz.
type IBoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Board, error)
	FindByIDWithColumns(ctx context.Context, id uuid.UUID) (*models.Board, error)
	FindAllByOwnerPaginated(ownerID uuid.UUID, params queryparams.ListParams) ([]models.Board, int64, error)
	Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByOwner(ownerID uuid.UUID) (int64, error)
}

// BoardRepository IBoardRepository arayüzünü uygular.
type BoardRepository struct {
	base *BaseRepository[models.Board]
	db   *gorm.DB
}

// NewBoardRepository yeni bir BoardRepository örneği oluşturur.
func NewBoardRepository() IBoardRepository {
	return NewBoardRepositoryTx(configsdatabase.GetDB())
}

// NewBoardRepositoryTx transaction içinde kullanılmak üzere repository oluşturur.
func NewBoardRepositoryTx(db *gorm.DB) IBoardRepository {
	base := NewBaseRepository[models.Board](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "template_kind"})
	return &BoardRepository{base: base, db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *models.Board) error {
	return r.base.Create(ctx, board)
}

func (r *BoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	return r.base.FindByID(ctx, id)
}

// FindByIDWithColumns panoyu kolonları ve kartlarıyla, sıra indeksine göre
// sıralanmış şekilde getirir.
func (r *BoardRepository) FindByIDWithColumns(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("board_columns.order_index ASC")
		}).
		Preload("Columns.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("board_cards.order_index ASC")
		}).
		First(&board, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// FindAllByOwnerPaginated kullanıcının panolarını sayfalayarak listeler.
func (r *BoardRepository) FindAllByOwnerPaginated(ownerID uuid.UUID, params queryparams.ListParams) ([]models.Board, int64, error) {
	var results []models.Board
	var totalCount int64

	query := r.db.Model(&models.Board{}).Where("owner_user_id = ?", ownerID)

	if params.Name != "" {
		fragment, args := turkishsearch.SQLFilter("boards.name", params.Name)
		query = query.Where(fragment, args...)
	}
	if params.Status != "" {
		query = query.Where("boards.template_kind = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	err := query.
		Order(r.base.orderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

func (r *BoardRepository) Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.Update(ctx, id, data)
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

func (r *BoardRepository) CountByOwner(ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Board{}).Where("owner_user_id = ?", ownerID).Count(&count).Error
	return count, err
}

// Arayüz uyumluluğu kontrolü
var _ IBoardRepository = (*BoardRepository)(nil)
