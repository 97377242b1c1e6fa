// repositories/funnel_repository.go
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

// IFunnelRepository akış grafiği ana kayıt işlemleri için arayüz.
type IFunnelRepository interface {
	Create(ctx context.Context, funnel *models.Funnel) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Funnel, error)
	FindByIDWithGraph(ctx context.Context, id uuid.UUID) (*models.Funnel, error)
	FindByShareKey(ctx context.Context, key string) (*models.Funnel, error)
	FindAllByOwnerPaginated(ownerID uuid.UUID, params queryparams.ListParams) ([]models.Funnel, int64, error)
	Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FunnelRepository IFunnelRepository arayüzünü uygular.
type FunnelRepository struct {
	base *BaseRepository[models.Funnel]
	db   *gorm.DB
}

// NewFunnelRepository yeni bir FunnelRepository örneği oluşturur.
func NewFunnelRepository() IFunnelRepository {
	return NewFunnelRepositoryTx(configsdatabase.GetDB())
}

// NewFunnelRepositoryTx transaction içinde kullanılacak örneği oluşturur.
func NewFunnelRepositoryTx(db *gorm.DB) IFunnelRepository {
	base := NewBaseRepository[models.Funnel](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "kind"})
	return &FunnelRepository{base: base, db: db}
}

func (r *FunnelRepository) Create(ctx context.Context, funnel *models.Funnel) error {
	return r.base.Create(ctx, funnel)
}

func (r *FunnelRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Funnel, error) {
	return r.base.FindByID(ctx, id)
}

// FindByIDWithGraph akışı düğümleri ve kenarlarıyla birlikte getirir.
func (r *FunnelRepository) FindByIDWithGraph(ctx context.Context, id uuid.UUID) (*models.Funnel, error) {
	var funnel models.Funnel
	err := r.db.WithContext(ctx).
		Preload("Nodes").
		Preload("Edges").
		First(&funnel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &funnel, nil
}

// FindByShareKey public paylaşım anahtarıyla akışı getirir (grafikle birlikte).
func (r *FunnelRepository) FindByShareKey(ctx context.Context, key string) (*models.Funnel, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var funnel models.Funnel
	err := r.db.WithContext(ctx).
		Preload("Nodes").
		Preload("Edges").
		Where("share_key = ?", key).
		First(&funnel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &funnel, nil
}

// FindAllByOwnerPaginated kullanıcının akışlarını sayfalayarak listeler.
func (r *FunnelRepository) FindAllByOwnerPaginated(ownerID uuid.UUID, params queryparams.ListParams) ([]models.Funnel, int64, error) {
	var results []models.Funnel
	var totalCount int64

	query := r.db.Model(&models.Funnel{}).Where("owner_user_id = ?", ownerID)

	if params.Name != "" {
		fragment, args := turkishsearch.SQLFilter("funnels.name", params.Name)
		query = query.Where(fragment, args...)
	}
	if params.Status != "" {
		query = query.Where("funnels.kind = ?", params.Status)
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

func (r *FunnelRepository) Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.Update(ctx, id, data)
}

func (r *FunnelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

// Arayüz uyumluluğu kontrolü
var _ IFunnelRepository = (*FunnelRepository)(nil)
