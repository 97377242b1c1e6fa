// repositories/execution_log_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"akis.link/configs/configsdatabase"
	"akis.link/models"
	"akis.link/pkg/queryparams"
)

// IExecutionLogRepository AI araç çağrı kayıtları için arayüz.
type IExecutionLogRepository interface {
	Create(ctx context.Context, log *models.AIFlowExecutionLog) error
	FindAllByOwnerPaginated(ownerID uuid.UUID, params queryparams.ListParams) ([]models.AIFlowExecutionLog, int64, error)
	SumCreditsSpent(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// ExecutionLogRepository IExecutionLogRepository arayüzünü uygular.
type ExecutionLogRepository struct {
	base *BaseRepository[models.AIFlowExecutionLog]
	db   *gorm.DB
}

// NewExecutionLogRepository yeni bir örnek oluşturur.
func NewExecutionLogRepository() IExecutionLogRepository {
	return NewExecutionLogRepositoryTx(configsdatabase.GetDB())
}

// NewExecutionLogRepositoryTx transaction içinde kullanılacak örneği oluşturur.
func NewExecutionLogRepositoryTx(db *gorm.DB) IExecutionLogRepository {
	base := NewBaseRepository[models.AIFlowExecutionLog](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "tool_id", "status"})
	return &ExecutionLogRepository{base: base, db: db}
}

func (r *ExecutionLogRepository) Create(ctx context.Context, log *models.AIFlowExecutionLog) error {
	return r.base.Create(ctx, log)
}

// FindAllByOwnerPaginated kullanıcının çağrı kayıtlarını sayfalayarak listeler.
// Status parametresi success|error filtrelemesi yapar.
func (r *ExecutionLogRepository) FindAllByOwnerPaginated(ownerID uuid.UUID, params queryparams.ListParams) ([]models.AIFlowExecutionLog, int64, error) {
	var results []models.AIFlowExecutionLog
	var totalCount int64

	query := r.db.Model(&models.AIFlowExecutionLog{}).Where("owner_user_id = ?", ownerID)

	if params.Name != "" {
		query = query.Where("tool_id = ?", params.Name)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
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

// SumCreditsSpent kullanıcının toplam kredi harcamasını döndürür.
func (r *ExecutionLogRepository) SumCreditsSpent(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.AIFlowExecutionLog{}).
		Where("owner_user_id = ?", ownerID).
		Select("COALESCE(SUM(credits_spent), 0)").
		Scan(&total).Error
	return total, err
}

// Arayüz uyumluluğu kontrolü
var _ IExecutionLogRepository = (*ExecutionLogRepository)(nil)
