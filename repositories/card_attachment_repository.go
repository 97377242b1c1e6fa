// repositories/card_attachment_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"akis.link/configs/configsdatabase"
	"akis.link/models"
)

// ICardAttachmentRepository ek dosya metadata işlemleri için arayüz.
type ICardAttachmentRepository interface {
	Create(ctx context.Context, attachment *models.CardAttachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CardAttachment, error)
	FindAllByCard(ctx context.Context, cardID uuid.UUID) ([]models.CardAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByCard(ctx context.Context, cardID uuid.UUID) error
}

// CardAttachmentRepository ICardAttachmentRepository arayüzünü uygular.
type CardAttachmentRepository struct {
	base *BaseRepository[models.CardAttachment]
	db   *gorm.DB
}

// NewCardAttachmentRepository yeni bir örnek oluşturur.
func NewCardAttachmentRepository() ICardAttachmentRepository {
	return NewCardAttachmentRepositoryTx(configsdatabase.GetDB())
}

// NewCardAttachmentRepositoryTx transaction içinde kullanılacak örneği oluşturur.
func NewCardAttachmentRepositoryTx(db *gorm.DB) ICardAttachmentRepository {
	return &CardAttachmentRepository{base: NewBaseRepository[models.CardAttachment](db), db: db}
}

func (r *CardAttachmentRepository) Create(ctx context.Context, attachment *models.CardAttachment) error {
	return r.base.Create(ctx, attachment)
}

func (r *CardAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CardAttachment, error) {
	return r.base.FindByID(ctx, id)
}

func (r *CardAttachmentRepository) FindAllByCard(ctx context.Context, cardID uuid.UUID) ([]models.CardAttachment, error) {
	var attachments []models.CardAttachment
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&attachments).Error
	return attachments, err
}

func (r *CardAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

// DeleteAllByCard kartın tüm eklerini siler (kart silme cascade'i).
func (r *CardAttachmentRepository) DeleteAllByCard(ctx context.Context, cardID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Delete(&models.CardAttachment{}).Error
}

// Arayüz uyumluluğu kontrolü
var _ ICardAttachmentRepository = (*CardAttachmentRepository)(nil)
