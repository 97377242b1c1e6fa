// repositories/folder_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"akis.link/configs/configsdatabase"
	"akis.link/models"
)

// IFolderRepository pano klasörleri için arayüz.
type IFolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Folder, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error)
	Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FolderRepository IFolderRepository arayüzünü uygular.
type FolderRepository struct {
	base *BaseRepository[models.Folder]
	db   *gorm.DB
}

// NewFolderRepository yeni bir FolderRepository örneği oluşturur.
func NewFolderRepository() IFolderRepository {
	return NewFolderRepositoryTx(configsdatabase.GetDB())
}

// NewFolderRepositoryTx transaction içinde kullanılacak örneği oluşturur.
func NewFolderRepositoryTx(db *gorm.DB) IFolderRepository {
	return &FolderRepository{base: NewBaseRepository[models.Folder](db), db: db}
}

func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	return r.base.Create(ctx, folder)
}

func (r *FolderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	return r.base.FindByID(ctx, id)
}

func (r *FolderRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("name ASC").
		Find(&folders).Error
	return folders, err
}

func (r *FolderRepository) Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.Update(ctx, id, data)
}

func (r *FolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

// Arayüz uyumluluğu kontrolü
var _ IFolderRepository = (*FolderRepository)(nil)
