// repositories/user_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"akis.link/configs/configsdatabase"
	"akis.link/models"
)

// Kredi düşme işleminde yetersiz bakiye hatası.
var ErrInsufficientBalance = errors.New("yetersiz kredi bakiyesi")

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	DebitCredits(ctx context.Context, id uuid.UUID, amount int64) (int64, error)
	CreditCredits(ctx context.Context, id uuid.UUID, amount int64) error
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	base *BaseRepository[models.User]
	db   *gorm.DB
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configsdatabase.GetDB())
}

// NewUserRepositoryTx transaction içinde kullanılacak örneği oluşturur.
func NewUserRepositoryTx(db *gorm.DB) IUserRepository {
	return &UserRepository{base: NewBaseRepository[models.User](db), db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.base.Create(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.base.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.Update(ctx, id, data)
}

// DebitCredits bakiyeden düşer ve kalan bakiyeyi döndürür.
// Satır kilidiyle okunur; eşzamanlı çağrılarda bakiye eksiye inemez.
func (r *UserRepository) DebitCredits(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	var remaining int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		// sqlite satır kilidini desteklemez; orada transaction izolasyonu yeterli
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var user models.User
		err := query.First(&user, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if user.Credits < amount {
			return ErrInsufficientBalance
		}
		remaining = user.Credits - amount
		return tx.Model(&models.User{}).
			Where("id = ?", id).
			Update("credits", remaining).Error
	})
	return remaining, err
}

// CreditCredits bakiyeye ekleme yapar (iade ve tanımlı yüklemeler).
func (r *UserRepository) CreditCredits(ctx context.Context, id uuid.UUID, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("credits", gorm.Expr("credits + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IUserRepository = (*UserRepository)(nil)
