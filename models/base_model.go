package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// contextKey context value çakışmalarını önlemek için özel tip.
type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// BaseModel hook'larına taşır.
const ContextUserIDKey contextKey = "user_id"

// ContextWithUserID context'e user_id ekler (audit hook'ları için).
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext context'teki user_id'yi okur.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(ContextUserIDKey).(uuid.UUID)
	return id, ok
}

// BaseModel tüm tablolarda ortak alanları taşır.
// Tüm birincil anahtarlar UUID'dir; audit alanları hook'larla doldurulur.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"-"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"-"`
}

// BeforeCreate UUID üretir ve CreatedBy alanını context'ten doldurur.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok {
		b.CreatedBy = &userID
	}
	return nil
}

// BeforeUpdate UpdatedBy alanını context'ten doldurur.
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok {
		b.UpdatedBy = &userID
	}
	return nil
}
