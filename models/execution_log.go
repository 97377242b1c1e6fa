package models

import (
	"github.com/google/uuid"

	"akis.link/models/helpers"
)

// Çalıştırma sonuç durumları.
const (
	ExecutionStatusSuccess = "success"
	ExecutionStatusError   = "error"
)

// AIFlowExecutionLog bir AI araç çağrısının kaydıdır.
// Her Invoke çağrısı (başarılı ya da başarısız) bir satır üretir.
type AIFlowExecutionLog struct {
	BaseModel
	OwnerUserID uuid.UUID  `gorm:"type:uuid;index;not null" json:"owner_user_id"`
	FunnelID    *uuid.UUID `gorm:"type:uuid;index" json:"funnel_id"` // Canvas dışı çağrılarda boş
	ToolID      string     `gorm:"type:varchar(60);index;not null" json:"tool_id"`
	Status      string     `gorm:"type:varchar(10);not null" json:"status"`

	Input        helpers.JSONBMap `gorm:"type:jsonb" json:"input"`
	Output       helpers.JSONBMap `gorm:"type:jsonb" json:"output"`
	ErrorMessage string           `gorm:"type:text" json:"error_message,omitempty"`
	CreditsSpent int64            `json:"credits_spent"`
	DurationMS   int64            `json:"duration_ms"`
}
