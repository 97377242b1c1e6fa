package models

import (
	"github.com/google/uuid"

	"akis.link/models/helpers"
)

// Funnel türleri: klasik satış hunisi veya AI akışı.
const (
	FunnelKindFunnel = "funnel"
	FunnelKindAIFlow = "ai_flow"
)

// Funnel akış grafiğinin (canvas) ana kaydıdır.
type Funnel struct {
	BaseModel
	OwnerUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_user_id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Kind        string    `gorm:"type:varchar(20);not null;default:'funnel'" json:"kind"`

	// ShareKey public salt-okunur paylaşım anahtarı; boşsa paylaşım kapalıdır.
	// Boş değer birden çok kayıtta bulunabileceği için unique index kullanılmaz;
	// boş anahtarla arama repository katmanında engellenir.
	ShareKey string `gorm:"type:varchar(24);index" json:"share_key,omitempty"`

	// GORM İlişkileri
	Nodes []FunnelNode `gorm:"foreignKey:FunnelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"nodes,omitempty"`
	Edges []FunnelEdge `gorm:"foreignKey:FunnelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"edges,omitempty"`
}

// FunnelNode canvas üzerindeki tipli bir düğümdür.
// Data içeriği NodeType'a göre models.DecodeNodeData ile tipli varyanta çözülür.
type FunnelNode struct {
	BaseModel
	FunnelID  uuid.UUID       `gorm:"type:uuid;index;not null" json:"funnel_id"`
	NodeType  string          `gorm:"type:varchar(30);not null" json:"node_type"`
	PositionX float64         `gorm:"not null;default:0" json:"position_x"`
	PositionY float64         `gorm:"not null;default:0" json:"position_y"`
	Data      helpers.JSONBMap `gorm:"type:jsonb" json:"data"`
}

// FunnelEdge iki düğüm arasındaki yönlü bağlantıdır.
// Stroke kaynak handle'dan türetilen bir projeksiyondur; bağımsız anlamsal
// durum değildir ve kaynak handle değişirse yeniden hesaplanır.
type FunnelEdge struct {
	BaseModel
	FunnelID     uuid.UUID `gorm:"type:uuid;index;not null" json:"funnel_id"`
	SourceNodeID uuid.UUID `gorm:"type:uuid;index;not null" json:"source_node_id"`
	TargetNodeID uuid.UUID `gorm:"type:uuid;index;not null" json:"target_node_id"`
	SourceHandle string    `gorm:"type:varchar(30)" json:"source_handle"` // Opsiyonel çıkış portu
	TargetHandle string    `gorm:"type:varchar(30)" json:"target_handle"`
	Stroke       string    `gorm:"type:varchar(10)" json:"stroke"` // Türetilmiş görsel stil
}
