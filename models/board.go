package models

import "github.com/google/uuid"

// Board şablon türleri.
const (
	BoardTemplateLeads = "leads"
	BoardTemplateFree  = "free"
)

// Folder pano gruplamak için opsiyonel klasör.
type Folder struct {
	BaseModel
	OwnerUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_user_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
}

// Board kanban panosunun ana kaydıdır.
// Silindiğinde kolonları ve kartları da silinir (servis katmanında cascade).
type Board struct {
	BaseModel
	OwnerUserID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"owner_user_id"`
	Name         string     `gorm:"type:varchar(150);not null" json:"name"`
	TemplateKind string     `gorm:"type:varchar(20);not null;default:'free'" json:"template_kind"`
	FolderID     *uuid.UUID `gorm:"type:uuid;index" json:"folder_id"` // Opsiyonel

	// GORM İlişkileri
	Columns []BoardColumn `gorm:"foreignKey:BoardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"columns,omitempty"`
}

// BoardColumn pano içindeki bir kolondur.
// OrderIndex pano içinde 0'dan başlayan, boşluksuz ve tekrarsız sıradır;
// bu değişmez (invariant) sadece pkg/ordering üzerinden korunur.
type BoardColumn struct {
	BaseModel
	BoardID    uuid.UUID `gorm:"type:uuid;index;not null" json:"board_id"`
	Title      string    `gorm:"type:varchar(100);not null" json:"title"`
	Icon       string    `gorm:"type:varchar(50)" json:"icon"` // Opsiyonel sembolik ad
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`

	Cards []BoardCard `gorm:"foreignKey:ColumnID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"cards,omitempty"`
}

// Kart öncelik değerleri.
const (
	CardPriorityLow    = "low"
	CardPriorityMedium = "medium"
	CardPriorityHigh   = "high"
)

// BoardCard bir kolona bağlı karttır. Bir kart aynı anda tam olarak tek
// kolona aittir; kolonlar arası taşıma tek atomik geçiştir (BoardService.MoveCard).
type BoardCard struct {
	BaseModel
	BoardID     uuid.UUID `gorm:"type:uuid;index;not null" json:"board_id"`
	ColumnID    uuid.UUID `gorm:"type:uuid;index;not null" json:"column_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Priority    string    `gorm:"type:varchar(10)" json:"priority"` // low|medium|high, boş olabilir
	Completed   bool      `gorm:"default:false" json:"completed"`
	OrderIndex  int       `gorm:"not null;default:0" json:"order_index"`

	Attachments []CardAttachment `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"attachments,omitempty"`
}

// CardAttachment karta bağlı dosya kaydıdır. Blob içeriği blobstore'dadır;
// burada sadece metadata tutulur.
type CardAttachment struct {
	BaseModel
	CardID   uuid.UUID `gorm:"type:uuid;index;not null" json:"card_id"`
	FileName string    `gorm:"type:varchar(255);not null" json:"file_name"`
	URL      string    `gorm:"type:varchar(500);not null" json:"url"`
	MimeType string    `gorm:"type:varchar(100)" json:"mime_type"` // Opsiyonel
	ByteSize int64     `json:"byte_size"`                          // Opsiyonel
}

// ValidCardPriority öncelik değerinin geçerliliğini kontrol eder (boş geçerlidir).
func ValidCardPriority(p string) bool {
	switch p {
	case "", CardPriorityLow, CardPriorityMedium, CardPriorityHigh:
		return true
	}
	return false
}

// ValidBoardTemplate şablon türünün geçerliliğini kontrol eder.
func ValidBoardTemplate(kind string) bool {
	return kind == BoardTemplateLeads || kind == BoardTemplateFree
}
