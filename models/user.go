package models

// User hesap sahibini temsil eder. Tüm panel kayıtları OwnerUserID ile
// bu tabloya bağlanır; satır erişimi servis katmanında sahiplik kontrolüyle yapılır.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null" json:"-"`
	IsSystem     bool   `gorm:"default:false;index" json:"-"`
	IsActive     bool   `gorm:"default:true;index" json:"is_active"`

	// Credits AI araç çağrılarında düşülen kredi bakiyesi.
	Credits int64 `gorm:"default:0" json:"credits"`
}
