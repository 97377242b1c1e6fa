package seeders

import (
	"errors"
	"os"

	"akis.link/configs/configslog"
	"akis.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Sistem hesabı varsayılanları. Şifre üretimde ortam değişkeniyle verilmelidir.
const (
	systemUserEmail      = "system@akis.link"
	systemUserName       = "Akış Sistem"
	defaultSystemPass    = "akis-system-pass"
	systemStarterCredits = 1000
)

// SeedSystemUser sistem hesabını oluşturur ve başlangıç kredisini tanımlar.
// Hesap zaten varsa hiçbir şey yapılmaz.
func SeedSystemUser(db *gorm.DB) error {
	configslog.SLog.Info("Sistem kullanıcısı seed işlemi başlıyor...")

	var existing models.User
	result := db.Where("email = ?", systemUserEmail).First(&existing)
	if result.Error == nil {
		configslog.SLog.Info("Sistem kullanıcısı zaten mevcut, oluşturma atlanıyor.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if password == "" {
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD tanımlı değil, varsayılan şifre kullanılıyor.")
		password = defaultSystemPass
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	user := models.User{
		Name:         systemUserName,
		Email:        systemUserEmail,
		PasswordHash: string(hash),
		IsSystem:     true,
		IsActive:     true,
		Credits:      systemStarterCredits,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %s, kredi: %d).", user.ID, systemStarterCredits)
	return nil
}
