package configs

import (
	"os"

	"akis.link/configs/configsdatabase"

	"gorm.io/gorm"
)

// GetDB servis katmanının kısayolu; configsdatabase'e delegasyon yapar.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// GetAppPort HTTP sunucusunun dinleyeceği portu döndürür.
func GetAppPort() string {
	if port := os.Getenv("APP_PORT"); port != "" {
		return ":" + port
	}
	return ":3000"
}

// GetJWTSecret token imzalama anahtarını döndürür.
// Üretimde boş bırakılmamalıdır; boşsa sadece geliştirme için bir varsayılan kullanılır.
func GetJWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("akis-dev-secret")
}

// GetAIGatewayURL AI gateway taban adresini döndürür.
func GetAIGatewayURL() string {
	if url := os.Getenv("AI_GATEWAY_URL"); url != "" {
		return url
	}
	return "https://gateway.akis.link/v1"
}

// GetAIGatewayKey gateway API anahtarını döndürür.
func GetAIGatewayKey() string {
	return os.Getenv("AI_GATEWAY_KEY")
}

// GetBlobBaseURL blob depolama servisinin taban adresini döndürür.
func GetBlobBaseURL() string {
	if url := os.Getenv("BLOB_BASE_URL"); url != "" {
		return url
	}
	return "https://blob.akis.link"
}

// GetToolCatalogDir AI araç tanımlarının (HCL) okunacağı dizini döndürür.
func GetToolCatalogDir() string {
	if dir := os.Getenv("TOOL_CATALOG_DIR"); dir != "" {
		return dir
	}
	return "configs/tools"
}
