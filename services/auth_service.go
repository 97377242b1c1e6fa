// services/auth_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"akis.link/configs"
	"akis.link/configs/configslog"
	"akis.link/models"
	"akis.link/repositories"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials  AuthServiceError = "e-posta veya şifre hatalı"
	ErrUserInactive        AuthServiceError = "hesap pasif durumda"
	ErrEmailTaken          AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrAuthInvalidInput    AuthServiceError = "geçersiz girdi verisi"
	ErrAuthUserNotFound    AuthServiceError = "kullanıcı bulunamadı"
	ErrTokenInvalid        AuthServiceError = "oturum geçersiz ya da süresi dolmuş"
	ErrRegistrationFailed  AuthServiceError = "kayıt oluşturulamadı"
	ErrPasswordHashFailure AuthServiceError = "şifre oluşturulurken hata oluştu"
)

// Token ömrü ve yeni hesaplara tanımlanan başlangıç kredisi.
const (
	tokenTTL       = 72 * time.Hour
	starterCredits = 100
)

// IAuthService kimlik doğrulama işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	VerifyToken(tokenString string) (uuid.UUID, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
	secret   []byte
	db       *gorm.DB
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return NewAuthServiceTx(configs.GetDB())
}

// NewAuthServiceTx verilen DB bağlantısıyla örnek oluşturur (test için).
func NewAuthServiceTx(db *gorm.DB) IAuthService {
	return &AuthService{
		userRepo: repositories.NewUserRepositoryTx(db),
		secret:   configs.GetJWTSecret(),
		db:       db,
	}
}

// Register yeni hesap açar ve başlangıç kredisini tanımlar.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, ErrAuthInvalidInput
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Şifre hashlenemedi", zap.Error(err))
		return nil, ErrPasswordHashFailure
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		Credits:      starterCredits,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		configslog.Log.Error("Kullanıcı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return nil, ErrRegistrationFailed
	}
	configslog.SLog.Infof("Yeni hesap: %s (%s)", user.Email, user.ID)
	return user, nil
}

// Login kimlik bilgilerini doğrular ve imzalı token döndürür.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrUserInactive
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		configslog.Log.Error("Token üretilemedi", zap.String("user_id", user.ID.String()), zap.Error(err))
		return "", nil, ErrTokenInvalid
	}
	return token, user, nil
}

// VerifyToken imzayı ve süreyi doğrulayıp kullanıcı kimliğini döndürür.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("beklenmeyen imza yöntemi")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return userID, nil
}

// GetProfile kullanıcı kaydını döndürür.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrAuthUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Arayüz uyumluluğu kontrolü
var _ IAuthService = (*AuthService)(nil)
