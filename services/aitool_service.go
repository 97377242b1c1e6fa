// services/aitool_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"akis.link/configs"
	"akis.link/configs/configslog"
	"akis.link/models"
	"akis.link/models/helpers"
	"akis.link/pkg/aigateway"
	"akis.link/pkg/queryparams"
	"akis.link/pkg/toolcatalog"
	"akis.link/repositories"
)

// AIToolServiceError özel servis hataları
type AIToolServiceError string

func (e AIToolServiceError) Error() string { return string(e) }

const (
	ErrToolNotFound         AIToolServiceError = "araç bulunamadı"
	ErrToolInvalidInput     AIToolServiceError = "araç girdisi geçersiz"
	ErrToolRateLimited      AIToolServiceError = "çok fazla istek gönderildi, lütfen biraz bekleyin"
	ErrToolCreditsExhausted AIToolServiceError = "kredi bakiyeniz yetersiz"
	ErrToolInvocationFailed AIToolServiceError = "araç çağrısı başarısız oldu"
	ErrToolNotStructured    AIToolServiceError = "araç yapılandırılmış çıktı tanımlamıyor"
	ErrToolUserNotFound     AIToolServiceError = "kullanıcı bulunamadı"
)

// InvokeRequest tek bir araç çağrısının girdisidir.
type InvokeRequest struct {
	ToolID   string
	Values   map[string]string // Form alanı değerleri
	FunnelID *uuid.UUID        // Canvas üzerinden çağrılıyorsa
	ImageURL string            // Opsiyonel tek görsel
}

// InvokeResult başarılı çağrının çıktısıdır.
type InvokeResult struct {
	Output           string          `json:"output"`
	Structured       json.RawMessage `json:"structured,omitempty"`
	CreditsSpent     int64           `json:"credits_spent"`
	CreditsRemaining int64           `json:"credits_remaining"`
}

// IGatewayClient gateway çağrılarının arayüzü (test için).
type IGatewayClient interface {
	Complete(ctx context.Context, model string, messages []aigateway.Message) (string, error)
	CompleteStream(ctx context.Context, model string, messages []aigateway.Message, fn func(chunk string) error) error
	CompleteStructured(ctx context.Context, model string, messages []aigateway.Message, schema json.RawMessage) (json.RawMessage, error)
}

// IAIToolService AI araç katalog ve çağrı işlemleri için arayüz.
type IAIToolService interface {
	ListTools() []toolcatalog.Tool
	Invoke(ctx context.Context, userID uuid.UUID, req InvokeRequest) (*InvokeResult, error)
	StreamChat(ctx context.Context, userID uuid.UUID, model string, messages []aigateway.Message, fn func(chunk string) error) error
	GetCreditBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	GetExecutionLogs(ctx context.Context, userID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// AIToolService IAIToolService arayüzünü uygular.
//
// Çağrı sırası sabittir: alan doğrulama → kredi düşme → gateway çağrısı →
// kayıt satırı. Gateway hatasında düşülen kredi iade edilir; her çağrı
// (başarılı ya da başarısız) bir çalıştırma kaydı üretir.
type AIToolService struct {
	catalog  *toolcatalog.Catalog
	gateway  IGatewayClient
	userRepo repositories.IUserRepository
	logRepo  repositories.IExecutionLogRepository
	db       *gorm.DB
}

// NewAIToolService katalog dizininden yeni bir örnek oluşturur.
func NewAIToolService() (IAIToolService, error) {
	catalog, err := toolcatalog.Load(configs.GetToolCatalogDir())
	if err != nil {
		return nil, err
	}
	gateway := aigateway.NewClient(configs.GetAIGatewayURL(), configs.GetAIGatewayKey())
	return NewAIToolServiceWith(configs.GetDB(), catalog, gateway), nil
}

// NewAIToolServiceWith verilen bağımlılıklarla örnek oluşturur (test için).
func NewAIToolServiceWith(db *gorm.DB, catalog *toolcatalog.Catalog, gateway IGatewayClient) IAIToolService {
	return &AIToolService{
		catalog:  catalog,
		gateway:  gateway,
		userRepo: repositories.NewUserRepositoryTx(db),
		logRepo:  repositories.NewExecutionLogRepositoryTx(db),
		db:       db,
	}
}

// ListTools katalogdaki araçları döndürür.
func (s *AIToolService) ListTools() []toolcatalog.Tool {
	return s.catalog.List()
}

// Invoke aracı çalıştırır. Yapılandırılmış şema tanımlayan araçlar JSON,
// diğerleri düz metin döndürür.
func (s *AIToolService) Invoke(ctx context.Context, userID uuid.UUID, req InvokeRequest) (*InvokeResult, error) {
	tool, err := s.catalog.Get(req.ToolID)
	if err != nil {
		return nil, ErrToolNotFound
	}
	values, err := toolcatalog.ValidateInput(tool, req.Values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolInvalidInput, err)
	}

	// Kredi önce düşülür; gateway hata verirse iade edilir
	remaining, err := s.userRepo.DebitCredits(ctx, userID, tool.CreditCost)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, ErrToolCreditsExhausted
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrToolUserNotFound
		}
		return nil, ErrToolInvocationFailed
	}

	messages := assembleMessages(tool, values, req.ImageURL)
	model := tool.Model
	if model == "" {
		model = s.catalog.Setting("default_model")
	}

	started := time.Now()
	var output string
	var structured json.RawMessage
	if tool.Structured {
		if tool.OutputSchema == "" {
			s.refund(ctx, userID, tool.CreditCost)
			return nil, ErrToolNotStructured
		}
		structured, err = s.gateway.CompleteStructured(ctx, model, messages, json.RawMessage(tool.OutputSchema))
		output = string(structured)
	} else {
		output, err = s.gateway.Complete(ctx, model, messages)
	}
	duration := time.Since(started).Milliseconds()

	if err != nil {
		s.refund(ctx, userID, tool.CreditCost)
		s.writeLog(ctx, userID, req, tool, models.ExecutionStatusError, values, "", err.Error(), 0, duration)
		return nil, s.mapGatewayError(err, req.ToolID)
	}

	s.writeLog(ctx, userID, req, tool, models.ExecutionStatusSuccess, values, output, "", tool.CreditCost, duration)
	return &InvokeResult{
		Output:           output,
		Structured:       structured,
		CreditsSpent:     tool.CreditCost,
		CreditsRemaining: remaining,
	}, nil
}

// StreamChat sohbet tamamlamasını parça parça iletir. Sohbet çağrıları kredi
// düşmez; kredi sadece katalog araçlarında tüketilir.
func (s *AIToolService) StreamChat(ctx context.Context, userID uuid.UUID, model string, messages []aigateway.Message, fn func(chunk string) error) error {
	if len(messages) == 0 {
		return ErrToolInvalidInput
	}
	if model == "" {
		model = s.catalog.Setting("default_model")
	}
	if err := s.gateway.CompleteStream(ctx, model, messages, fn); err != nil {
		return s.mapGatewayError(err, "chat")
	}
	return nil
}

// GetCreditBalance kullanıcının kredi bakiyesini okur.
func (s *AIToolService) GetCreditBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return 0, ErrToolUserNotFound
	}
	return user.Credits, nil
}

// GetExecutionLogs kullanıcının çağrı geçmişini sayfalayarak listeler.
func (s *AIToolService) GetExecutionLogs(ctx context.Context, userID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	logs, totalCount, err := s.logRepo.FindAllByOwnerPaginated(userID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(logs, params, totalCount), nil
}

// assembleMessages sistem prompt'u ve form değerlerinden mesaj listesi kurar.
// Alan değerleri "etiket: değer" satırları olarak tek kullanıcı mesajında toplanır.
func assembleMessages(tool toolcatalog.Tool, values map[string]string, imageURL string) []aigateway.Message {
	var b strings.Builder
	for _, f := range tool.Fields {
		v := values[f.ID]
		if v == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Label, v)
	}
	userMsg := aigateway.Message{
		Role:     aigateway.RoleUser,
		Content:  strings.TrimSpace(b.String()),
		ImageURL: imageURL,
	}
	return []aigateway.Message{
		{Role: aigateway.RoleSystem, Content: tool.SystemPrompt},
		userMsg,
	}
}

// refund gateway hatası sonrası düşülen krediyi geri yükler.
func (s *AIToolService) refund(ctx context.Context, userID uuid.UUID, amount int64) {
	if err := s.userRepo.CreditCredits(ctx, userID, amount); err != nil {
		configslog.Log.Error("Kredi iadesi yapılamadı",
			zap.String("user_id", userID.String()),
			zap.Int64("amount", amount),
			zap.Error(err))
	}
}

// writeLog çalıştırma kaydını yazar; kayıt hatası çağrı sonucunu etkilemez.
func (s *AIToolService) writeLog(ctx context.Context, userID uuid.UUID, req InvokeRequest, tool toolcatalog.Tool, status string, values map[string]string, output, errMsg string, spent, durationMS int64) {
	input := helpers.JSONBMap{}
	for k, v := range values {
		input[k] = v
	}
	logRow := &models.AIFlowExecutionLog{
		OwnerUserID:  userID,
		FunnelID:     req.FunnelID,
		ToolID:       tool.ID,
		Status:       status,
		Input:        input,
		ErrorMessage: errMsg,
		CreditsSpent: spent,
		DurationMS:   durationMS,
	}
	if output != "" {
		logRow.Output = helpers.JSONBMap{"content": output}
	}
	ctx = models.ContextWithUserID(ctx, userID)
	if err := s.logRepo.Create(ctx, logRow); err != nil {
		configslog.Log.Error("Çalıştırma kaydı yazılamadı",
			zap.String("tool_id", tool.ID), zap.Error(err))
	}
}

// mapGatewayError gateway hata taksonomisini servis hatalarına çevirir.
func (s *AIToolService) mapGatewayError(err error, toolID string) error {
	switch {
	case errors.Is(err, aigateway.ErrRateLimited):
		return ErrToolRateLimited
	case errors.Is(err, aigateway.ErrInsufficientCredits):
		return ErrToolCreditsExhausted
	}
	configslog.Log.Error("Gateway çağrısı başarısız", zap.String("tool_id", toolID), zap.Error(err))
	return ErrToolInvocationFailed
}

// Arayüz uyumluluğu kontrolü
var _ IAIToolService = (*AIToolService)(nil)
