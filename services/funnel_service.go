// services/funnel_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"akis.link/configs"
	"akis.link/configs/configslog"
	"akis.link/models"
	"akis.link/pkg/flowcanvas"
	"akis.link/pkg/queryparams"
	"akis.link/repositories"
	"akis.link/utils"
)

// FunnelServiceError özel servis hataları
type FunnelServiceError string

func (e FunnelServiceError) Error() string { return string(e) }

const (
	ErrFunnelNotFound       FunnelServiceError = "akış bulunamadı"
	ErrFunnelCreationFailed FunnelServiceError = "akış oluşturulamadı"
	ErrFunnelUpdateFailed   FunnelServiceError = "akış güncellenemedi"
	ErrFunnelDeletionFailed FunnelServiceError = "akış silinemedi"
	ErrFunnelForbidden      FunnelServiceError = "bu işlem için yetkiniz yok"
	ErrFunInvalidInput      FunnelServiceError = "geçersiz girdi verisi"
	ErrFunnelNameRequired   FunnelServiceError = "akış adı zorunludur"
	ErrFunNodeNotFound      FunnelServiceError = "düğüm bulunamadı"
	ErrFunEdgeNotFound      FunnelServiceError = "bağlantı bulunamadı"
)

// Paylaşım anahtarı uzunluğu.
const shareKeyLength = 16

// IFunnelService akış grafiği işlemleri için arayüz.
// Grafik kuralları pkg/flowcanvas'ta uygulanır; bu katman sahiplik kontrolü,
// kalıcılık ve stroke yeniden türetimini üstlenir.
type IFunnelService interface {
	// Akış
	CreateFunnel(ctx context.Context, ownerID uuid.UUID, name, kind string) (*models.Funnel, error)
	GetFunnelWithGraph(ctx context.Context, id, requestingUserID uuid.UUID) (*models.Funnel, error)
	GetFunnelsForUserPaginated(ctx context.Context, ownerID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	RenameFunnel(ctx context.Context, id, updatingUserID uuid.UUID, name string) error
	DeleteFunnel(ctx context.Context, id, deletingUserID uuid.UUID) error

	// Paylaşım
	EnableShare(ctx context.Context, id, requestingUserID uuid.UUID) (string, error)
	DisableShare(ctx context.Context, id, requestingUserID uuid.UUID) error
	GetFunnelByShareKey(ctx context.Context, key string) (*models.Funnel, error)

	// Grafik
	AddNode(ctx context.Context, funnelID, requestingUserID uuid.UUID, nodeType string, x, y float64, data models.NodeData) (*models.FunnelNode, error)
	MoveNode(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID, x, y float64) error
	ConnectNodes(ctx context.Context, funnelID, requestingUserID uuid.UUID, sourceID uuid.UUID, sourceHandle string, targetID uuid.UUID, targetHandle string) (*models.FunnelEdge, error)
	DeleteNode(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID) error
	DuplicateNode(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID) (*models.FunnelNode, error)
	RenameNode(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID, newLabel string) error
	DeleteEdge(ctx context.Context, funnelID, edgeID, requestingUserID uuid.UUID) error
	GetConnectedToolNodes(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID) ([]models.FunnelNode, error)
	GetConnectedAttachmentNodes(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID) ([]models.FunnelNode, error)
	PushToolOutput(ctx context.Context, funnelID, chatNodeID, toolNodeID, requestingUserID uuid.UUID, output string) error
}

// FunnelService IFunnelService arayüzünü uygular.
type FunnelService struct {
	funnelRepo repositories.IFunnelRepository
	graphRepo  repositories.IFunnelGraphRepository
	db         *gorm.DB
}

// NewFunnelService yeni bir FunnelService örneği oluşturur.
func NewFunnelService() IFunnelService {
	return NewFunnelServiceTx(configs.GetDB())
}

// NewFunnelServiceTx verilen DB bağlantısıyla örnek oluşturur (test için).
func NewFunnelServiceTx(db *gorm.DB) IFunnelService {
	return &FunnelService{
		funnelRepo: repositories.NewFunnelRepositoryTx(db),
		graphRepo:  repositories.NewFunnelGraphRepositoryTx(db),
		db:         db,
	}
}

// --- Akış ---

// CreateFunnel yeni akış oluşturur. Paylaşım kapalı başlar.
func (s *FunnelService) CreateFunnel(ctx context.Context, ownerID uuid.UUID, name, kind string) (*models.Funnel, error) {
	if name == "" {
		return nil, ErrFunnelNameRequired
	}
	if kind == "" {
		kind = models.FunnelKindFunnel
	}
	if kind != models.FunnelKindFunnel && kind != models.FunnelKindAIFlow {
		return nil, fmt.Errorf("%w: geçersiz akış türü: %s", ErrFunInvalidInput, kind)
	}

	ctx = models.ContextWithUserID(ctx, ownerID)
	funnel := &models.Funnel{
		OwnerUserID: ownerID,
		Name:        name,
		Kind:        kind,
	}
	if err := s.funnelRepo.Create(ctx, funnel); err != nil {
		configslog.Log.Error("Akış oluşturulamadı", zap.String("name", name), zap.Error(err))
		return nil, ErrFunnelCreationFailed
	}
	return funnel, nil
}

// GetFunnelWithGraph akışı düğüm ve kenarlarıyla getirir.
func (s *FunnelService) GetFunnelWithGraph(ctx context.Context, id, requestingUserID uuid.UUID) (*models.Funnel, error) {
	funnel, err := s.funnelRepo.FindByIDWithGraph(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFunnelNotFound
		}
		return nil, err
	}
	if funnel.OwnerUserID != requestingUserID {
		return nil, ErrFunnelForbidden
	}
	return funnel, nil
}

// GetFunnelsForUserPaginated kullanıcının akışlarını sayfalayarak listeler.
func (s *FunnelService) GetFunnelsForUserPaginated(ctx context.Context, ownerID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	funnels, totalCount, err := s.funnelRepo.FindAllByOwnerPaginated(ownerID, params)
	if err != nil {
		configslog.Log.Error("Akış listesi alınamadı", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return nil, err
	}
	return queryparams.NewPaginatedResult(funnels, params, totalCount), nil
}

// RenameFunnel akışın adını günceller.
func (s *FunnelService) RenameFunnel(ctx context.Context, id, updatingUserID uuid.UUID, name string) error {
	if name == "" {
		return ErrFunnelNameRequired
	}
	if _, err := s.ownedFunnel(ctx, id, updatingUserID); err != nil {
		return err
	}
	ctx = models.ContextWithUserID(ctx, updatingUserID)
	if err := s.funnelRepo.Update(ctx, id, map[string]interface{}{"name": name}); err != nil {
		configslog.Log.Error("Akış güncellenemedi", zap.String("funnel_id", id.String()), zap.Error(err))
		return ErrFunnelUpdateFailed
	}
	return nil
}

// DeleteFunnel akışı tüm düğüm ve kenarlarıyla siler.
func (s *FunnelService) DeleteFunnel(ctx context.Context, id, deletingUserID uuid.UUID) error {
	if _, err := s.ownedFunnel(ctx, id, deletingUserID); err != nil {
		return err
	}
	ctx = models.ContextWithUserID(ctx, deletingUserID)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("funnel_id = ?", id).Delete(&models.FunnelEdge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("funnel_id = ?", id).Delete(&models.FunnelNode{}).Error; err != nil {
			return err
		}
		return repositories.NewFunnelRepositoryTx(tx).Delete(ctx, id)
	})
	if err != nil {
		configslog.Log.Error("Akış silinemedi", zap.String("funnel_id", id.String()), zap.Error(err))
		return ErrFunnelDeletionFailed
	}
	configslog.SLog.Infof("Akış silindi: %s (kullanıcı: %s)", id, deletingUserID)
	return nil
}

// --- Paylaşım ---

// EnableShare akış için paylaşım anahtarı üretir; varsa mevcut anahtar döner.
func (s *FunnelService) EnableShare(ctx context.Context, id, requestingUserID uuid.UUID) (string, error) {
	funnel, err := s.ownedFunnel(ctx, id, requestingUserID)
	if err != nil {
		return "", err
	}
	if funnel.ShareKey != "" {
		return funnel.ShareKey, nil
	}
	key, err := utils.GenerateSecureRandomString(shareKeyLength)
	if err != nil {
		return "", ErrFunnelUpdateFailed
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	if err := s.funnelRepo.Update(ctx, id, map[string]interface{}{"share_key": key}); err != nil {
		configslog.Log.Error("Paylaşım anahtarı yazılamadı", zap.String("funnel_id", id.String()), zap.Error(err))
		return "", ErrFunnelUpdateFailed
	}
	return key, nil
}

// DisableShare paylaşım anahtarını temizler.
func (s *FunnelService) DisableShare(ctx context.Context, id, requestingUserID uuid.UUID) error {
	if _, err := s.ownedFunnel(ctx, id, requestingUserID); err != nil {
		return err
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	return s.funnelRepo.Update(ctx, id, map[string]interface{}{"share_key": ""})
}

// GetFunnelByShareKey public salt-okunur erişim; sahiplik kontrolü yoktur.
func (s *FunnelService) GetFunnelByShareKey(ctx context.Context, key string) (*models.Funnel, error) {
	funnel, err := s.funnelRepo.FindByShareKey(ctx, key)
	if err != nil {
		return nil, ErrFunnelNotFound
	}
	return funnel, nil
}

// --- Grafik ---

// AddNode canvas'a yeni düğüm ekler.
func (s *FunnelService) AddNode(ctx context.Context, funnelID, requestingUserID uuid.UUID, nodeType string, x, y float64, data models.NodeData) (*models.FunnelNode, error) {
	if _, err := s.ownedFunnel(ctx, funnelID, requestingUserID); err != nil {
		return nil, err
	}
	if data == nil || data.NodeDataType() != nodeType {
		return nil, fmt.Errorf("%w: düğüm verisi tipi uyumsuz", ErrFunInvalidInput)
	}
	encoded, err := models.EncodeNodeData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFunInvalidInput, err)
	}

	ctx = models.ContextWithUserID(ctx, requestingUserID)
	node := &models.FunnelNode{
		FunnelID:  funnelID,
		NodeType:  nodeType,
		PositionX: x,
		PositionY: y,
		Data:      encoded,
	}
	if err := s.graphRepo.CreateNode(ctx, node); err != nil {
		configslog.Log.Error("Düğüm eklenemedi", zap.String("funnel_id", funnelID.String()), zap.Error(err))
		return nil, ErrFunnelUpdateFailed
	}
	return node, nil
}

// MoveNode düğümü yeni 2D konuma taşır.
func (s *FunnelService) MoveNode(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID, x, y float64) error {
	nodes, _, err := s.ownedGraph(ctx, funnelID, requestingUserID)
	if err != nil {
		return err
	}
	if _, err := flowcanvas.MovePosition(nodes, nodeID, x, y); err != nil {
		return ErrFunNodeNotFound
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	if err := s.graphRepo.UpdateNodePosition(ctx, nodeID, x, y); err != nil {
		return ErrFunnelUpdateFailed
	}
	return nil
}

// ConnectNodes iki düğüm arasında kenar oluşturur. Kenar stroke'u bağlantı
// anında kaynak handle'dan türetilir.
func (s *FunnelService) ConnectNodes(ctx context.Context, funnelID, requestingUserID uuid.UUID, sourceID uuid.UUID, sourceHandle string, targetID uuid.UUID, targetHandle string) (*models.FunnelEdge, error) {
	nodes, _, err := s.ownedGraph(ctx, funnelID, requestingUserID)
	if err != nil {
		return nil, err
	}
	edge, err := flowcanvas.Connect(nodes, funnelID, sourceID, sourceHandle, targetID, targetHandle)
	if err != nil {
		if errors.Is(err, flowcanvas.ErrSelfConnection) {
			return nil, fmt.Errorf("%w: düğüm kendisine bağlanamaz", ErrFunInvalidInput)
		}
		return nil, ErrFunNodeNotFound
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	if err := s.graphRepo.CreateEdge(ctx, &edge); err != nil {
		configslog.Log.Error("Bağlantı oluşturulamadı", zap.String("funnel_id", funnelID.String()), zap.Error(err))
		return nil, ErrFunnelUpdateFailed
	}
	return &edge, nil
}

// DeleteNode düğümü ve değen tüm kenarları siler (cascade).
func (s *FunnelService) DeleteNode(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID) error {
	nodes, edges, err := s.ownedGraph(ctx, funnelID, requestingUserID)
	if err != nil {
		return err
	}
	if _, _, err := flowcanvas.DeleteNode(nodes, edges, nodeID); err != nil {
		return ErrFunNodeNotFound
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	if err := s.graphRepo.DeleteNodeWithEdges(ctx, nodeID); err != nil {
		configslog.Log.Error("Düğüm silinemedi", zap.String("node_id", nodeID.String()), zap.Error(err))
		return ErrFunnelDeletionFailed
	}
	return nil
}

// DuplicateNode düğümün kopyasını +50,+50 kaydırılmış konumda oluşturur.
// Kenarlar kopyalanmaz.
func (s *FunnelService) DuplicateNode(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID) (*models.FunnelNode, error) {
	nodes, _, err := s.ownedGraph(ctx, funnelID, requestingUserID)
	if err != nil {
		return nil, err
	}
	clone, err := flowcanvas.DuplicateNode(nodes, nodeID)
	if err != nil {
		return nil, ErrFunNodeNotFound
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	if err := s.graphRepo.CreateNode(ctx, &clone); err != nil {
		configslog.Log.Error("Düğüm kopyalanamadı", zap.String("node_id", nodeID.String()), zap.Error(err))
		return nil, ErrFunnelUpdateFailed
	}
	return &clone, nil
}

// RenameNode düğümün label alanını günceller. Düğüm yoksa sessiz no-op'tur.
func (s *FunnelService) RenameNode(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID, newLabel string) error {
	nodes, _, err := s.ownedGraph(ctx, funnelID, requestingUserID)
	if err != nil {
		return err
	}
	renamed, changed := flowcanvas.RenameNode(nodes, nodeID, newLabel)
	if !changed {
		return nil
	}
	idx := flowcanvas.FindNode(renamed, nodeID)
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	if err := s.graphRepo.UpdateNodeData(ctx, nodeID, renamed[idx].Data); err != nil {
		return ErrFunnelUpdateFailed
	}
	return nil
}

// DeleteEdge tek bir kenarı siler; düğümlere dokunmaz.
func (s *FunnelService) DeleteEdge(ctx context.Context, funnelID, edgeID, requestingUserID uuid.UUID) error {
	if _, err := s.ownedFunnel(ctx, funnelID, requestingUserID); err != nil {
		return err
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	if err := s.graphRepo.DeleteEdge(ctx, edgeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFunEdgeNotFound
		}
		return ErrFunnelDeletionFailed
	}
	return nil
}

// GetConnectedToolNodes düğüme herhangi bir yönle bağlı ai_tool düğümlerini döndürür.
func (s *FunnelService) GetConnectedToolNodes(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID) ([]models.FunnelNode, error) {
	nodes, edges, err := s.ownedGraph(ctx, funnelID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return flowcanvas.ConnectedToolNodes(nodes, edges, nodeID), nil
}

// GetConnectedAttachmentNodes düğüme kaynak olarak bağlı attachment düğümlerini döndürür.
func (s *FunnelService) GetConnectedAttachmentNodes(ctx context.Context, funnelID, nodeID, requestingUserID uuid.UUID) ([]models.FunnelNode, error) {
	nodes, edges, err := s.ownedGraph(ctx, funnelID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return flowcanvas.ConnectedAttachmentNodes(nodes, edges, nodeID), nil
}

// PushToolOutput sohbet çıktısını bağlı araç düğümünün output alanına iter.
// Tek yönlü, tek seferlik kullanıcı aksiyonudur.
func (s *FunnelService) PushToolOutput(ctx context.Context, funnelID, chatNodeID, toolNodeID, requestingUserID uuid.UUID, output string) error {
	nodes, edges, err := s.ownedGraph(ctx, funnelID, requestingUserID)
	if err != nil {
		return err
	}
	updated, err := flowcanvas.PushToolOutput(nodes, edges, chatNodeID, toolNodeID, output)
	if err != nil {
		switch {
		case errors.Is(err, flowcanvas.ErrNodeNotFound):
			return ErrFunNodeNotFound
		case errors.Is(err, flowcanvas.ErrNotConnected), errors.Is(err, flowcanvas.ErrWrongNodeType):
			return fmt.Errorf("%w: %v", ErrFunInvalidInput, err)
		}
		return ErrFunnelUpdateFailed
	}
	idx := flowcanvas.FindNode(updated, toolNodeID)
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	if err := s.graphRepo.UpdateNodeData(ctx, toolNodeID, updated[idx].Data); err != nil {
		return ErrFunnelUpdateFailed
	}
	return nil
}

// --- Yardımcılar ---

// ownedFunnel akışı getirir ve sahipliği doğrular.
func (s *FunnelService) ownedFunnel(ctx context.Context, id, userID uuid.UUID) (*models.Funnel, error) {
	funnel, err := s.funnelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrFunnelNotFound
	}
	if funnel.OwnerUserID != userID {
		return nil, ErrFunnelForbidden
	}
	return funnel, nil
}

// ownedGraph sahiplik kontrolünden sonra grafiği yükler ve kenar stroke'larını
// kaynak handle'dan yeniden türetir. Kalıcı stroke değeri türetilmiş değerden
// saptıysa (el ile yazılmış eski satırlar) düzeltme geri yazılır.
func (s *FunnelService) ownedGraph(ctx context.Context, funnelID, userID uuid.UUID) ([]models.FunnelNode, []models.FunnelEdge, error) {
	if _, err := s.ownedFunnel(ctx, funnelID, userID); err != nil {
		return nil, nil, err
	}
	nodes, edges, err := s.graphRepo.GetGraph(ctx, funnelID)
	if err != nil {
		return nil, nil, err
	}

	rederived := flowcanvas.RederiveStrokes(edges)
	var stale []models.FunnelEdge
	for i := range edges {
		if edges[i].Stroke != rederived[i].Stroke {
			stale = append(stale, rederived[i])
		}
	}
	if len(stale) > 0 {
		if err := s.graphRepo.UpdateEdgeStrokes(ctx, stale); err != nil {
			configslog.Log.Warn("Kenar stilleri güncellenemedi",
				zap.String("funnel_id", funnelID.String()), zap.Error(err))
		}
	}
	return nodes, rederived, nil
}

// Arayüz uyumluluğu kontrolü
var _ IFunnelService = (*FunnelService)(nil)
