// repositories/funnel_graph_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"akis.link/configs/configsdatabase"
	"akis.link/models"
	"akis.link/models/helpers"
)

// IFunnelGraphRepository düğüm ve kenar satırlarının işlemleri için arayüz.
// Grafik bütünlüğü (cascade, self-loop) kalıcılıktan önce pkg/flowcanvas'ta
// doğrulanır; burada sadece satır işlemleri yapılır.
type IFunnelGraphRepository interface {
	GetGraph(ctx context.Context, funnelID uuid.UUID) ([]models.FunnelNode, []models.FunnelEdge, error)
	CreateNode(ctx context.Context, node *models.FunnelNode) error
	FindNodeByID(ctx context.Context, id uuid.UUID) (*models.FunnelNode, error)
	UpdateNodePosition(ctx context.Context, id uuid.UUID, x, y float64) error
	UpdateNodeData(ctx context.Context, id uuid.UUID, data helpers.JSONBMap) error
	DeleteNodeWithEdges(ctx context.Context, nodeID uuid.UUID) error
	CreateEdge(ctx context.Context, edge *models.FunnelEdge) error
	DeleteEdge(ctx context.Context, id uuid.UUID) error
	UpdateEdgeStrokes(ctx context.Context, edges []models.FunnelEdge) error
}

// FunnelGraphRepository IFunnelGraphRepository arayüzünü uygular.
type FunnelGraphRepository struct {
	db *gorm.DB
}

// NewFunnelGraphRepository yeni bir örnek oluşturur.
func NewFunnelGraphRepository() IFunnelGraphRepository {
	return NewFunnelGraphRepositoryTx(configsdatabase.GetDB())
}

// NewFunnelGraphRepositoryTx transaction içinde kullanılacak örneği oluşturur.
func NewFunnelGraphRepositoryTx(db *gorm.DB) IFunnelGraphRepository {
	return &FunnelGraphRepository{db: db}
}

// GetGraph akışın tüm düğüm ve kenarlarını döndürür.
func (r *FunnelGraphRepository) GetGraph(ctx context.Context, funnelID uuid.UUID) ([]models.FunnelNode, []models.FunnelEdge, error) {
	var nodes []models.FunnelNode
	if err := r.db.WithContext(ctx).Where("funnel_id = ?", funnelID).Find(&nodes).Error; err != nil {
		return nil, nil, err
	}
	var edges []models.FunnelEdge
	if err := r.db.WithContext(ctx).Where("funnel_id = ?", funnelID).Find(&edges).Error; err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

func (r *FunnelGraphRepository) CreateNode(ctx context.Context, node *models.FunnelNode) error {
	return r.db.WithContext(ctx).Create(node).Error
}

func (r *FunnelGraphRepository) FindNodeByID(ctx context.Context, id uuid.UUID) (*models.FunnelNode, error) {
	var node models.FunnelNode
	err := r.db.WithContext(ctx).First(&node, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *FunnelGraphRepository) UpdateNodePosition(ctx context.Context, id uuid.UUID, x, y float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.FunnelNode{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"position_x": x, "position_y": y})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FunnelGraphRepository) UpdateNodeData(ctx context.Context, id uuid.UUID, data helpers.JSONBMap) error {
	result := r.db.WithContext(ctx).
		Model(&models.FunnelNode{}).
		Where("id = ?", id).
		Update("data", data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNodeWithEdges düğümü ve ona değen tüm kenarları tek transaction'da siler.
func (r *FunnelGraphRepository) DeleteNodeWithEdges(ctx context.Context, nodeID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("source_node_id = ? OR target_node_id = ?", nodeID, nodeID).
			Delete(&models.FunnelEdge{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", nodeID).Delete(&models.FunnelNode{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *FunnelGraphRepository) CreateEdge(ctx context.Context, edge *models.FunnelEdge) error {
	return r.db.WithContext(ctx).Create(edge).Error
}

func (r *FunnelGraphRepository) DeleteEdge(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FunnelEdge{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateEdgeStrokes yeniden türetilmiş stroke değerlerini yazar.
func (r *FunnelGraphRepository) UpdateEdgeStrokes(ctx context.Context, edges []models.FunnelEdge) error {
	for _, edge := range edges {
		err := r.db.WithContext(ctx).
			Model(&models.FunnelEdge{}).
			Where("id = ?", edge.ID).
			Update("stroke", edge.Stroke).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IFunnelGraphRepository = (*FunnelGraphRepository)(nil)
