// Package flowcanvas akış grafiğinin (node-graph canvas) saf çekirdeğidir.
// Tüm operasyonlar düğüm/kenar dilimleri üzerinde çalışır ve yeni dilimler
// döndürür; kalıcılık FunnelService'in işidir. Grafik bütünlüğü (self-loop,
// olmayan düğüm, cascade silme) kalıcılıktan önce burada uygulanır.
package flowcanvas

import (
	"errors"

	"github.com/google/uuid"

	"akis.link/models"
	"akis.link/pkg/flowstyle"
)

var (
	// ErrNodeNotFound operasyonun hedeflediği düğüm grafikte yok.
	ErrNodeNotFound = errors.New("flowcanvas: düğüm bulunamadı")
	// ErrSelfConnection bir düğüm kendisine bağlanamaz.
	ErrSelfConnection = errors.New("flowcanvas: düğüm kendisine bağlanamaz")
	// ErrNotConnected hedef düğüm kaynağa bağlı değil.
	ErrNotConnected = errors.New("flowcanvas: düğümler arasında bağlantı yok")
	// ErrWrongNodeType operasyon bu düğüm tipi için geçerli değil.
	ErrWrongNodeType = errors.New("flowcanvas: düğüm tipi bu operasyon için uygun değil")
)

// DuplicateOffset kopyalanan düğümün her iki eksende kaydırma miktarı.
// Kopya, orijinalin üstüne binmesin diye sabit +50,+50 kaydırılır.
const DuplicateOffset = 50.0

// FindNode kimliğe göre düğümü bulur; yoksa -1 döner.
func FindNode(nodes []models.FunnelNode, id uuid.UUID) int {
	for i := range nodes {
		if nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// MovePosition düğümü serbest 2D konuma taşır. Çarpışma çözümü yoktur.
func MovePosition(nodes []models.FunnelNode, id uuid.UUID, x, y float64) ([]models.FunnelNode, error) {
	idx := FindNode(nodes, id)
	if idx < 0 {
		return nodes, ErrNodeNotFound
	}
	out := cloneNodes(nodes)
	out[idx].PositionX = x
	out[idx].PositionY = y
	return out, nil
}

// Connect iki düğüm arasında yönlü kenar oluşturur.
// İki uç da var olmalı ve farklı düğümler olmalıdır; stroke rengi kaynak
// handle'dan bağlantı anında türetilir.
func Connect(nodes []models.FunnelNode, funnelID, sourceID uuid.UUID, sourceHandle string, targetID uuid.UUID, targetHandle string) (models.FunnelEdge, error) {
	if sourceID == targetID {
		return models.FunnelEdge{}, ErrSelfConnection
	}
	if FindNode(nodes, sourceID) < 0 || FindNode(nodes, targetID) < 0 {
		return models.FunnelEdge{}, ErrNodeNotFound
	}
	edge := models.FunnelEdge{
		FunnelID:     funnelID,
		SourceNodeID: sourceID,
		TargetNodeID: targetID,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
		Stroke:       flowstyle.StyleForHandle(sourceHandle),
	}
	edge.ID = uuid.New()
	return edge, nil
}

// DeleteNode düğümü ve o düğüme değen tüm kenarları kaldırır (cascade).
func DeleteNode(nodes []models.FunnelNode, edges []models.FunnelEdge, id uuid.UUID) ([]models.FunnelNode, []models.FunnelEdge, error) {
	idx := FindNode(nodes, id)
	if idx < 0 {
		return nodes, edges, ErrNodeNotFound
	}
	outNodes := make([]models.FunnelNode, 0, len(nodes)-1)
	outNodes = append(outNodes, nodes[:idx]...)
	outNodes = append(outNodes, nodes[idx+1:]...)

	outEdges := make([]models.FunnelEdge, 0, len(edges))
	for _, e := range edges {
		if e.SourceNodeID == id || e.TargetNodeID == id {
			continue
		}
		outEdges = append(outEdges, e)
	}
	return outNodes, outEdges, nil
}

// DuplicateNode düğümün veri yükünü kopyalar, yeni bir kimlik atar ve konumu
// sabit delta kadar kaydırır. Kenarlar kopyalanmaz; kopya bağlantısız başlar.
func DuplicateNode(nodes []models.FunnelNode, id uuid.UUID) (models.FunnelNode, error) {
	idx := FindNode(nodes, id)
	if idx < 0 {
		return models.FunnelNode{}, ErrNodeNotFound
	}
	src := nodes[idx]

	clone := models.FunnelNode{
		FunnelID:  src.FunnelID,
		NodeType:  src.NodeType,
		PositionX: src.PositionX + DuplicateOffset,
		PositionY: src.PositionY + DuplicateOffset,
		Data:      cloneData(src.Data),
	}
	clone.ID = uuid.New()
	return clone, nil
}

// RenameNode sadece veri yükündeki label alanını günceller.
// Düğüm yoksa no-op'tur (hata değil); değişmemiş dilim ve false döner.
func RenameNode(nodes []models.FunnelNode, id uuid.UUID, newLabel string) ([]models.FunnelNode, bool) {
	idx := FindNode(nodes, id)
	if idx < 0 {
		return nodes, false
	}
	data, err := models.DecodeNodeData(nodes[idx].NodeType, nodes[idx].Data)
	if err != nil {
		return nodes, false
	}
	encoded, err := models.EncodeNodeData(data.WithLabel(newLabel))
	if err != nil {
		return nodes, false
	}
	out := cloneNodes(nodes)
	out[idx].Data = encoded
	return out, true
}

// ConnectedToolNodes verilen düğüme herhangi bir kenar yönüyle bağlı tüm
// ai_tool düğümlerini döndürür (kimliğe göre tekilleştirilmiş).
// Kenar listesi üzerinde her çağrıda yeniden hesaplanır; önbellek tutulmaz.
func ConnectedToolNodes(nodes []models.FunnelNode, edges []models.FunnelEdge, id uuid.UUID) []models.FunnelNode {
	seen := map[uuid.UUID]bool{}
	var out []models.FunnelNode
	for _, e := range edges {
		var otherID uuid.UUID
		switch id {
		case e.SourceNodeID:
			otherID = e.TargetNodeID
		case e.TargetNodeID:
			otherID = e.SourceNodeID
		default:
			continue
		}
		if seen[otherID] {
			continue
		}
		if idx := FindNode(nodes, otherID); idx >= 0 && nodes[idx].NodeType == models.NodeTypeAITool {
			seen[otherID] = true
			out = append(out, nodes[idx])
		}
	}
	return out
}

// ConnectedAttachmentNodes verilen düğüme kaynak olarak bağlı attachment
// düğümlerini döndürür (attachment → düğüm yönündeki kenarlar).
func ConnectedAttachmentNodes(nodes []models.FunnelNode, edges []models.FunnelEdge, id uuid.UUID) []models.FunnelNode {
	seen := map[uuid.UUID]bool{}
	var out []models.FunnelNode
	for _, e := range edges {
		if e.TargetNodeID != id || seen[e.SourceNodeID] {
			continue
		}
		if idx := FindNode(nodes, e.SourceNodeID); idx >= 0 && nodes[idx].NodeType == models.NodeTypeAttachment {
			seen[e.SourceNodeID] = true
			out = append(out, nodes[idx])
		}
	}
	return out
}

// PushToolOutput sohbet düğümünün çıktısını, ona kenarla bağlı hedef araç
// düğümünün output alanına yazar ve is_processing bayrağını temizler.
// Tek yönlü ve tek seferlik bir itmedir; canlı bir bağ kurulmaz.
func PushToolOutput(nodes []models.FunnelNode, edges []models.FunnelEdge, chatNodeID, toolNodeID uuid.UUID, output string) ([]models.FunnelNode, error) {
	chatIdx := FindNode(nodes, chatNodeID)
	toolIdx := FindNode(nodes, toolNodeID)
	if chatIdx < 0 || toolIdx < 0 {
		return nodes, ErrNodeNotFound
	}
	if nodes[chatIdx].NodeType != models.NodeTypeAIChat || nodes[toolIdx].NodeType != models.NodeTypeAITool {
		return nodes, ErrWrongNodeType
	}

	connected := false
	for _, e := range edges {
		if e.SourceNodeID == chatNodeID && e.TargetNodeID == toolNodeID {
			connected = true
			break
		}
	}
	if !connected {
		return nodes, ErrNotConnected
	}

	data, err := models.DecodeNodeData(nodes[toolIdx].NodeType, nodes[toolIdx].Data)
	if err != nil {
		return nodes, err
	}
	toolData, ok := data.(models.AIToolData)
	if !ok {
		return nodes, ErrWrongNodeType
	}
	toolData.Output = output
	toolData.IsProcessing = false

	encoded, err := models.EncodeNodeData(toolData)
	if err != nil {
		return nodes, err
	}
	out := cloneNodes(nodes)
	out[toolIdx].Data = encoded
	return out, nil
}

// RederiveStrokes tüm kenarların stroke rengini kaynak handle'dan yeniden
// türetir. Stil bağımsız durum olmadığı için her grafik yazımından sonra çağrılır.
func RederiveStrokes(edges []models.FunnelEdge) []models.FunnelEdge {
	out := make([]models.FunnelEdge, len(edges))
	copy(out, edges)
	for i := range out {
		out[i].Stroke = flowstyle.StyleForHandle(out[i].SourceHandle)
	}
	return out
}

// ValidateIntegrity tüm kenar uçlarının mevcut düğümlere işaret ettiğini doğrular.
func ValidateIntegrity(nodes []models.FunnelNode, edges []models.FunnelEdge) error {
	for _, e := range edges {
		if FindNode(nodes, e.SourceNodeID) < 0 || FindNode(nodes, e.TargetNodeID) < 0 {
			return ErrNodeNotFound
		}
	}
	return nil
}

func cloneNodes(nodes []models.FunnelNode) []models.FunnelNode {
	out := make([]models.FunnelNode, len(nodes))
	copy(out, nodes)
	return out
}

func cloneData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
