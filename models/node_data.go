package models

import (
	"encoding/json"
	"fmt"

	"akis.link/models/helpers"
)

// Düğüm tipleri. Her tipin Data içeriği kendi sabit alan kümesine sahiptir;
// serbest map yerine aşağıdaki tipli varyantlar üzerinden erişilir.
const (
	NodeTypeFunnelElement = "funnel_element"
	NodeTypeAITool        = "ai_tool"
	NodeTypeAIChat        = "ai_chat"
	NodeTypeTextCard      = "text_card"
	NodeTypeAttachment    = "attachment"
)

// NodeData düğüm tipine göre ayrışan veri varyantlarının ortak arayüzü.
type NodeData interface {
	NodeDataType() string
	NodeLabel() string
	WithLabel(label string) NodeData
}

// FunnelElementData klasik huni adımı. Üç adet isimli çıkış portu vardır
// (neutral/positive/negative); port anlamları pkg/flowstyle'da sabitlenmiştir.
type FunnelElementData struct {
	Label string `json:"label"`
	Kind  string `json:"kind,omitempty"` // Örn: landing, email, checkout
}

func (d FunnelElementData) NodeDataType() string { return NodeTypeFunnelElement }
func (d FunnelElementData) NodeLabel() string    { return d.Label }
func (d FunnelElementData) WithLabel(l string) NodeData {
	d.Label = l
	return d
}

// AIToolData bir AI aracını temsil eden düğüm. Output alanı, bağlı bir
// ai_chat düğümünden kullanıcı aksiyonuyla itilen çıktıyı taşır.
type AIToolData struct {
	Label        string `json:"label"`
	ToolID       string `json:"tool_id"`
	Output       string `json:"output,omitempty"`
	IsProcessing bool   `json:"is_processing,omitempty"`
}

func (d AIToolData) NodeDataType() string { return NodeTypeAITool }
func (d AIToolData) NodeLabel() string    { return d.Label }
func (d AIToolData) WithLabel(l string) NodeData {
	d.Label = l
	return d
}

// AIChatData sohbet düğümü; Model seçimi gateway'e iletilir.
type AIChatData struct {
	Label string `json:"label"`
	Model string `json:"model,omitempty"`
}

func (d AIChatData) NodeDataType() string { return NodeTypeAIChat }
func (d AIChatData) NodeLabel() string    { return d.Label }
func (d AIChatData) WithLabel(l string) NodeData {
	d.Label = l
	return d
}

// TextCardData serbest metin kartı.
type TextCardData struct {
	Label   string `json:"label"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

func (d TextCardData) NodeDataType() string { return NodeTypeTextCard }
func (d TextCardData) NodeLabel() string    { return d.Label }
func (d TextCardData) WithLabel(l string) NodeData {
	d.Label = l
	return d
}

// AttachmentNodeData canvas'a iliştirilmiş dosya düğümü.
type AttachmentNodeData struct {
	Label    string `json:"label"`
	FileURL  string `json:"file_url,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

func (d AttachmentNodeData) NodeDataType() string { return NodeTypeAttachment }
func (d AttachmentNodeData) NodeLabel() string    { return d.Label }
func (d AttachmentNodeData) WithLabel(l string) NodeData {
	d.Label = l
	return d
}

// DecodeNodeData JSONB içeriğini düğüm tipine göre tipli varyanta çözer.
// Bilinmeyen tip hatadır; sessizce serbest map'e düşülmez.
func DecodeNodeData(nodeType string, raw helpers.JSONBMap) (NodeData, error) {
	b, err := json.Marshal(map[string]interface{}(raw))
	if err != nil {
		return nil, err
	}
	switch nodeType {
	case NodeTypeFunnelElement:
		var d FunnelElementData
		err = json.Unmarshal(b, &d)
		return d, err
	case NodeTypeAITool:
		var d AIToolData
		err = json.Unmarshal(b, &d)
		return d, err
	case NodeTypeAIChat:
		var d AIChatData
		err = json.Unmarshal(b, &d)
		return d, err
	case NodeTypeTextCard:
		var d TextCardData
		err = json.Unmarshal(b, &d)
		return d, err
	case NodeTypeAttachment:
		var d AttachmentNodeData
		err = json.Unmarshal(b, &d)
		return d, err
	}
	return nil, fmt.Errorf("bilinmeyen düğüm tipi: %q", nodeType)
}

// EncodeNodeData tipli varyantı JSONB map'e çevirir.
func EncodeNodeData(data NodeData) (helpers.JSONBMap, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var m helpers.JSONBMap
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
