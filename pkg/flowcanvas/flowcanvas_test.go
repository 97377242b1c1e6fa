package flowcanvas

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akis.link/models"
	"akis.link/pkg/flowstyle"
)

func newNode(t *testing.T, funnelID uuid.UUID, nodeType string, data models.NodeData) models.FunnelNode {
	t.Helper()
	encoded, err := models.EncodeNodeData(data)
	require.NoError(t, err)
	n := models.FunnelNode{FunnelID: funnelID, NodeType: nodeType, Data: encoded}
	n.ID = uuid.New()
	return n
}

func newGraph(t *testing.T) (uuid.UUID, []models.FunnelNode) {
	t.Helper()
	funnelID := uuid.New()
	a := newNode(t, funnelID, models.NodeTypeFunnelElement, models.FunnelElementData{Label: "A"})
	b := newNode(t, funnelID, models.NodeTypeFunnelElement, models.FunnelElementData{Label: "B"})
	c := newNode(t, funnelID, models.NodeTypeFunnelElement, models.FunnelElementData{Label: "C"})
	return funnelID, []models.FunnelNode{a, b, c}
}

func TestConnectDerivesStroke(t *testing.T) {
	funnelID, nodes := newGraph(t)

	edge, err := Connect(nodes, funnelID, nodes[0].ID, flowstyle.HandlePositive, nodes[1].ID, "in")
	require.NoError(t, err)
	assert.Equal(t, flowstyle.StrokePositive, edge.Stroke)

	edge, err = Connect(nodes, funnelID, nodes[0].ID, flowstyle.HandleNegative, nodes[2].ID, "in")
	require.NoError(t, err)
	assert.Equal(t, flowstyle.StrokeNegative, edge.Stroke)

	edge, err = Connect(nodes, funnelID, nodes[1].ID, "", nodes[2].ID, "in")
	require.NoError(t, err)
	assert.Equal(t, flowstyle.StrokeNeutral, edge.Stroke)
}

// Self-loop reddedilir, kenar oluşmaz.
func TestConnectRejectsSelfLoop(t *testing.T) {
	funnelID, nodes := newGraph(t)
	_, err := Connect(nodes, funnelID, nodes[0].ID, "out", nodes[0].ID, "in")
	assert.ErrorIs(t, err, ErrSelfConnection)
}

func TestConnectRejectsMissingNode(t *testing.T) {
	funnelID, nodes := newGraph(t)
	_, err := Connect(nodes, funnelID, nodes[0].ID, "out", uuid.New(), "in")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

// {A,B,C} ve A→B kenarı varken B silinince düğümler {A,C},
// kenarlar boş kalır.
func TestDeleteNodeCascadesEdges(t *testing.T) {
	funnelID, nodes := newGraph(t)
	edge, err := Connect(nodes, funnelID, nodes[0].ID, flowstyle.HandlePositive, nodes[1].ID, "in")
	require.NoError(t, err)
	edges := []models.FunnelEdge{edge}

	outNodes, outEdges, err := DeleteNode(nodes, edges, nodes[1].ID)
	require.NoError(t, err)
	assert.Len(t, outNodes, 2)
	assert.Empty(t, outEdges)
	assert.Equal(t, -1, FindNode(outNodes, nodes[1].ID))
}

func TestDeleteNodeKeepsUnrelatedEdges(t *testing.T) {
	funnelID, nodes := newGraph(t)
	ab, err := Connect(nodes, funnelID, nodes[0].ID, "", nodes[1].ID, "in")
	require.NoError(t, err)
	bc, err := Connect(nodes, funnelID, nodes[1].ID, "", nodes[2].ID, "in")
	require.NoError(t, err)
	ac, err := Connect(nodes, funnelID, nodes[0].ID, "", nodes[2].ID, "in")
	require.NoError(t, err)

	_, outEdges, err := DeleteNode(nodes, []models.FunnelEdge{ab, bc, ac}, nodes[1].ID)
	require.NoError(t, err)
	require.Len(t, outEdges, 1)
	assert.Equal(t, ac.ID, outEdges[0].ID)
}

// Kopya yeni bir kimlik alır, +50/+50 kayar ve hiçbir kenara bağlanmaz.
func TestDuplicateNodeIsolation(t *testing.T) {
	funnelID, nodes := newGraph(t)
	nodes[0].PositionX = 10
	nodes[0].PositionY = 20
	edge, err := Connect(nodes, funnelID, nodes[0].ID, flowstyle.HandlePositive, nodes[1].ID, "in")
	require.NoError(t, err)
	edges := []models.FunnelEdge{edge}

	clone, err := DuplicateNode(nodes, nodes[0].ID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, clone.ID)
	for _, n := range nodes {
		assert.NotEqual(t, n.ID, clone.ID)
	}
	assert.Equal(t, 60.0, clone.PositionX)
	assert.Equal(t, 70.0, clone.PositionY)
	assert.Equal(t, nodes[0].Data.GetString("label"), clone.Data.GetString("label"))
	for _, e := range edges {
		assert.NotEqual(t, clone.ID, e.SourceNodeID)
		assert.NotEqual(t, clone.ID, e.TargetNodeID)
	}
}

func TestDuplicateNodeCopiesDataDeep(t *testing.T) {
	_, nodes := newGraph(t)
	clone, err := DuplicateNode(nodes, nodes[0].ID)
	require.NoError(t, err)

	clone.Data["label"] = "değişti"
	assert.Equal(t, "A", nodes[0].Data.GetString("label"))
}

func TestRenameNode(t *testing.T) {
	_, nodes := newGraph(t)

	out, ok := RenameNode(nodes, nodes[1].ID, "Yeni Ad")
	assert.True(t, ok)
	assert.Equal(t, "Yeni Ad", out[1].Data.GetString("label"))
	// Orijinal dilim değişmemeli
	assert.Equal(t, "B", nodes[1].Data.GetString("label"))

	// Olmayan düğüm: no-op
	out, ok = RenameNode(nodes, uuid.New(), "X")
	assert.False(t, ok)
	assert.Equal(t, "B", out[1].Data.GetString("label"))
}

func TestMovePosition(t *testing.T) {
	_, nodes := newGraph(t)
	out, err := MovePosition(nodes, nodes[2].ID, 300, -12.5)
	require.NoError(t, err)
	assert.Equal(t, 300.0, out[2].PositionX)
	assert.Equal(t, -12.5, out[2].PositionY)

	_, err = MovePosition(nodes, uuid.New(), 0, 0)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestConnectedToolNodes(t *testing.T) {
	funnelID, nodes := newGraph(t)
	tool1 := newNode(t, funnelID, models.NodeTypeAITool, models.AIToolData{Label: "Araç 1", ToolID: "copywriter"})
	tool2 := newNode(t, funnelID, models.NodeTypeAITool, models.AIToolData{Label: "Araç 2", ToolID: "headline"})
	nodes = append(nodes, tool1, tool2)

	// tool1 hem kaynak hem hedef olarak bağlı: tek kez sayılmalı
	e1, err := Connect(nodes, funnelID, nodes[0].ID, "", tool1.ID, "in")
	require.NoError(t, err)
	e2, err := Connect(nodes, funnelID, tool1.ID, "", nodes[0].ID, "in")
	require.NoError(t, err)
	e3, err := Connect(nodes, funnelID, tool2.ID, "", nodes[0].ID, "in")
	require.NoError(t, err)
	// Araç olmayan komşu sayılmamalı
	e4, err := Connect(nodes, funnelID, nodes[0].ID, "", nodes[1].ID, "in")
	require.NoError(t, err)

	tools := ConnectedToolNodes(nodes, []models.FunnelEdge{e1, e2, e3, e4}, nodes[0].ID)
	require.Len(t, tools, 2)
	ids := []uuid.UUID{tools[0].ID, tools[1].ID}
	assert.Contains(t, ids, tool1.ID)
	assert.Contains(t, ids, tool2.ID)
}

func TestConnectedAttachmentNodes(t *testing.T) {
	funnelID, nodes := newGraph(t)
	att := newNode(t, funnelID, models.NodeTypeAttachment, models.AttachmentNodeData{Label: "Brief.pdf"})
	nodes = append(nodes, att)

	// attachment → A yönünde kenar: sayılır
	in, err := Connect(nodes, funnelID, att.ID, "", nodes[0].ID, "in")
	require.NoError(t, err)
	// A → attachment yönünde kenar: sayılmaz (sadece kaynak olarak bağlılar)
	outEdge, err := Connect(nodes, funnelID, nodes[1].ID, "", att.ID, "in")
	require.NoError(t, err)

	atts := ConnectedAttachmentNodes(nodes, []models.FunnelEdge{in, outEdge}, nodes[0].ID)
	require.Len(t, atts, 1)
	assert.Equal(t, att.ID, atts[0].ID)

	atts = ConnectedAttachmentNodes(nodes, []models.FunnelEdge{in, outEdge}, nodes[1].ID)
	assert.Empty(t, atts)
}

func TestPushToolOutput(t *testing.T) {
	funnelID, nodes := newGraph(t)
	chat := newNode(t, funnelID, models.NodeTypeAIChat, models.AIChatData{Label: "Sohbet"})
	tool := newNode(t, funnelID, models.NodeTypeAITool, models.AIToolData{Label: "Araç", ToolID: "copywriter", IsProcessing: true})
	nodes = append(nodes, chat, tool)

	edge, err := Connect(nodes, funnelID, chat.ID, "", tool.ID, "in")
	require.NoError(t, err)
	edges := []models.FunnelEdge{edge}

	out, err := PushToolOutput(nodes, edges, chat.ID, tool.ID, "üretilen metin")
	require.NoError(t, err)

	idx := FindNode(out, tool.ID)
	data, err := models.DecodeNodeData(out[idx].NodeType, out[idx].Data)
	require.NoError(t, err)
	toolData := data.(models.AIToolData)
	assert.Equal(t, "üretilen metin", toolData.Output)
	assert.False(t, toolData.IsProcessing)
}

func TestPushToolOutputRequiresConnection(t *testing.T) {
	funnelID, nodes := newGraph(t)
	chat := newNode(t, funnelID, models.NodeTypeAIChat, models.AIChatData{Label: "Sohbet"})
	tool := newNode(t, funnelID, models.NodeTypeAITool, models.AIToolData{ToolID: "copywriter"})
	nodes = append(nodes, chat, tool)

	_, err := PushToolOutput(nodes, nil, chat.ID, tool.ID, "x")
	assert.ErrorIs(t, err, ErrNotConnected)

	// Ters yönlü kenar da yeterli değil: itme chat → tool kenarını gerektirir
	reverse, err := Connect(nodes, funnelID, tool.ID, "", chat.ID, "in")
	require.NoError(t, err)
	_, err = PushToolOutput(nodes, []models.FunnelEdge{reverse}, chat.ID, tool.ID, "x")
	assert.ErrorIs(t, err, ErrNotConnected)
}

// Alakasız grafik mutasyonlarından sonra yeniden türetilen stiller sabit kalır.
func TestRederiveStrokes(t *testing.T) {
	funnelID, nodes := newGraph(t)
	e1, err := Connect(nodes, funnelID, nodes[0].ID, flowstyle.HandlePositive, nodes[1].ID, "in")
	require.NoError(t, err)
	e2, err := Connect(nodes, funnelID, nodes[1].ID, flowstyle.HandleNegative, nodes[2].ID, "in")
	require.NoError(t, err)

	// Stroke alanı dışarıdan bozulmuş olsun; projeksiyon düzeltmeli
	e1.Stroke = "#000000"
	// Kaynak handle değişmiş olsun; stil yeniden hesaplanmalı
	e2.SourceHandle = flowstyle.HandleNeutral

	out := RederiveStrokes([]models.FunnelEdge{e1, e2})
	assert.Equal(t, flowstyle.StrokePositive, out[0].Stroke)
	assert.Equal(t, flowstyle.StrokeNeutral, out[1].Stroke)
}

func TestValidateIntegrity(t *testing.T) {
	funnelID, nodes := newGraph(t)
	edge, err := Connect(nodes, funnelID, nodes[0].ID, "", nodes[1].ID, "in")
	require.NoError(t, err)

	assert.NoError(t, ValidateIntegrity(nodes, []models.FunnelEdge{edge}))

	// Ucu kopmuş kenar
	dangling := edge
	dangling.TargetNodeID = uuid.New()
	assert.ErrorIs(t, ValidateIntegrity(nodes, []models.FunnelEdge{dangling}), ErrNodeNotFound)
}
