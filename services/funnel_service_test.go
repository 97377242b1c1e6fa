package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"akis.link/models"
	"akis.link/pkg/flowcanvas"
	"akis.link/pkg/flowstyle"
)

// newTestFunnel ai_flow türünde boş bir akış oluşturur.
func newTestFunnel(t *testing.T, svc IFunnelService, ownerID uuid.UUID) *models.Funnel {
	t.Helper()
	funnel, err := svc.CreateFunnel(context.Background(), ownerID, "Test Akışı", models.FunnelKindAIFlow)
	require.NoError(t, err)
	return funnel
}

func addElementNode(t *testing.T, svc IFunnelService, funnelID, ownerID uuid.UUID, label string, x, y float64) *models.FunnelNode {
	t.Helper()
	node, err := svc.AddNode(context.Background(), funnelID, ownerID, models.NodeTypeFunnelElement, x, y,
		models.FunnelElementData{Label: label})
	require.NoError(t, err)
	return node
}

func TestCreateFunnelValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	ctx := context.Background()

	_, err := svc.CreateFunnel(ctx, user.ID, "", models.FunnelKindFunnel)
	assert.ErrorIs(t, err, ErrFunnelNameRequired)

	_, err = svc.CreateFunnel(ctx, user.ID, "Huni", "pipeline")
	assert.ErrorIs(t, err, ErrFunInvalidInput)

	// Tür verilmezse klasik huni varsayılır
	funnel, err := svc.CreateFunnel(ctx, user.ID, "Huni", "")
	require.NoError(t, err)
	assert.Equal(t, models.FunnelKindFunnel, funnel.Kind)
	assert.Empty(t, funnel.ShareKey)
}

func TestAddNodeTypeMismatchRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)

	_, err := svc.AddNode(context.Background(), funnel.ID, user.ID, models.NodeTypeAIChat, 0, 0,
		models.FunnelElementData{Label: "Uyumsuz"})
	assert.ErrorIs(t, err, ErrFunInvalidInput)
}

func TestConnectNodesDerivesStroke(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	ctx := context.Background()

	a := addElementNode(t, svc, funnel.ID, user.ID, "Landing", 0, 0)
	b := addElementNode(t, svc, funnel.ID, user.ID, "Checkout", 200, 0)

	edge, err := svc.ConnectNodes(ctx, funnel.ID, user.ID, a.ID, flowstyle.HandlePositive, b.ID, "")
	require.NoError(t, err)
	assert.Equal(t, flowstyle.StrokePositive, edge.Stroke)

	// Kendine bağlantı reddedilir
	_, err = svc.ConnectNodes(ctx, funnel.ID, user.ID, a.ID, "", a.ID, "")
	assert.ErrorIs(t, err, ErrFunInvalidInput)

	// Olmayan düğüm reddedilir
	_, err = svc.ConnectNodes(ctx, funnel.ID, user.ID, a.ID, "", uuid.New(), "")
	assert.ErrorIs(t, err, ErrFunNodeNotFound)
}

func TestStaleStrokeRederivedOnRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	ctx := context.Background()

	a := addElementNode(t, svc, funnel.ID, user.ID, "A", 0, 0)
	b := addElementNode(t, svc, funnel.ID, user.ID, "B", 100, 0)
	edge, err := svc.ConnectNodes(ctx, funnel.ID, user.ID, a.ID, flowstyle.HandleNegative, b.ID, "")
	require.NoError(t, err)

	// Elle bozulmuş stroke değeri bir sonraki grafik okumasında düzeltilir
	require.NoError(t, db.Model(&models.FunnelEdge{}).
		Where("id = ?", edge.ID).
		Update("stroke", "#000000").Error)

	// Grafik okuması tetikleyen herhangi bir operasyon yeterli
	require.NoError(t, svc.MoveNode(ctx, funnel.ID, a.ID, user.ID, 10, 10))

	var stored models.FunnelEdge
	require.NoError(t, db.First(&stored, "id = ?", edge.ID).Error)
	assert.Equal(t, flowstyle.StrokeNegative, stored.Stroke)
}

func TestDeleteNodeCascadesEdges(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	ctx := context.Background()

	a := addElementNode(t, svc, funnel.ID, user.ID, "A", 0, 0)
	b := addElementNode(t, svc, funnel.ID, user.ID, "B", 100, 0)
	c := addElementNode(t, svc, funnel.ID, user.ID, "C", 200, 0)

	_, err := svc.ConnectNodes(ctx, funnel.ID, user.ID, a.ID, "", b.ID, "")
	require.NoError(t, err)
	_, err = svc.ConnectNodes(ctx, funnel.ID, user.ID, b.ID, "", c.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNode(ctx, funnel.ID, b.ID, user.ID))

	var nodeCount, edgeCount int64
	require.NoError(t, db.Model(&models.FunnelNode{}).Where("funnel_id = ?", funnel.ID).Count(&nodeCount).Error)
	require.NoError(t, db.Model(&models.FunnelEdge{}).Where("funnel_id = ?", funnel.ID).Count(&edgeCount).Error)
	assert.EqualValues(t, 2, nodeCount)
	assert.EqualValues(t, 0, edgeCount)
}

func TestDuplicateNodeOffsetWithoutEdges(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	ctx := context.Background()

	a := addElementNode(t, svc, funnel.ID, user.ID, "Kaynak", 30, 40)
	b := addElementNode(t, svc, funnel.ID, user.ID, "Hedef", 300, 40)
	_, err := svc.ConnectNodes(ctx, funnel.ID, user.ID, a.ID, "", b.ID, "")
	require.NoError(t, err)

	clone, err := svc.DuplicateNode(ctx, funnel.ID, a.ID, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, clone.ID)
	assert.Equal(t, a.PositionX+flowcanvas.DuplicateOffset, clone.PositionX)
	assert.Equal(t, a.PositionY+flowcanvas.DuplicateOffset, clone.PositionY)
	assert.Equal(t, a.Data["label"], clone.Data["label"])

	// Kenarlar kopyalanmaz
	var edgeCount int64
	require.NoError(t, db.Model(&models.FunnelEdge{}).Where("funnel_id = ?", funnel.ID).Count(&edgeCount).Error)
	assert.EqualValues(t, 1, edgeCount)
}

func TestRenameNode(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	ctx := context.Background()

	node := addElementNode(t, svc, funnel.ID, user.ID, "Eski Ad", 0, 0)
	require.NoError(t, svc.RenameNode(ctx, funnel.ID, node.ID, user.ID, "Yeni Ad"))

	var stored models.FunnelNode
	require.NoError(t, db.First(&stored, "id = ?", node.ID).Error)
	data, err := models.DecodeNodeData(stored.NodeType, stored.Data)
	require.NoError(t, err)
	assert.Equal(t, "Yeni Ad", data.NodeLabel())

	// Olmayan düğüm için sessiz no-op
	assert.NoError(t, svc.RenameNode(ctx, funnel.ID, uuid.New(), user.ID, "Hayalet"))
}

func TestPushToolOutput(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	ctx := context.Background()

	chat, err := svc.AddNode(ctx, funnel.ID, user.ID, models.NodeTypeAIChat, 0, 0,
		models.AIChatData{Label: "Sohbet"})
	require.NoError(t, err)
	tool, err := svc.AddNode(ctx, funnel.ID, user.ID, models.NodeTypeAITool, 200, 0,
		models.AIToolData{Label: "Reklam Metni", ToolID: "ad-copy", IsProcessing: true})
	require.NoError(t, err)

	// Bağlantı yokken itme reddedilir
	err = svc.PushToolOutput(ctx, funnel.ID, chat.ID, tool.ID, user.ID, "çıktı")
	assert.ErrorIs(t, err, ErrFunInvalidInput)

	_, err = svc.ConnectNodes(ctx, funnel.ID, user.ID, chat.ID, "", tool.ID, "")
	require.NoError(t, err)
	require.NoError(t, svc.PushToolOutput(ctx, funnel.ID, chat.ID, tool.ID, user.ID, "Harika bir metin"))

	var stored models.FunnelNode
	require.NoError(t, db.First(&stored, "id = ?", tool.ID).Error)
	data, err := models.DecodeNodeData(stored.NodeType, stored.Data)
	require.NoError(t, err)
	toolData, ok := data.(models.AIToolData)
	require.True(t, ok)
	assert.Equal(t, "Harika bir metin", toolData.Output)
	assert.False(t, toolData.IsProcessing)
}

func TestConnectedNodeQueries(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	ctx := context.Background()

	chat, err := svc.AddNode(ctx, funnel.ID, user.ID, models.NodeTypeAIChat, 0, 0,
		models.AIChatData{Label: "Sohbet"})
	require.NoError(t, err)
	tool, err := svc.AddNode(ctx, funnel.ID, user.ID, models.NodeTypeAITool, 200, 0,
		models.AIToolData{Label: "Persona", ToolID: "persona"})
	require.NoError(t, err)
	attachment, err := svc.AddNode(ctx, funnel.ID, user.ID, models.NodeTypeAttachment, -200, 0,
		models.AttachmentNodeData{Label: "Brief.pdf", FileURL: "https://blob.test/brief.pdf"})
	require.NoError(t, err)

	// Araç bağlantısı her iki yönde de sayılır, ek bağlantısı sadece kaynak yönünde
	_, err = svc.ConnectNodes(ctx, funnel.ID, user.ID, tool.ID, "", chat.ID, "")
	require.NoError(t, err)
	_, err = svc.ConnectNodes(ctx, funnel.ID, user.ID, attachment.ID, "", chat.ID, "")
	require.NoError(t, err)

	tools, err := svc.GetConnectedToolNodes(ctx, funnel.ID, chat.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, tool.ID, tools[0].ID)

	attachments, err := svc.GetConnectedAttachmentNodes(ctx, funnel.ID, chat.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, attachment.ID, attachments[0].ID)
}

func TestShareKeyLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	addElementNode(t, svc, funnel.ID, user.ID, "Landing", 0, 0)
	ctx := context.Background()

	key, err := svc.EnableShare(ctx, funnel.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, key, shareKeyLength)

	// Tekrar etkinleştirme aynı anahtarı döndürür
	again, err := svc.EnableShare(ctx, funnel.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	shared, err := svc.GetFunnelByShareKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, funnel.ID, shared.ID)
	assert.Len(t, shared.Nodes, 1)

	require.NoError(t, svc.DisableShare(ctx, funnel.ID, user.ID))
	_, err = svc.GetFunnelByShareKey(ctx, key)
	assert.ErrorIs(t, err, ErrFunnelNotFound)
}

func TestFunnelOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	owner := newTestUser(t, db, 0)
	intruder := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, owner.ID)
	ctx := context.Background()

	_, err := svc.GetFunnelWithGraph(ctx, funnel.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrFunnelForbidden)
	err = svc.RenameFunnel(ctx, funnel.ID, intruder.ID, "El Koyma")
	assert.ErrorIs(t, err, ErrFunnelForbidden)
	_, err = svc.EnableShare(ctx, funnel.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrFunnelForbidden)
	_, err = svc.AddNode(ctx, funnel.ID, intruder.ID, models.NodeTypeTextCard, 0, 0,
		models.TextCardData{Label: "Not"})
	assert.ErrorIs(t, err, ErrFunnelForbidden)
}

func TestDeleteFunnelRemovesGraph(t *testing.T) {
	db := newTestDB(t)
	svc := NewFunnelServiceTx(db)
	user := newTestUser(t, db, 0)
	funnel := newTestFunnel(t, svc, user.ID)
	ctx := context.Background()

	a := addElementNode(t, svc, funnel.ID, user.ID, "A", 0, 0)
	b := addElementNode(t, svc, funnel.ID, user.ID, "B", 100, 0)
	_, err := svc.ConnectNodes(ctx, funnel.ID, user.ID, a.ID, "", b.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFunnel(ctx, funnel.ID, user.ID))

	var nodeCount, edgeCount int64
	require.NoError(t, db.Model(&models.FunnelNode{}).Where("funnel_id = ?", funnel.ID).Count(&nodeCount).Error)
	require.NoError(t, db.Model(&models.FunnelEdge{}).Where("funnel_id = ?", funnel.ID).Count(&edgeCount).Error)
	assert.EqualValues(t, 0, nodeCount)
	assert.EqualValues(t, 0, edgeCount)

	err = db.First(&models.Funnel{}, "id = ?", funnel.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
