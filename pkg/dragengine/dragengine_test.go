package dragengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard() map[string][]string {
	return map[string][]string{
		"todo":  {},
		"doing": {"X", "Y"},
	}
}

func TestClickBelowThresholdDoesNotDrag(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 100, 100)
	e.PointerMove(103, 102) // eşik altı
	assert.Equal(t, StateIdle, e.State())

	mut := e.PointerUp()
	assert.Nil(t, mut)
	assert.Equal(t, []string{"X", "Y"}, e.Committed("doing"))
}

func TestThresholdStartsDrag(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 100, 100)
	e.PointerMove(100, 109)
	assert.Equal(t, StateDragging, e.State())

	dragged, ok := e.Dragged()
	require.True(t, ok)
	assert.Equal(t, "X", dragged)
}

// X, Doing@0'dan Todo@0'a taşınır.
// Beklenen: Doing = [Y], Todo = [X]; tek mutasyon (X, todo, 0).
func TestCrossColumnMove(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 100, 100)
	e.PointerMove(120, 100)
	require.NoError(t, e.HoverAt("todo", 0))

	// Önizleme render için hazır, kalıcı düzen henüz değişmedi
	assert.Equal(t, []string{"X"}, e.Rendered("todo"))
	assert.Equal(t, []string{"Y"}, e.Rendered("doing"))
	assert.Equal(t, []string{"X", "Y"}, e.Committed("doing"))

	mut := e.PointerUp()
	require.NotNil(t, mut)
	assert.Equal(t, Mutation[string]{ItemID: "X", ColumnID: "todo", Index: 0}, *mut)
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, []string{"X"}, e.Committed("todo"))
	assert.Equal(t, []string{"Y"}, e.Committed("doing"))
}

func TestSameColumnReorder(t *testing.T) {
	e := New(8, map[string][]string{"col": {"a", "b", "c"}})

	e.PointerDown("c", "col", 0, 0)
	e.PointerMove(50, 0)
	require.NoError(t, e.HoverAt("col", 0))

	mut := e.PointerUp()
	require.NotNil(t, mut)
	assert.Equal(t, "c", mut.ItemID)
	assert.Equal(t, "col", mut.ColumnID)
	assert.Equal(t, 0, mut.Index)
	assert.Equal(t, []string{"c", "a", "b"}, e.Committed("col"))
}

// Sürükleme sırasında ara mutasyon yayınlanmaz; tamamlanan sürükleme başına
// tam olarak bir mutasyon üretilir.
func TestExactlyOneMutationPerDrag(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 0, 0)
	e.PointerMove(50, 0)
	// Birden çok hover: hepsi sadece önizleme
	require.NoError(t, e.HoverAt("todo", 0))
	require.NoError(t, e.HoverAt("doing", 1))
	require.NoError(t, e.HoverAt("todo", 0))

	first := e.PointerUp()
	require.NotNil(t, first)

	// İkinci bırakma yeni mutasyon üretmez
	assert.Nil(t, e.PointerUp())
}

func TestDropWithoutTargetIsNoop(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 0, 0)
	e.PointerMove(50, 0)
	require.NoError(t, e.HoverAt("todo", 0))
	e.LeaveTargets()

	mut := e.PointerUp()
	assert.Nil(t, mut)
	assert.Equal(t, []string{"X", "Y"}, e.Committed("doing"))
	assert.Empty(t, e.Committed("todo"))
}

func TestDropAtOriginalSlotIsNoop(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 0, 0)
	e.PointerMove(50, 0)
	require.NoError(t, e.HoverAt("doing", 0)) // başladığı yuva

	assert.Nil(t, e.PointerUp())
}

func TestCancelRevertsPreview(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 0, 0)
	e.PointerMove(50, 0)
	require.NoError(t, e.HoverAt("todo", 0))

	e.Cancel()
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, []string{"X", "Y"}, e.Committed("doing"))
	assert.Empty(t, e.Committed("todo"))
	assert.Equal(t, []string{"X", "Y"}, e.Rendered("doing"))
}

// Klavye, işaretçiyle eşdeğer giriş yoludur: eşiksiz başlar, aynı commit yolunu izler.
func TestKeyboardDrag(t *testing.T) {
	e := New(8, map[string][]string{"col": {"a", "b", "c"}})

	require.NoError(t, e.BeginKeyboardDrag("a", "col"))
	assert.Equal(t, StateDragging, e.State())

	require.NoError(t, e.KeyboardMove(1))
	require.NoError(t, e.KeyboardMove(1))

	mut := e.CommitKeyboard()
	require.NotNil(t, mut)
	assert.Equal(t, 2, mut.Index)
	assert.Equal(t, []string{"b", "c", "a"}, e.Committed("col"))
}

func TestKeyboardDragUnknownItem(t *testing.T) {
	e := New(8, newBoard())
	assert.ErrorIs(t, e.BeginKeyboardDrag("yok", "doing"), ErrUnknownItem)
}

// Kalıcılık başarısız olursa commit öncesi anlık görüntüye dönülür.
func TestRollbackLastCommit(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 0, 0)
	e.PointerMove(50, 0)
	require.NoError(t, e.HoverAt("todo", 0))
	require.NotNil(t, e.PointerUp())

	e.RollbackLastCommit()
	assert.Equal(t, []string{"X", "Y"}, e.Committed("doing"))
	assert.Empty(t, e.Committed("todo"))

	// İkinci rollback etkisizdir
	e.RollbackLastCommit()
	assert.Equal(t, []string{"X", "Y"}, e.Committed("doing"))
}

// Kendi commit'imizin yankısı, Tick gelene kadar dış değişiklik olarak işlenmez.
func TestExternalChangeGate(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 0, 0)
	e.PointerMove(50, 0)
	require.NoError(t, e.HoverAt("todo", 0))
	require.NotNil(t, e.PointerUp())

	echo := map[string][]string{"todo": {"X"}, "doing": {"Y"}}
	assert.False(t, e.ApplyExternal(echo), "tick öncesi dış değişiklik uygulanmamalı")

	e.Tick()
	assert.True(t, e.ApplyExternal(map[string][]string{"todo": {}, "doing": {"Y", "X"}}))
	assert.Equal(t, []string{"Y", "X"}, e.Committed("doing"))
}

func TestExternalChangeIgnoredWhileDragging(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 0, 0)
	e.PointerMove(50, 0)
	assert.False(t, e.ApplyExternal(map[string][]string{"doing": {"Y", "X"}}))
	assert.Equal(t, []string{"X", "Y"}, e.Committed("doing"))
}

func TestHoverClampsIndex(t *testing.T) {
	e := New(8, newBoard())

	e.PointerDown("X", "doing", 0, 0)
	e.PointerMove(50, 0)
	require.NoError(t, e.HoverAt("todo", 99))
	mut := e.PointerUp()
	require.NotNil(t, mut)
	assert.Equal(t, 0, mut.Index) // boş kolonda tek geçerli yuva
}
