// Package dragengine sürekli işaretçi girdisini ayrık, doğrulanmış
// sıralama/kolon mutasyonlarına çeviren durum makinesidir.
//
// Makine üç durumludur: Idle → Dragging → Committing → Idle. Sürükleme
// sırasında hesaplanan önizleme düzeni sadece render içindir; kalıcı tek
// mutasyon, sürükleme bittiğinde üretilen Mutation üçlüsüdür. Klavye,
// işaretçiyle eşdeğer bir giriş yoludur ve aynı geçişleri destekler.
package dragengine

import (
	"errors"
	"math"

	"akis.link/pkg/ordering"
)

var (
	// ErrNotDragging operasyon sadece Dragging durumunda geçerli.
	ErrNotDragging = errors.New("dragengine: aktif sürükleme yok")
	// ErrUnknownItem öğe koleksiyonlarda bulunamadı.
	ErrUnknownItem = errors.New("dragengine: öğe bilinmiyor")
)

// DefaultActivationDistance basit tıklamaların sürükleme başlatmasını
// engelleyen piksel eşiği.
const DefaultActivationDistance = 8.0

// State makinenin durumları.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateCommitting:
		return "committing"
	}
	return "unknown"
}

// Mutation tamamlanan bir sürüklemenin kalıcılaştırılacak tek mutasyonudur:
// (öğe, hedef kolon, hedef sıra indeksi).
type Mutation[ID comparable] struct {
	ItemID   ID
	ColumnID ID
	Index    int
}

// Engine tek bir sürüklenebilir koleksiyon örneğinin (ör. bir pano) durum
// makinesidir. Eşzamanlılık modeli tek iş parçacıklıdır (UI olay döngüsü);
// bu yüzden kilit taşımaz.
type Engine[ID comparable] struct {
	activation float64
	state      State

	committed map[ID]ordering.Arrangement[ID]
	preview   map[ID]ordering.Arrangement[ID]
	snapshot  map[ID]ordering.Arrangement[ID]

	// Commit edilen son düzenin öncesi; kalıcılık başarısız olursa
	// RollbackLastCommit ile geri dönülür.
	lastSnapshot map[ID]ordering.Arrangement[ID]

	pressed     bool
	pressX      float64
	pressY      float64
	pressItem   ID
	pressColumn ID

	dragged     ID
	overTarget  bool

	// localChange kendi önizlememizin dış değişiklik olarak geri işlenmesini
	// engelleyen kapı bayrağıdır; bir sonraki Tick'te temizlenir.
	localChange bool
}

// New makineyi verilen commit edilmiş kolon düzenleriyle kurar.
// activationDistance <= 0 ise varsayılan eşik kullanılır.
func New[ID comparable](activationDistance float64, columns map[ID][]ID) *Engine[ID] {
	if activationDistance <= 0 {
		activationDistance = DefaultActivationDistance
	}
	e := &Engine[ID]{
		activation: activationDistance,
		state:      StateIdle,
		committed:  make(map[ID]ordering.Arrangement[ID], len(columns)),
	}
	for colID, items := range columns {
		e.committed[colID] = ordering.Arrangement[ID](items).Clone()
	}
	return e
}

// State makinenin anlık durumunu döndürür.
func (e *Engine[ID]) State() State { return e.state }

// Dragged aktif sürüklenen öğeyi döndürür (sadece Dragging'de anlamlı).
func (e *Engine[ID]) Dragged() (ID, bool) {
	var zero ID
	if e.state != StateDragging {
		return zero, false
	}
	return e.dragged, true
}

// Committed bir kolonun kalıcı düzenini döndürür.
func (e *Engine[ID]) Committed(columnID ID) []ID {
	return e.committed[columnID].Clone()
}

// Rendered render edilmesi gereken düzeni döndürür: sürükleme sırasında
// önizleme, aksi halde kalıcı düzen.
func (e *Engine[ID]) Rendered(columnID ID) []ID {
	if e.state == StateDragging {
		return e.preview[columnID].Clone()
	}
	return e.committed[columnID].Clone()
}

// PointerDown basışı kaydeder; durum değiştirmez. Sürükleme ancak işaretçi
// aktivasyon eşiğini aşınca başlar.
func (e *Engine[ID]) PointerDown(itemID, columnID ID, x, y float64) {
	if e.state != StateIdle {
		return
	}
	e.pressed = true
	e.pressX, e.pressY = x, y
	e.pressItem = itemID
	e.pressColumn = columnID
}

// PointerMove işaretçi hareketini işler. Basılıyken eşik aşılırsa
// Idle → Dragging geçişi yapılır.
func (e *Engine[ID]) PointerMove(x, y float64) {
	if e.state != StateIdle || !e.pressed {
		return
	}
	dx, dy := x-e.pressX, y-e.pressY
	if math.Hypot(dx, dy) < e.activation {
		return
	}
	e.beginDrag(e.pressItem, e.pressColumn)
}

// BeginKeyboardDrag klavye ile sürükleme başlatır; eşik uygulanmaz.
func (e *Engine[ID]) BeginKeyboardDrag(itemID, columnID ID) error {
	if e.state != StateIdle {
		return ErrNotDragging
	}
	if !e.committed[columnID].Contains(itemID) {
		return ErrUnknownItem
	}
	e.beginDrag(itemID, columnID)
	return nil
}

func (e *Engine[ID]) beginDrag(itemID, columnID ID) {
	if !e.committed[columnID].Contains(itemID) {
		// Bilinmeyen öğeyle sürükleme başlatılmaz; basış düşer.
		e.pressed = false
		return
	}
	e.state = StateDragging
	e.dragged = itemID
	e.snapshot = cloneColumns(e.committed)
	e.preview = cloneColumns(e.committed)
	e.overTarget = true
}

// HoverAt önizlemeyi yeniden hesaplar: sürüklenen öğe mevcut önizleme
// yuvasından çıkarılır ve işaret edilen kolon/indekse eklenir.
// Dragging → Dragging geçişidir; hiçbir mutasyon yayınlanmaz.
func (e *Engine[ID]) HoverAt(columnID ID, index int) error {
	if e.state != StateDragging {
		return ErrNotDragging
	}
	next := cloneColumns(e.preview)
	for colID, arr := range next {
		if arr.Contains(e.dragged) {
			removed, err := arr.Remove(e.dragged)
			if err != nil {
				return err
			}
			next[colID] = removed
			break
		}
	}
	inserted, err := next[columnID].InsertAt(index, e.dragged)
	if err != nil {
		return err
	}
	next[columnID] = inserted
	e.preview = next
	e.overTarget = true
	return nil
}

// KeyboardMove sürüklenen öğeyi bulunduğu kolonda delta kadar kaydırır.
func (e *Engine[ID]) KeyboardMove(delta int) error {
	if e.state != StateDragging {
		return ErrNotDragging
	}
	for colID, arr := range e.preview {
		if idx := arr.IndexOf(e.dragged); idx >= 0 {
			return e.HoverAt(colID, idx+delta)
		}
	}
	return ErrUnknownItem
}

// LeaveTargets işaretçinin geçerli bir hedef üzerinde olmadığını bildirir;
// önizleme sürükleme öncesi düzene döner.
func (e *Engine[ID]) LeaveTargets() {
	if e.state != StateDragging {
		return
	}
	e.preview = cloneColumns(e.snapshot)
	e.overTarget = false
}

// PointerUp sürüklemeyi tamamlar. Dragging'de ise Committing üzerinden
// Idle'a döner ve (varsa) tek mutasyonu döndürür. Geçerli hedef yoksa ya da
// düzen değişmediyse no-op'tur ve nil döner.
func (e *Engine[ID]) PointerUp() *Mutation[ID] {
	e.pressed = false
	if e.state != StateDragging {
		return nil
	}
	e.state = StateCommitting
	defer func() { e.state = StateIdle }()

	if !e.overTarget || columnsEqual(e.preview, e.snapshot) {
		e.preview = nil
		e.snapshot = nil
		return nil
	}

	var mut *Mutation[ID]
	for colID, arr := range e.preview {
		if idx := arr.IndexOf(e.dragged); idx >= 0 {
			mut = &Mutation[ID]{ItemID: e.dragged, ColumnID: colID, Index: idx}
			break
		}
	}
	if mut == nil {
		// Önizleme bozulmuş; güvenli taraf: geri al.
		e.preview = nil
		e.snapshot = nil
		return nil
	}

	// Önizleme kalıcı düzen olur; kalıcılık çağrısı iyimser yapılır ve
	// başarısızlıkta RollbackLastCommit ile bu anın öncesine dönülür.
	e.lastSnapshot = e.snapshot
	e.committed = e.preview
	e.preview = nil
	e.snapshot = nil
	e.localChange = true
	return mut
}

// CommitKeyboard klavye ile başlatılan sürüklemeyi tamamlar.
func (e *Engine[ID]) CommitKeyboard() *Mutation[ID] {
	return e.PointerUp()
}

// Cancel sürüklemeyi iptal eder (ör. escape): her durumdan Idle'a döner,
// sürükleme öncesi düzen korunur, mutasyon yayınlanmaz.
func (e *Engine[ID]) Cancel() {
	e.pressed = false
	if e.state == StateDragging {
		e.preview = nil
		e.snapshot = nil
	}
	e.state = StateIdle
}

// RollbackLastCommit son commit'in kalıcılaştırılması başarısız olduğunda
// kalıcı düzeni commit öncesi anlık görüntüye döndürür.
func (e *Engine[ID]) RollbackLastCommit() {
	if e.lastSnapshot == nil {
		return
	}
	e.committed = e.lastSnapshot
	e.lastSnapshot = nil
}

// ApplyExternal sunucudan gelen düzeni uygular. Yerel bir değişiklik henüz
// Tick ile onaylanmadıysa (kendi önizlememizin yankısı olabilir) ya da aktif
// sürükleme varsa dış değişiklik yoksayılır ve false döner.
func (e *Engine[ID]) ApplyExternal(columns map[ID][]ID) bool {
	if e.localChange || e.state != StateIdle {
		return false
	}
	next := make(map[ID]ordering.Arrangement[ID], len(columns))
	for colID, items := range columns {
		next[colID] = ordering.Arrangement[ID](items).Clone()
	}
	e.committed = next
	e.lastSnapshot = nil
	return true
}

// Tick bir zamanlama turunu temsil eder; yerel değişiklik bayrağını temizler.
// Bayrak temizlendikten sonra dış değişiklikler yeniden işlenir.
func (e *Engine[ID]) Tick() {
	e.localChange = false
}

func cloneColumns[ID comparable](cols map[ID]ordering.Arrangement[ID]) map[ID]ordering.Arrangement[ID] {
	out := make(map[ID]ordering.Arrangement[ID], len(cols))
	for colID, arr := range cols {
		out[colID] = arr.Clone()
	}
	return out
}

func columnsEqual[ID comparable](a, b map[ID]ordering.Arrangement[ID]) bool {
	if len(a) != len(b) {
		return false
	}
	for colID, arr := range a {
		if !arr.Equal(b[colID]) {
			return false
		}
	}
	return true
}
