// Package ordering sıralı koleksiyonların (pano kolonları, kolon kartları)
// yoğun (dense) sıra indeksi değişmezini korur: her başarılı mutasyondan sonra
// indeks kümesi tam olarak {0, 1, ..., n-1} olmalıdır.
//
// Sıra indekslerine bu paket dışından doğrudan yazılmaz.
package ordering

import "errors"

var (
	// ErrItemNotFound taşınmak istenen öğe koleksiyonda yok.
	ErrItemNotFound = errors.New("ordering: öğe koleksiyonda bulunamadı")
	// ErrDuplicateItem aynı öğe koleksiyona ikinci kez eklenmek istendi.
	ErrDuplicateItem = errors.New("ordering: öğe koleksiyonda zaten mevcut")
)

// Arrangement bir koleksiyonun sıralı öğe kimlikleridir.
// Slice'taki pozisyon, öğenin sıra indeksidir.
type Arrangement[ID comparable] []ID

// Clone bağımsız bir kopya döndürür.
func (a Arrangement[ID]) Clone() Arrangement[ID] {
	out := make(Arrangement[ID], len(a))
	copy(out, a)
	return out
}

// IndexOf öğenin indeksini döndürür; yoksa -1.
func (a Arrangement[ID]) IndexOf(id ID) int {
	for i, v := range a {
		if v == id {
			return i
		}
	}
	return -1
}

// Contains öğenin koleksiyonda olup olmadığını söyler.
func (a Arrangement[ID]) Contains(id ID) bool {
	return a.IndexOf(id) >= 0
}

// Equal iki düzenin aynı sırada aynı öğeleri içerdiğini kontrol eder.
func (a Arrangement[ID]) Equal(b Arrangement[ID]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Remove öğeyi çıkarır; kalan öğelerin indeksleri kendiliğinden yoğun kalır.
func (a Arrangement[ID]) Remove(id ID) (Arrangement[ID], error) {
	idx := a.IndexOf(id)
	if idx < 0 {
		return a, ErrItemNotFound
	}
	out := make(Arrangement[ID], 0, len(a)-1)
	out = append(out, a[:idx]...)
	out = append(out, a[idx+1:]...)
	return out, nil
}

// InsertAt öğeyi verilen indekse ekler. İndeks [0, len] aralığına sıkıştırılır,
// böylece "listenin sonuna bırakma" için ayrı bir yol gerekmez.
func (a Arrangement[ID]) InsertAt(index int, id ID) (Arrangement[ID], error) {
	if a.Contains(id) {
		return a, ErrDuplicateItem
	}
	index = clamp(index, 0, len(a))
	out := make(Arrangement[ID], 0, len(a)+1)
	out = append(out, a[:index]...)
	out = append(out, id)
	out = append(out, a[index:]...)
	return out, nil
}

// MoveWithin öğeyi aynı koleksiyon içinde yeni indekse taşır.
// Önizleme simülasyonuyla aynı kural: önce çıkar, sonra hedefe ekle.
func (a Arrangement[ID]) MoveWithin(id ID, toIndex int) (Arrangement[ID], error) {
	removed, err := a.Remove(id)
	if err != nil {
		return a, err
	}
	return removed.InsertAt(toIndex, id)
}

// MoveBetween öğeyi kaynak düzenden alıp hedef düzene verilen indekse ekler.
// Tek mantıksal adımdır: iki yeni düzen birlikte döner, ikisi de yoğundur.
func MoveBetween[ID comparable](src, dst Arrangement[ID], id ID, toIndex int) (Arrangement[ID], Arrangement[ID], error) {
	newSrc, err := src.Remove(id)
	if err != nil {
		return src, dst, err
	}
	newDst, err := dst.InsertAt(toIndex, id)
	if err != nil {
		return src, dst, err
	}
	return newSrc, newDst, nil
}

// Dense indeks kümesinin tam olarak {0..n-1} olduğunu doğrular.
// Sıra indeksi taşıyan satırlar veritabanından okunduktan sonra bu kontrolle
// tutarlılık raporlanabilir.
func Dense(indices []int) bool {
	seen := make([]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(indices) || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// Renumber 0..n-1 indekslerini sırayla atar. Veritabanına yazmadan önce
// servis katmanının son adımıdır.
func Renumber(n int, set func(position int, orderIndex int)) {
	for i := 0; i < n; i++ {
		set(i, i)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
