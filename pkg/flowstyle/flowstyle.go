// Package flowstyle edge görsel stilinin tek kaynağıdır.
// Stil, kaynak handle kimliğinden türetilen saf bir projeksiyondur; başka
// hiçbir yerde renk hesaplanmaz.
package flowstyle

// Handle kimlikleri: bir huni adımının üç isimli çıkış portu.
const (
	HandleNeutral  = "neutral"
	HandlePositive = "positive"
	HandleNegative = "negative"
)

// HandleKind handle kimliklerinin kapalı sınıflandırması.
type HandleKind int

const (
	KindNeutral HandleKind = iota
	KindPositive
	KindNegative
	KindUnknown
)

// Stroke renk sabitleri.
const (
	StrokePositive = "#22c55e" // yeşil: olumlu sonuç dalı
	StrokeNegative = "#ef4444" // kırmızı: olumsuz sonuç dalı
	StrokeNeutral  = "#94a3b8" // gri: nötr ya da bilinmeyen
)

// Classify handle kimliğini kapalı kümeye indirger.
func Classify(handleID string) HandleKind {
	switch handleID {
	case HandlePositive:
		return KindPositive
	case HandleNegative:
		return KindNegative
	case HandleNeutral:
		return KindNeutral
	}
	return KindUnknown
}

// StyleForHandle handle kimliğinden stroke rengini üretir.
// positive→yeşil, negative→kırmızı, diğer her şey (neutral, boş, bilinmeyen)→gri.
func StyleForHandle(handleID string) string {
	switch Classify(handleID) {
	case KindPositive:
		return StrokePositive
	case KindNegative:
		return StrokeNegative
	default:
		return StrokeNeutral
	}
}
