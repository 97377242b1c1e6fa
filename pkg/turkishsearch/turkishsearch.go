package turkishsearch

import "strings"

// Türkçe karakterlerin ASCII karşılıkları; iki yönlü eşleşme için hem
// aranan değer hem kolon normalize edilir.
var replacer = strings.NewReplacer(
	"ı", "i", "İ", "i", "I", "i",
	"ş", "s", "Ş", "s",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// Normalize aranan metni küçük harfe indirip Türkçe karakterleri sadeleştirir.
func Normalize(s string) string {
	return replacer.Replace(strings.ToLower(s))
}

// SQLFilter verilen kolon için Türkçe karakter duyarsız bir ILIKE parçası ve
// argümanlarını üretir. Postgres'te translate+lower, sqlite'ta LIKE'ın
// büyük/küçük harf duyarsızlığı yeterlidir.
func SQLFilter(column, value string) (string, []interface{}) {
	fragment := "lower(translate(" + column + ", 'ıİIşŞğĞüÜöÖçÇ', 'iiissgguuoocc')) LIKE ?"
	arg := "%" + Normalize(value) + "%"
	return fragment, []interface{}{arg}
}
