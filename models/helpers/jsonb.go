package helpers

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSONBMap serbest biçimli JSON kolonları için map tipi.
// Postgres'te jsonb, sqlite'ta TEXT olarak saklanır.
type JSONBMap map[string]interface{}

// Value GORM'un kolona yazacağı değeri üretir.
func (m JSONBMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan kolondan okunan değeri map'e çevirir.
func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONBMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("JSONBMap: desteklenmeyen kaynak tipi %T", value)
	}
	if len(data) == 0 {
		*m = JSONBMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// GormDataType GORM'a genel veri tipini bildirir.
func (JSONBMap) GormDataType() string {
	return "jsonb"
}

// GetString map'ten string alan okur; yoksa boş string döner.
func (m JSONBMap) GetString(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// GetBool map'ten bool alan okur.
func (m JSONBMap) GetBool(key string) bool {
	v, _ := m[key].(bool)
	return v
}

// ErrNotAMap Scan'e map olmayan JSON geldiğinde döner.
var ErrNotAMap = errors.New("JSONBMap: değer bir JSON nesnesi değil")
