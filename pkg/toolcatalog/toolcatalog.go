// Package toolcatalog AI araç tanımlarını HCL dosyalarından yükler.
// Her araç bir kimlik, sistem prompt'u, kredi maliyeti ve form alanları
// tanımlar; katalog uygulama açılışında bir kez okunur.
package toolcatalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var (
	// ErrToolNotFound istenen araç katalogda yok.
	ErrToolNotFound = errors.New("toolcatalog: araç bulunamadı")
	// ErrMissingField zorunlu form alanı boş bırakıldı.
	ErrMissingField = errors.New("toolcatalog: zorunlu alan eksik")
)

// Field bir aracın tek form alanıdır.
type Field struct {
	ID       string `hcl:"id,label"`
	Label    string `hcl:"label"`
	Required bool   `hcl:"required,optional"`
	Default  string `hcl:"default,optional"`
}

// Tool tek bir AI aracının tanımıdır.
type Tool struct {
	ID           string  `hcl:"id,label"`
	Name         string  `hcl:"name"`
	Description  string  `hcl:"description,optional"`
	Model        string  `hcl:"model,optional"`
	SystemPrompt string  `hcl:"system_prompt"`
	CreditCost   int64   `hcl:"credit_cost,optional"`
	Structured   bool    `hcl:"structured,optional"`
	OutputSchema string  `hcl:"output_schema,optional"` // JSON şema metni
	Fields       []Field `hcl:"field,block"`
}

type fileSchema struct {
	Settings *settingsBlock `hcl:"settings,block"`
	Tools    []Tool         `hcl:"tool,block"`
}

type settingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Catalog yüklenmiş araç kümesi ve katalog geneli ayarlardır.
type Catalog struct {
	tools    map[string]Tool
	settings map[string]string
}

// Load dizindeki tüm *.hcl dosyalarını okuyup tek katalogda birleştirir.
func Load(dir string) (*Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.hcl"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	catalog := &Catalog{
		tools:    map[string]Tool{},
		settings: map[string]string{},
	}
	parser := hclparse.NewParser()
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := catalog.mergeFile(parser, path, src); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Parse tek bir HCL gövdesinden katalog üretir (testler ve gömülü tanımlar için).
func Parse(filename string, src []byte) (*Catalog, error) {
	catalog := &Catalog{
		tools:    map[string]Tool{},
		settings: map[string]string{},
	}
	if err := catalog.mergeFile(hclparse.NewParser(), filename, src); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c *Catalog) mergeFile(parser *hclparse.Parser, filename string, src []byte) error {
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("toolcatalog: %s çözümlenemedi: %s", filename, diags.Error())
	}

	var decoded fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return fmt.Errorf("toolcatalog: %s geçersiz: %s", filename, diags.Error())
	}

	if decoded.Settings != nil {
		attrs, diags := decoded.Settings.Body.JustAttributes()
		if diags.HasErrors() {
			return fmt.Errorf("toolcatalog: %s settings bloğu geçersiz: %s", filename, diags.Error())
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return fmt.Errorf("toolcatalog: %s ayarı değerlenemedi: %s", name, diags.Error())
			}
			strVal, err := convert.Convert(val, cty.String)
			if err != nil {
				return fmt.Errorf("toolcatalog: %s ayarı metne çevrilemedi: %w", name, err)
			}
			c.settings[name] = strVal.AsString()
		}
	}

	for _, tool := range decoded.Tools {
		if _, exists := c.tools[tool.ID]; exists {
			return fmt.Errorf("toolcatalog: araç kimliği tekrarlı: %q", tool.ID)
		}
		if tool.CreditCost <= 0 {
			tool.CreditCost = 1
		}
		c.tools[tool.ID] = tool
	}
	return nil
}

// Get aracı kimliğiyle döndürür.
func (c *Catalog) Get(id string) (Tool, error) {
	tool, ok := c.tools[id]
	if !ok {
		return Tool{}, ErrToolNotFound
	}
	return tool, nil
}

// List araçları kimliğe göre sıralı döndürür.
func (c *Catalog) List() []Tool {
	out := make([]Tool, 0, len(c.tools))
	for _, t := range c.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Setting katalog geneli ayarı okur (ör. default_model).
func (c *Catalog) Setting(name string) string {
	return c.settings[name]
}

// ValidateInput form değerlerini araç tanımına göre doğrular ve varsayılanları
// uygulayarak tam değer kümesini döndürür. Ağ çağrısından önce çalışır.
func ValidateInput(tool Tool, values map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(tool.Fields))
	for _, f := range tool.Fields {
		v := values[f.ID]
		if v == "" {
			v = f.Default
		}
		if v == "" && f.Required {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.ID)
		}
		out[f.ID] = v
	}
	return out, nil
}
