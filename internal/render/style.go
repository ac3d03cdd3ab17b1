// Package render draws a laid-out heatmap. SVG and HTML are the primary
// outputs; PNG sparklines and a colored terminal grid are secondary views
// over the same buckets.
package render

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/temperature-heatmap/internal/layout"
)

// Style holds presentation settings that do not affect the layout math.
type Style struct {
	Title            string            `yaml:"title"`
	FontFamily       string            `yaml:"font_family"`
	TitleFontSize    int               `yaml:"title_font_size" validate:"gt=0"`
	LabelFontSize    int               `yaml:"label_font_size" validate:"gt=0"`
	Background       string            `yaml:"background"`
	AxisColor        string            `yaml:"axis_color"`
	MaxLineColor     string            `yaml:"max_line_color"`
	MinLineColor     string            `yaml:"min_line_color"`
	LineWidth        float64           `yaml:"line_width" validate:"gte=0"`
	CellOpacity      float64           `yaml:"cell_opacity" validate:"gte=0,lte=1"`
	LegendItemWidth  float64           `yaml:"legend_item_width" validate:"gt=0"`
	LegendItemHeight float64           `yaml:"legend_item_height" validate:"gt=0"`
	Dimensions       layout.Dimensions `yaml:"dimensions"`
}

// DefaultStyle matches the reference chart: 22px title, 80% opaque cells and
// a 20px legend column.
func DefaultStyle() Style {
	return Style{
		FontFamily:       "sans-serif",
		TitleFontSize:    22,
		LabelFontSize:    10,
		Background:       "#ffffff",
		AxisColor:        "#000000",
		MaxLineColor:     "#b2182b",
		MinLineColor:     "#2166ac",
		LineWidth:        1,
		CellOpacity:      0.8,
		LegendItemWidth:  20,
		LegendItemHeight: 20,
		Dimensions:       layout.DefaultDimensions,
	}
}

// LoadStyle reads YAML overrides from path on top of DefaultStyle. An empty
// path returns the defaults.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return style, fmt.Errorf("read style %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return style, fmt.Errorf("parse style %s: %w", path, err)
	}
	if err := style.validate(); err != nil {
		return style, fmt.Errorf("style %s: %w", path, err)
	}
	return style, nil
}

// styleValidate reports failures by yaml key so errors point at the file.
var styleValidate = newStyleValidator()

func newStyleValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s Style) validate() error {
	err := styleValidate.Struct(s)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	// Namespace is "Style.dimensions.margin_left"; drop the type name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	return fmt.Errorf("%s fails %s=%s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
}
