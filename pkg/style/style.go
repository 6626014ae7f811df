// Package style provides cell styles and the registries that name them.
//
// A [Style] is a flat key/value map using the key names of the maxGraph
// family of diagram engines (fillColor, strokeColor, shape, ...). Styles are
// combined with [Merge], which is shallow: a key present in the override
// replaces the base value wholesale, nested values are never merged.
//
// Two registries are provided as explicit objects rather than process-wide
// globals: [Stylesheet] holds the default vertex/edge styles and named cell
// styles, and [ShapeRegistry] maps shape names to rendering attributes.
// Both are meant to be populated at application start and are not designed
// for removal at runtime.
package style

import (
	"fmt"
	"strconv"
)

// Style keys understood by the stylesheet and the renderer.
const (
	KeyShape          = "shape"
	KeyFillColor      = "fillColor"
	KeyStrokeColor    = "strokeColor"
	KeyStrokeWidth    = "strokeWidth"
	KeyFontColor      = "fontColor"
	KeyFontSize       = "fontSize"
	KeyFontFamily     = "fontFamily"
	KeyDashed         = "dashed"
	KeyRounded        = "rounded"
	KeyOpacity        = "opacity"
	KeyStartArrow     = "startArrow"
	KeyEndArrow       = "endArrow"
	KeyAlign          = "align"
	KeyVerticalAlign  = "verticalAlign"
	KeyPerimeter      = "perimeter"
	KeyBaseStyleNames = "baseStyleNames"
)

// Style is a shallow map of style keys to values.
type Style map[string]any

// Merge returns a new style holding every key of base overridden by every
// key of override. Either argument may be nil. The result is never nil.
func Merge(base, override Style) Style {
	out := make(Style, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of s, or nil if s is nil.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	return Merge(nil, s)
}

// String returns the value at key formatted as a string.
func (s Style) String(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return "", false
	}
	if str, ok := v.(string); ok {
		return str, true
	}
	return fmt.Sprint(v), true
}

// Float returns the value at key as a float64. Strings are parsed.
func (s Style) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Bool returns the value at key as a bool. Numbers are true when non-zero,
// strings follow strconv.ParseBool plus "1"/"0".
func (s Style) Bool(key string) (bool, bool) {
	switch v := s[key].(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	default:
		if f, ok := s.Float(key); ok {
			return f != 0, true
		}
		return false, false
	}
}

// BaseStyleNames returns the named styles a cell style inherits from.
func (s Style) BaseStyleNames() []string {
	switch v := s[KeyBaseStyleNames].(type) {
	case []string:
		return v
	case []any:
		names := make([]string, 0, len(v))
		for _, n := range v {
			if str, ok := n.(string); ok {
				names = append(names, str)
			}
		}
		return names
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
