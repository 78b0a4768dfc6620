package scene

import "strings"

// DefaultColor is used for facilities no palette entry matches.
const DefaultColor = "#BDC3C7"

type swatch struct {
	keyword string
	color   string
}

// palette is matched in order against the words of a facility name.
var palette = []swatch{
	{"production", "#FF6B6B"},
	{"admin", "#4ECDC4"},
	{"reliability", "#96CEB4"},
	{"wastewater", "#98D8C8"},
	{"waste", "#FFEAA7"},
	{"hazmat", "#DDA0DD"},
	{"cess", "#F7DC6F"},
	{"srp", "#BB8FCE"},
	{"substation", "#F39C12"},
	{"guide", "#E74C3C"},
	{"parking", "#A9CCE3"},
	{"ut", "#45B7D1"},
}

// ColorFor returns the display color for a facility. The name is tried
// first, then the category.
func ColorFor(name, category string) string {
	for _, s := range []string{name, category} {
		s = strings.ToLower(s)
		for _, w := range palette {
			if matchesKeyword(s, w.keyword) {
				return w.color
			}
		}
	}
	return DefaultColor
}

// matchesKeyword matches whole words only, so "ut" does not match "utility".
func matchesKeyword(s, keyword string) bool {
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}) {
		if f == keyword {
			return true
		}
	}
	return false
}
