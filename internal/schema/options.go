package schema

import (
	"regexp"
	"strings"
)

var enumPattern = regexp.MustCompile(`(?i)enum\((.*?)\)`)

// EnumValues extracts the literals of an enum('a','b',...) column type in
// declaration order, without their quotes.
func EnumValues(columnType string) ([]string, bool) {
	m := enumPattern.FindStringSubmatch(columnType)
	if m == nil {
		return nil, false
	}

	parts := strings.Split(m[1], ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, strings.Trim(strings.TrimSpace(p), "'"))
	}
	return values, true
}

// enumOptions turns enum literals into options labelled by their own value.
func enumOptions(values []string, languages []string) []Option {
	pairs := make([]Option, len(values))
	for i, v := range values {
		pairs[i] = Option{Value: v, Label: v}
	}
	return localizeOptions(pairs, languages)
}

// localizeOptions copies pairs and, when languages are configured, fills
// Labels with one entry per language.
func localizeOptions(pairs []Option, languages []string) []Option {
	out := make([]Option, len(pairs))
	for i, p := range pairs {
		out[i] = Option{Value: p.Value, Label: p.Label}
		if len(languages) == 0 {
			continue
		}
		out[i].Labels = make(map[string]string, len(languages))
		for _, lang := range languages {
			out[i].Labels[lang] = p.Label
		}
	}
	return out
}
