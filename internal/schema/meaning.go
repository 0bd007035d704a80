package schema

import (
	"strings"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var abbreviations = map[string]string{
	"nm": "name", "dt": "date", "no": "number", "cd": "code",
	"desc": "description", "amt": "amount", "cnt": "count", "qty": "quantity",
	"addr": "address", "tel": "phone", "ph": "phone",
	"pwd": "password", "passwd": "password", "pw": "password",
	"img": "image", "msg": "message", "txt": "text", "tit": "title",
	"doc": "document", "usr": "user", "emp": "employee",
	"dept": "department", "grp": "group", "cat": "category",
	"loc": "location", "lat": "latitude", "lng": "longitude", "lon": "longitude",
	"bal": "balance", "avg": "average", "std": "standard",
	"reg": "registered", "mod": "modified", "del": "deleted", "upd": "updated",
	"stat": "status", "sts": "status", "typ": "type", "val": "value",
	"ord": "order", "seq": "sequence", "idx": "index", "flg": "flag",
}

// Label turns a column name into a display label: order_qty -> "Order Quantity".
func Label(colName string) string {
	parts := splitName(colName)
	title := cases.Title(language.English)
	for i, p := range parts {
		if full, ok := abbreviations[p]; ok {
			p = full
		}
		if p == "id" {
			parts[i] = "ID"
			continue
		}
		parts[i] = title.String(p)
	}
	return strings.Join(parts, " ")
}

// LocaleGroup is the translation group of a table: plural, lower case.
func LocaleGroup(table string) string {
	return inflection.Plural(strings.ToLower(table))
}

// Meaning guesses what a string column holds from its comment first, then
// from its (abbreviation-expanded) name. Returns "" when nothing matches.
func Meaning(colName, comment string) string {
	c := strings.ToLower(comment)
	switch {
	case strings.Contains(c, "e-mail") || strings.Contains(c, "email"):
		return "email"
	case strings.Contains(c, "password"):
		return "password"
	case strings.Contains(c, "phone") || strings.Contains(c, "mobile"):
		return "phone"
	case strings.Contains(c, "url") || strings.Contains(c, "website"):
		return "url"
	}

	for _, p := range splitName(colName) {
		if full, ok := abbreviations[p]; ok {
			p = full
		}
		switch p {
		case "email", "mail":
			return "email"
		case "password":
			return "password"
		case "phone", "mobile", "fax":
			return "phone"
		case "url", "website", "homepage":
			return "url"
		}
	}
	return ""
}

func splitName(colName string) []string {
	return strings.FieldsFunc(strings.ToLower(colName), func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
}
