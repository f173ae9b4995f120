package web

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"
)

//go:embed templates
var templateFS embed.FS

// Templates parses all HTML templates of the web interface.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money": money,
	}).ParseFS(templateFS, "templates/layout/*.html", "templates/budget/*.html")
}

// money formats an amount with two decimal places.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
