package invoice

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/invoice.html.tmpl
var templatesFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templatesFS, "templates/invoice.html.tmpl"))

// Render writes inv as a standalone HTML document with one section per page.
func Render(w io.Writer, inv *Invoice) error {
	return invoiceTemplate.ExecuteTemplate(w, "invoice.html.tmpl", inv)
}
