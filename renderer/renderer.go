// Package renderer turns costing reports into markdown documents.
// Layout lives in embedded templates; the report structs carry only
// data, so the wording can change without touching the engine.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/tugpack/costing"
)

//go:embed *.md
var templates embed.FS

var helpers = template.FuncMap{
	// prob formats a probability for table cells.
	"prob": func(p float64) string { return fmt.Sprintf("%.3f", p) },
	// pct formats a 0..1 ratio as a percentage.
	"pct": func(p float64) string { return fmt.Sprintf("%.1f%%", 100*p) },
}

// RenderAllocation renders an allocation report to a markdown string.
func RenderAllocation(r *costing.AllocationReport) string {
	partials := map[string]string{
		"allocation_title":     "allocation_title.md",
		"allocation_costs":     "allocation_costs.md",
		"allocation_products":  "allocation_products.md",
		"allocation_customers": "allocation_customers.md",
	}
	return renderTemplate("allocation", "allocation.md", partials, r)
}

// RenderTiers renders a tier report to a markdown string.
func RenderTiers(r *costing.TierReport) string {
	partials := map[string]string{
		"tiers_title":        "tiers_title.md",
		"tiers_distribution": "tiers_distribution.md",
		"tiers_drivers":      "tiers_drivers.md",
		"tiers_customers":    "tiers_customers.md",
	}
	return renderTemplate("tiers", "tiers.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(helpers).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Funcs(helpers).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
