package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/allocator"
)

//go:embed templates/*.md
var embedded embed.FS

// templates holds the markdown templates by file name.
var templates, _ = fs.Sub(embedded, "templates")

// RenderOptions holds configuration for rendering an allocation report.
type RenderOptions struct {
	SkipTotals bool // Do not render the totals section.
}

// RenderPortfolio renders the result of a computation to a markdown string.
func RenderPortfolio(r *allocator.PortfolioResult, opts RenderOptions) string {
	partials := map[string]string{
		"portfolio_title":    "portfolio_title.md",
		"portfolio_trades":   "portfolio_trades.md",
		"portfolio_warnings": "portfolio_warnings.md",
	}
	// An empty file name results in an empty template.
	if !opts.SkipTotals {
		partials["portfolio_totals"] = "portfolio_totals.md"
	} else {
		partials["portfolio_totals"] = ""
	}
	return renderTemplate("portfolio", "portfolio.md", partials, NewAllocation(r))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
