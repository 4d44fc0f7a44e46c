package web

import (
	"html/template"

	"zenjourney/internal/services"
	"zenjourney/pkg/utils"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatCost": services.FormatCost,
		"markdown":   markdown,
		"add":        add,
		"sub":        sub,
	}
}

// markdown renders sanitized Markdown. RenderMarkdown strips unsafe markup.
func markdown(src string) template.HTML {
	return template.HTML(utils.RenderMarkdown(src))
}

func add(a, b int) int {
	return a + b
}

func sub(a, b int) int {
	return a - b
}
