// Package wasmdom renders the application shell into the browser DOM.
package wasmdom

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/withgalaxy/trackly/pkg/app"
	"github.com/withgalaxy/trackly/pkg/router"
)

// PageMarkup is the placeholder body for a page. Page modules replace it
// once they mount.
func PageMarkup(page app.Page, params router.Params) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<section class="page page-%s" data-page="%s">`, page.Name, page.Name)
	fmt.Fprintf(&sb, "<h1>%s</h1>", html.EscapeString(page.Title))

	if len(params) > 0 {
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)

		sb.WriteString(`<dl class="params">`)
		for _, name := range names {
			fmt.Fprintf(&sb, "<dt>%s</dt><dd>%s</dd>", html.EscapeString(name), html.EscapeString(params[name]))
		}
		sb.WriteString("</dl>")
	}

	sb.WriteString("</section>")
	return sb.String()
}

func NotFoundMarkup(path string) string {
	return fmt.Sprintf(`<section class="page page-not-found"><h1>Not found</h1><p>No page at <code>%s</code>.</p><a href="#/dashboard">Back to dashboard</a></section>`,
		html.EscapeString(path))
}

func DocumentTitle(appTitle, pageTitle string) string {
	if pageTitle == "" {
		return appTitle
	}
	return pageTitle + " · " + appTitle
}
