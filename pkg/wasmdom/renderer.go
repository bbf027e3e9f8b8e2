//go:build js && wasm
// +build js,wasm

package wasmdom

import (
	"syscall/js"

	"github.com/withgalaxy/trackly/pkg/app"
	"github.com/withgalaxy/trackly/pkg/router"
)

// Renderer draws page placeholders into a mount element.
type Renderer struct {
	title    string
	document js.Value
	mount    js.Value
}

func NewRenderer(appTitle, mountID string) *Renderer {
	doc := js.Global().Get("document")
	return &Renderer{
		title:    appTitle,
		document: doc,
		mount:    doc.Call("getElementById", mountID),
	}
}

func (r *Renderer) Render(page app.Page, params router.Params) {
	r.document.Set("title", DocumentTitle(r.title, page.Title))
	r.mount.Set("innerHTML", PageMarkup(page, params))
}

func (r *Renderer) NotFound(path string) {
	r.document.Set("title", DocumentTitle(r.title, "Not found"))
	r.mount.Set("innerHTML", NotFoundMarkup(path))
}

// SetBodyAttr mirrors shared state onto <body> so stylesheets can react.
func (r *Renderer) SetBodyAttr(name, value string) {
	r.document.Get("body").Call("setAttribute", name, value)
}
