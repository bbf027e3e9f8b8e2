//go:build js && wasm
// +build js,wasm

package router

import (
	"syscall/js"
)

// HashLocation binds a Router to window.location.hash.
type HashLocation struct {
	window js.Value
}

func NewHashLocation() *HashLocation {
	return &HashLocation{window: js.Global().Get("window")}
}

func (h *HashLocation) Hash() string {
	return h.window.Get("location").Get("hash").String()
}

func (h *HashLocation) SetHash(hash string) {
	h.window.Get("location").Set("hash", hash)
}

// ReplaceHash uses history.replaceState, which rewrites the current entry
// without firing hashchange.
func (h *HashLocation) ReplaceHash(hash string) {
	h.window.Get("history").Call("replaceState", js.Null(), "", hash)
}

func (h *HashLocation) OnChange(fn func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn()
		return nil
	})
	h.window.Call("addEventListener", "hashchange", cb)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		h.window.Call("removeEventListener", "hashchange", cb)
		cb.Release()
	}
}
