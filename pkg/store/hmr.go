//go:build js && wasm
// +build js,wasm

package store

import (
	"encoding/json"
	"fmt"
	"syscall/js"
)

const hmrStateGlobal = "__tracklyWasmState"

// HMRPersister keeps snapshots as JSON strings on a page global, which
// survives the wasm module being swapped by the dev server.
type HMRPersister struct{}

func (HMRPersister) Save(key string, state map[string]any) error {
	ensureHMRGlobals()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state %s: %w", key, err)
	}

	js.Global().Get(hmrStateGlobal).Set(key, string(data))
	return nil
}

func (HMRPersister) Load(key string) (map[string]any, bool) {
	ensureHMRGlobals()

	val := js.Global().Get(hmrStateGlobal).Get(key)
	if val.IsUndefined() || val.IsNull() {
		return nil, false
	}

	var state map[string]any
	if err := json.Unmarshal([]byte(val.String()), &state); err != nil {
		return nil, false
	}
	return state, true
}

func ensureHMRGlobals() {
	if js.Global().Get(hmrStateGlobal).IsUndefined() {
		js.Global().Set(hmrStateGlobal, js.Global().Get("Object").New())
	}
}
