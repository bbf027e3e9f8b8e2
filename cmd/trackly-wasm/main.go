//go:build js && wasm

package main

import (
	"fmt"

	"github.com/withgalaxy/trackly/pkg/app"
	"github.com/withgalaxy/trackly/pkg/config"
	"github.com/withgalaxy/trackly/pkg/router"
	"github.com/withgalaxy/trackly/pkg/store"
	"github.com/withgalaxy/trackly/pkg/wasmdom"
)

func main() {
	cfg := config.DefaultConfig()

	renderer := wasmdom.NewRenderer(cfg.App.Title, "app")
	shell := app.New(cfg.App, router.NewHashLocation(), renderer,
		app.WithStoreOptions(
			store.WithRecover(),
			store.WithPersistence(store.HMRPersister{}, "trackly"),
		),
	)

	renderer.SetBodyAttr("data-theme", store.GetOr(shell.Store, app.KeyTheme, string(cfg.App.Theme)))
	shell.Store.Subscribe(app.KeyTheme, func(value, prev any) {
		renderer.SetBodyAttr("data-theme", fmt.Sprint(value))
	})
	shell.Store.Subscribe(app.KeySidebarCollapsed, func(value, prev any) {
		renderer.SetBodyAttr("data-sidebar-collapsed", fmt.Sprint(value))
	})

	shell.Start()

	select {}
}
