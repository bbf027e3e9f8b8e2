// Package app wires the TRACKLY page table to the router and the shared
// store.
package app

import (
	"log/slog"

	"github.com/withgalaxy/trackly/pkg/config"
	"github.com/withgalaxy/trackly/pkg/router"
	"github.com/withgalaxy/trackly/pkg/store"
)

// Renderer draws pages. Implementations live with the host (DOM in the
// browser, a recorder in tests).
type Renderer interface {
	Render(page Page, params router.Params)
	NotFound(path string)
}

type Shell struct {
	Router *router.Router
	Store  *store.Store

	cfg      config.AppConfig
	loc      router.Location
	renderer Renderer
	logger   *slog.Logger
	storeOps []store.Option
	stop     func()
}

type Option func(*Shell)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStoreOptions passes options through to the application store.
func WithStoreOptions(opts ...store.Option) Option {
	return func(s *Shell) {
		s.storeOps = append(s.storeOps, opts...)
	}
}

// New builds the store and router and registers every page.
func New(cfg config.AppConfig, loc router.Location, renderer Renderer, opts ...Option) *Shell {
	s := &Shell{
		cfg:      cfg,
		loc:      loc,
		renderer: renderer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Store = store.New(InitialState(cfg), append([]store.Option{store.WithLogger(s.logger)}, s.storeOps...)...)
	s.restoreUser()
	s.Router = router.New(loc, router.WithLogger(s.logger))

	for _, page := range pages {
		s.Router.Register(page.Pattern, s.pageHandler(page))
	}
	s.Router.SetNotFound(func(p router.Params) {
		s.Store.Set(KeyPage, "")
		s.renderer.NotFound(p["path"])
	})

	return s
}

// restoreUser retypes a user loaded from a persisted snapshot. A user that
// cannot be decoded is dropped.
func (s *Shell) restoreUser() {
	raw := s.Store.Get(KeyCurrentUser)
	if _, ok := raw.(*User); ok || raw == nil {
		return
	}

	user, err := decodeUser(raw)
	if err != nil {
		s.logger.Warn("discarding stored user", "error", err)
		s.Store.Set(KeyCurrentUser, nil)
		return
	}
	s.Store.Set(KeyCurrentUser, user)
}

func (s *Shell) pageHandler(page Page) router.Handler {
	return func(params router.Params) {
		var project any
		if page.Project {
			project = params["id"]
		}
		s.Store.SetMany(
			store.Entry{Key: KeyActiveProject, Value: project},
			store.Entry{Key: KeyPage, Value: page.Name},
		)
		s.logger.Debug("rendering page", "page", page.Name, "params", params)
		s.renderer.Render(page, params)
	}
}

// Start attaches the router to its location. An empty fragment is replaced
// with the configured start path.
func (s *Shell) Start() {
	if hash := s.loc.Hash(); hash == "" || hash == "#" {
		s.loc.ReplaceHash("#" + s.cfg.StartPath)
	}
	s.stop = s.Router.Init()
}

func (s *Shell) Stop() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *Shell) ToggleSidebar() bool {
	collapsed := !store.GetOr(s.Store, KeySidebarCollapsed, false)
	s.Store.Set(KeySidebarCollapsed, collapsed)
	return collapsed
}

func (s *Shell) SignIn(user User) {
	s.Store.Set(KeyCurrentUser, &user)
}

func (s *Shell) SignOut() {
	s.Store.Set(KeyCurrentUser, nil)
	s.Router.Navigate("/login")
}

func (s *Shell) CurrentUser() (*User, bool) {
	u, ok := store.GetAs[*User](s.Store, KeyCurrentUser)
	return u, ok && u != nil
}
