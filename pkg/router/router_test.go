package router

import (
	"strings"
	"testing"
)

func newTestRouter(hash string) (*Router, *MemoryLocation) {
	loc := NewMemoryLocation(hash)
	return New(loc), loc
}

func TestNew(t *testing.T) {
	r, _ := newTestRouter("")
	if r == nil {
		t.Fatal("New returned nil")
	}
	if len(r.Routes()) != 0 {
		t.Errorf("expected empty route table, got %d routes", len(r.Routes()))
	}
}

func TestRouter_FirstRegisteredWins(t *testing.T) {
	r, _ := newTestRouter("")

	var hit string
	var got Params
	r.Register("/projects/:id", func(p Params) { hit = "param"; got = p })
	r.Register("/projects/active", func(p Params) { hit = "literal" })

	r.Replace("/projects/active")

	if hit != "param" {
		t.Fatalf("expected /projects/:id to win, got %q", hit)
	}
	if got["id"] != "active" {
		t.Errorf("expected id=active, got %q", got["id"])
	}
}

func TestRouter_ParamIsURLDecoded(t *testing.T) {
	r, _ := newTestRouter("")

	var got Params
	r.Register("/projects/:id/board", func(p Params) { got = p })

	r.Replace("/projects/PRJ-7%20A/board")

	if got == nil {
		t.Fatal("handler was not called")
	}
	if got["id"] != "PRJ-7 A" {
		t.Errorf("expected id=%q, got %q", "PRJ-7 A", got["id"])
	}
	if len(got) != 1 {
		t.Errorf("expected exactly one param, got %v", got)
	}
}

func TestRouter_MalformedEscapeKeepsRawSegment(t *testing.T) {
	r, _ := newTestRouter("")
	r.Register("/tasks/:id", func(Params) {})

	_, params, ok := r.Match("/tasks/50%")
	if !ok {
		t.Fatal("expected match")
	}
	if params["id"] != "50%" {
		t.Errorf("expected raw segment 50%%, got %q", params["id"])
	}
}

func TestRouter_SegmentCountMustMatch(t *testing.T) {
	r, _ := newTestRouter("")
	r.Register("/a/:b", func(Params) {})

	for _, path := range []string{"/a/b/c", "/a", "/"} {
		if _, _, ok := r.Match(path); ok {
			t.Errorf("expected %s not to match /a/:b", path)
		}
	}
	if _, _, ok := r.Match("/a/b"); !ok {
		t.Error("expected /a/b to match /a/:b")
	}
}

func TestRouter_SlashesAreInsignificant(t *testing.T) {
	r, _ := newTestRouter("")
	r.Register("projects/:id/", func(Params) {})

	tests := []string{"/projects/7", "projects/7", "/projects/7/", "//projects//7"}
	for _, path := range tests {
		if _, params, ok := r.Match(path); !ok || params["id"] != "7" {
			t.Errorf("Match(%q) = %v, %v; want id=7", path, params, ok)
		}
	}
}

func TestRouter_LiteralsAreCaseSensitive(t *testing.T) {
	r, _ := newTestRouter("")
	r.Register("/settings", func(Params) {})

	if _, _, ok := r.Match("/Settings"); ok {
		t.Error("expected /Settings not to match /settings")
	}
}

func TestRouter_RootRoute(t *testing.T) {
	r, _ := newTestRouter("")

	called := 0
	r.Register("/", func(p Params) {
		called++
		if len(p) != 0 {
			t.Errorf("expected no params, got %v", p)
		}
	})

	r.Init()

	if called != 1 {
		t.Errorf("expected root handler once on init, got %d", called)
	}
}

func TestRouter_NotFound(t *testing.T) {
	r, _ := newTestRouter("")
	r.Register("/projects", func(Params) { t.Error("unexpected match") })

	var calls []Params
	r.SetNotFound(func(p Params) { calls = append(calls, p) })

	r.Replace("/nowhere/at/all")

	if len(calls) != 1 {
		t.Fatalf("expected not-found once, got %d", len(calls))
	}
	if calls[0]["path"] != "/nowhere/at/all" {
		t.Errorf("expected path /nowhere/at/all, got %q", calls[0]["path"])
	}
}

func TestRouter_NotFoundOverwrites(t *testing.T) {
	r, _ := newTestRouter("")

	first, second := 0, 0
	r.SetNotFound(func(Params) { first++ })
	r.SetNotFound(func(Params) { second++ })

	r.Replace("/missing")

	if first != 0 || second != 1 {
		t.Errorf("expected only the last not-found handler, got first=%d second=%d", first, second)
	}
}

func TestRouter_NoMatchWithoutNotFoundIsNoop(t *testing.T) {
	r, _ := newTestRouter("")
	r.Register("/a", func(Params) { t.Error("unexpected match") })

	r.Replace("/b")
}

func TestRouter_ReplaceDispatchesSynchronously(t *testing.T) {
	r, loc := newTestRouter("")

	ran := false
	r.Register("/foo", func(Params) { ran = true })
	r.Init()

	r.Replace("/foo")

	if !ran {
		t.Fatal("expected handler to have run before Replace returned")
	}
	if loc.Pending() != 0 {
		t.Errorf("Replace should not queue a change event, got %d pending", loc.Pending())
	}
	if loc.Len() != 1 {
		t.Errorf("Replace should not add history, got %d entries", loc.Len())
	}
}

func TestRouter_NavigateDispatchesAsynchronously(t *testing.T) {
	r, loc := newTestRouter("")

	ran := 0
	r.Register("/foo", func(Params) { ran++ })
	r.Init()

	r.Navigate("/foo")

	if ran != 0 {
		t.Fatal("handler ran before the change event was delivered")
	}
	if loc.Hash() != "#/foo" {
		t.Errorf("expected hash #/foo, got %q", loc.Hash())
	}

	loc.Flush()

	if ran != 1 {
		t.Errorf("expected handler once after flush, got %d", ran)
	}
}

func TestRouter_NavigateKeepsExistingMarker(t *testing.T) {
	r, loc := newTestRouter("")

	r.Navigate("#/projects")

	if loc.Hash() != "#/projects" {
		t.Errorf("expected #/projects, got %q", loc.Hash())
	}
}

func TestRouter_CurrentPath(t *testing.T) {
	tests := []struct {
		hash string
		want string
	}{
		{"", "/"},
		{"#", "/"},
		{"#/", "/"},
		{"#/projects/7", "/projects/7"},
		{"#settings", "settings"},
	}

	for _, tt := range tests {
		r, _ := newTestRouter(tt.hash)
		if got := r.CurrentPath(); got != tt.want {
			t.Errorf("CurrentPath() with hash %q = %q, want %q", tt.hash, got, tt.want)
		}
	}
}

func TestRouter_InitStopDetaches(t *testing.T) {
	r, loc := newTestRouter("#/a")

	calls := 0
	r.Register("/:page", func(Params) { calls++ })

	stop := r.Init()
	if calls != 1 {
		t.Fatalf("expected initial dispatch, got %d calls", calls)
	}

	stop()
	r.Navigate("/b")
	loc.Flush()

	if calls != 1 {
		t.Errorf("expected no dispatch after stop, got %d calls", calls)
	}
}

func TestRouter_HandlerPanicPropagates(t *testing.T) {
	r, _ := newTestRouter("")
	r.Register("/boom", func(Params) { panic("boom") })

	defer func() {
		if recover() == nil {
			t.Error("expected handler panic to reach the caller")
		}
	}()

	r.Replace("/boom")
}

func TestRouter_String(t *testing.T) {
	r, _ := newTestRouter("")
	r.Register("/projects/:id/board", func(Params) {})

	out := r.String()
	if !strings.Contains(out, "Routes: 1") {
		t.Errorf("expected route count in output, got:\n%s", out)
	}
	if !strings.Contains(out, "/projects/:id/board") || !strings.Contains(out, "[id]") {
		t.Errorf("expected pattern and params in output, got:\n%s", out)
	}
}
