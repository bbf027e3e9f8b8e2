package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/withgalaxy/trackly/pkg/app"
	"github.com/withgalaxy/trackly/pkg/config"
	"github.com/withgalaxy/trackly/pkg/hmr"
)

const (
	hmrPath       = "/__trackly/hmr"
	hmrClientPath = "/__trackly/client.js"
	routesPath    = "/_routes"
)

// DevServer serves the compiled wasm bundle and tells open tabs to reload
// when the bundle changes.
type DevServer struct {
	Config    *config.Config
	RootDir   string
	Pages     []app.Page
	HMRServer *hmr.Server
	Verbose   bool

	logger *slog.Logger
}

func NewDevServer(cfg *config.Config, rootDir string, verbose bool, logger *slog.Logger) *DevServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevServer{
		Config:    cfg,
		RootDir:   rootDir,
		Pages:     app.Pages(),
		HMRServer: hmr.NewServer(logger),
		Verbose:   verbose,
		logger:    logger,
	}
}

func (s *DevServer) outDir() string {
	if filepath.IsAbs(s.Config.Build.OutDir) {
		return s.Config.Build.OutDir
	}
	return filepath.Join(s.RootDir, s.Config.Build.OutDir)
}

func (s *DevServer) watchDirs() []string {
	dirs := s.Config.WatchDirs()
	out := make([]string, len(dirs))
	for i, dir := range dirs {
		if filepath.IsAbs(dir) {
			out[i] = dir
			continue
		}
		out[i] = filepath.Join(s.RootDir, dir)
	}
	return out
}

func (s *DevServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(hmrPath, s.HMRServer.HandleWebSocket)
	mux.HandleFunc(hmrClientPath, s.serveHMRClient)
	mux.HandleFunc(routesPath, s.logRequest(s.serveRoutes))
	mux.HandleFunc("/wasm_exec.js", s.logRequest(s.serveWasmExec))
	mux.HandleFunc("/", s.logRequest(s.handleRequest))
	return mux
}

// ListenAndServe runs the server and the bundle watcher until ctx is done.
func (s *DevServer) ListenAndServe(ctx context.Context) error {
	s.HMRServer.Start()
	defer s.HMRServer.Close()

	if err := os.MkdirAll(s.outDir(), 0755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	watcher := hmr.NewWatcher(s.watchDirs(), time.Duration(s.Config.Dev.DebounceMs)*time.Millisecond, s.logger)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Run(ctx, s.broadcastChanges)
	}()

	srv := &http.Server{
		Addr:    s.Config.Addr(),
		Handler: s.Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", "addr", "http://"+s.Config.Addr())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case err := <-watchErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			srv.Close()
			return err
		}
		<-ctx.Done()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *DevServer) broadcastChanges(changes []hmr.Change) {
	reloadPage := false
	for _, c := range changes {
		if strings.HasSuffix(c.Path, ".wasm") {
			rel := "/" + filepath.ToSlash(strings.TrimPrefix(c.Path, s.outDir()+string(filepath.Separator)))
			s.logger.Info("wasm bundle changed", "path", rel, "hash", c.Hash)
			s.HMRServer.BroadcastWasmReload(rel, c.Hash)
			s.HMRServer.BroadcastRoutes(app.Patterns())
			continue
		}
		reloadPage = true
	}
	if reloadPage {
		s.logger.Info("assets changed, reloading", "files", len(changes))
		s.HMRServer.BroadcastReload()
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *DevServer) logRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(rw, r)

		if s.Verbose {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration", time.Since(start),
			)
		}
	}
}

// handleRequest serves files from the build output. Anything without an
// extension gets the app shell: routing happens in the fragment, so every
// document request is the same page.
func (s *DevServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)

	if path.Ext(clean) != "" {
		http.ServeFile(w, r, filepath.Join(s.outDir(), filepath.FromSlash(clean)))
		return
	}

	index := filepath.Join(s.outDir(), "index.html")
	if _, err := os.Stat(index); err == nil {
		http.ServeFile(w, r, index)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.defaultIndex())
}

func (s *DevServer) defaultIndex() string {
	return fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<script src="/wasm_exec.js"></script>
<script src="%s"></script>
</head>
<body data-theme="%s">
<div id="app"></div>
<script>
const go = new Go();
WebAssembly.instantiateStreaming(fetch("/%s"), go.importObject).then((r) => go.run(r.instance));
</script>
</body>
</html>
`, html.EscapeString(s.Config.App.Title), hmrClientPath, s.Config.App.Theme, s.Config.Build.WasmFile)
}

func (s *DevServer) serveWasmExec(w http.ResponseWriter, r *http.Request) {
	local := filepath.Join(s.outDir(), "wasm_exec.js")
	if _, err := os.Stat(local); err == nil {
		http.ServeFile(w, r, local)
		return
	}

	goRoot := os.Getenv("GOROOT")
	if goRoot == "" {
		cmd := exec.Command("go", "env", "GOROOT")
		output, _ := cmd.Output()
		goRoot = strings.TrimSpace(string(output))
	}

	wasmExecPath := filepath.Join(goRoot, "misc", "wasm", "wasm_exec.js")
	if _, err := os.Stat(wasmExecPath); os.IsNotExist(err) {
		wasmExecPath = filepath.Join(goRoot, "lib", "wasm", "wasm_exec.js")
	}

	http.ServeFile(w, r, wasmExecPath)
}

func (s *DevServer) serveHMRClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache")
	fmt.Fprint(w, hmrClientJS)
}

const hmrClientJS = `(() => {
  const url = (location.protocol === "https:" ? "wss://" : "ws://") + location.host + "` + hmrPath + `";
  const ws = new WebSocket(url);
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    switch (msg.type) {
      case "reload":
      case "wasm-reload":
        location.reload();
        break;
      case "routes":
        console.info("[trackly] routes", msg.routes);
        break;
    }
  };
})();
`
