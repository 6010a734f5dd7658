package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/observability"
	"github.com/matzehuels/pixelforge/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

// serveOpts holds the command-line flags of serve.
type serveOpts struct {
	addr    string
	workers int
	pipeline.Options
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: c.Config.Addr, workers: c.Config.Workers}
	opts.Target = c.Config.Target

	cmd := &cobra.Command{
		Use:   "serve [files...]",
		Short: "Build and serve the artifacts over HTTP for previewing",
		Long: `Build the project and serve its artifacts over HTTP.

The index page lists every artifact. POST /rebuild reloads the project files
and rebuilds; the previous artifacts stay available if the reload fails.

Endpoints:
  GET  /                  index of artifacts
  GET  /artifacts/{name}  one artifact
  GET  /build             summary of the last build as JSON
  POST /rebuild           reload and rebuild
  GET  /healthz           liveness`,
		Args: projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address (env PIXELFORGE_ADDR)")
	cmd.Flags().StringVarP(&opts.Target, "target", "t", opts.Target, "target profile (env PIXELFORGE_TARGET)")
	cmd.Flags().StringVar(&opts.Shader, "shader", "", "shader overriding the target's")
	cmd.Flags().IntVar(&opts.Scale, "scale", 0, "integer upscale overriding target and asset scales")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "sheet mode overriding the target's: none, auto or WxH")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", opts.workers, "concurrent renders, 0 for one per CPU (env PIXELFORGE_WORKERS)")

	_ = cmd.RegisterFlagCompletionFunc("target", completeNames(asset.KindTarget))
	_ = cmd.RegisterFlagCompletionFunc("shader", completeNames(asset.KindShader))

	return cmd
}

func (c *CLI) runServe(ctx context.Context, w io.Writer, paths []string, opts serveOpts) error {
	srv := newPreviewServer(c, paths, opts.Options, opts.workers)
	if err := srv.rebuild(ctx); err != nil && !srv.ready() {
		return err
	}

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	printSuccess(w, "Serving preview on http://%s", opts.addr)
	printNextStep(w, "Rebuild after editing", "curl -X POST http://"+opts.addr+"/rebuild")

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down preview server")
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Preview Server
// =============================================================================

// previewServer holds the artifacts of the latest successful load.
type previewServer struct {
	cli     *CLI
	paths   []string
	opts    pipeline.Options
	workers int

	mu     sync.RWMutex
	result *pipeline.Result
	err    error // error of the latest rebuild, if any
}

func newPreviewServer(c *CLI, paths []string, opts pipeline.Options, workers int) *previewServer {
	return &previewServer{cli: c, paths: paths, opts: opts, workers: workers}
}

// rebuild reloads the project and rebuilds it. A result with per-asset
// failures replaces the previous one; a load or setup failure keeps it.
func (s *previewServer) rebuild(ctx context.Context) error {
	reg, err := s.cli.loadProject(ctx, s.paths)
	var result *pipeline.Result
	if err == nil {
		result, err = s.cli.newRunner(s.workers).Build(ctx, reg, s.opts)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if result != nil {
		s.result = result
	}
	s.err = err
	if err != nil {
		s.cli.Logger.Warn("rebuild failed", "error", err)
	}
	return err
}

func (s *previewServer) ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result != nil
}

func (s *previewServer) snapshot() (*pipeline.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.err
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestHooks)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok\n")
	})
	r.Get("/build", s.handleBuild)
	r.Get("/artifacts/{name}", s.handleArtifact)
	r.Post("/rebuild", s.handleRebuild)
	return r
}

// requestHooks reports every request to the serve hooks.
func requestHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Serve().OnRequest(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>pixelforge preview</title>
<style>
body { font-family: sans-serif; background: #1d2b53; color: #fff1e8; }
img { image-rendering: pixelated; min-width: 64px; background: #5f574f; }
figure { display: inline-block; margin: 1em; }
.error { color: #ff004d; }
</style>
</head>
<body>
<h1>{{.Target}} <small>{{.BuildID}}</small></h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{range .Images}}<figure><img src="/artifacts/{{.}}" alt="{{.}}"><figcaption>{{.}}</figcaption></figure>
{{end}}
<ul>
{{range .Files}}<li><a href="/artifacts/{{.}}">{{.}}</a></li>
{{end}}
</ul>
</body>
</html>
`))

type indexData struct {
	Target  string
	BuildID string
	Error   string
	Images  []string
	Files   []string
}

func (s *previewServer) handleIndex(w http.ResponseWriter, _ *http.Request) {
	result, err := s.snapshot()
	data := indexData{}
	if err != nil {
		data.Error = err.Error()
	}
	if result != nil {
		data.Target = result.Target.Name
		data.BuildID = result.BuildID
		for _, name := range result.ArtifactNames() {
			if filepath.Ext(name) == ".png" {
				data.Images = append(data.Images, name)
			} else {
				data.Files = append(data.Files, name)
			}
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.cli.Logger.Warn("render index", "error", err)
	}
}

// buildSummary is the JSON body of GET /build.
type buildSummary struct {
	BuildID   string   `json:"build_id"`
	Target    string   `json:"target"`
	Shader    string   `json:"shader"`
	Order     []string `json:"order"`
	Artifacts []string `json:"artifacts"`
	Failed    []string `json:"failed"`
	Skipped   []string `json:"skipped"`
	Error     string   `json:"error,omitempty"`
}

func (s *previewServer) handleBuild(w http.ResponseWriter, _ *http.Request) {
	result, err := s.snapshot()
	if result == nil {
		http.Error(w, "no build available", http.StatusServiceUnavailable)
		return
	}
	summary := buildSummary{
		BuildID:   result.BuildID,
		Target:    result.Target.Name,
		Shader:    result.Shader.Name,
		Order:     idStrings(result.Order),
		Artifacts: result.ArtifactNames(),
		Failed:    idStrings(result.Failed),
		Skipped:   idStrings(result.Skipped),
	}
	if err != nil {
		summary.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *previewServer) handleArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	result, _ := s.snapshot()
	if result == nil {
		http.Error(w, "no build available", http.StatusServiceUnavailable)
		return
	}
	data, ok := result.Artifacts[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", ctype)
	w.Write(data)
}

func (s *previewServer) handleRebuild(w http.ResponseWriter, r *http.Request) {
	err := s.rebuild(r.Context())
	result, _ := s.snapshot()
	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	body := map[string]any{"ok": err == nil}
	if result != nil {
		body["build_id"] = result.BuildID
	}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func idStrings(ids []asset.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
