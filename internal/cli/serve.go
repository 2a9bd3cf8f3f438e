package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	duerr "github.com/Koranir/dumap/pkg/errors"
	"github.com/Koranir/dumap/pkg/render"
	"github.com/Koranir/dumap/pkg/report"
	"github.com/Koranir/dumap/pkg/scan"
	"github.com/Koranir/dumap/pkg/treemap"
)

// serveCommand creates the serve command exposing reports over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	opts := c.defaultLayoutOpts()

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve disk usage reports and treemaps over HTTP",
		Long: `Serve disk usage reports and treemaps over HTTP.

The directory is scanned once at startup. Endpoints:

  GET  /              HTML page with an embedded treemap
  GET  /treemap.svg   rendered treemap (query: w, h)
  GET  /tree.svg      Graphviz diagram of the directory tree
  GET  /api/report    the usage report as JSON
  GET  /api/layout    the treemap layout as JSON (query: w, h)
  POST /api/rescan    walk the tree again and swap in the new report
  GET  /healthz       liveness probe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Addr, "listen address")
	opts.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, root, addr string, opts layoutOpts) error {
	if err := duerr.ValidateScanRoot(root); err != nil {
		return err
	}
	if err := duerr.ValidateDimensions(opts.width, opts.height); err != nil {
		return err
	}

	srv := &server{logger: c.Logger, root: root, opts: opts}
	if err := srv.rescan(); err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "root", root)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// server holds the scanned tree behind a lock so rescans swap it
// atomically under concurrent readers.
type server struct {
	logger *log.Logger
	root   string
	opts   layoutOpts

	mu   sync.RWMutex
	node *scan.Node
	rep  report.Report
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/treemap.svg", s.handleTreemapSVG)
	r.Get("/tree.svg", s.handleTreeSVG)
	r.Get("/api/report", s.handleReport)
	r.Get("/api/layout", s.handleLayout)
	r.Post("/api/rescan", s.handleRescan)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start).Round(time.Millisecond))
	})
}

// rescan walks the tree and swaps in the fresh report.
func (s *server) rescan() error {
	node, err := scan.Scan(s.root, scan.Options{Logger: s.logger})
	if err != nil {
		return duerr.Wrap(duerr.ErrCodeScanFailed, err, "cannot scan %s", s.root)
	}
	rep := report.New(node)

	s.mu.Lock()
	s.node = node
	s.rep = rep
	s.mu.Unlock()

	s.logger.Info("scan complete", "root", s.root, "size", rep.TotalHuman, "files", rep.Files, "dirs", rep.Dirs)
	return nil
}

// snapshot returns the current tree and report.
func (s *server) snapshot() (*scan.Node, report.Report) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node, s.rep
}

// frame reads the w and h query parameters, falling back to the
// configured defaults.
func (s *server) frame(r *http.Request) (float64, float64, error) {
	w, h := s.opts.width, s.opts.height
	if q := r.URL.Query().Get("w"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return 0, 0, duerr.New(duerr.ErrCodeInvalidDimensions, "bad width %q", q)
		}
		w = v
	}
	if q := r.URL.Query().Get("h"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return 0, 0, duerr.New(duerr.ErrCodeInvalidDimensions, "bad height %q", q)
		}
		h = v
	}
	if err := duerr.ValidateDimensions(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func (s *server) layoutFor(r *http.Request) (*treemap.Layout, string, error) {
	w, h, err := s.frame(r)
	if err != nil {
		return nil, "", err
	}
	node, rep := s.snapshot()
	o := s.opts
	o.width, o.height = w, h
	return treemap.Build(node, treemap.Rect{W: w, H: h}, o.treemapOptions()), rep.ID, nil
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, rep := s.snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>dumap - %s</title></head>
<body style="margin:0;background:#111;color:#eee;font-family:sans-serif">
<div style="padding:8px">%s &middot; %s</div>
<img src="/treemap.svg" style="width:100vw;display:block" alt="treemap"/>
</body>
</html>
`, html.EscapeString(rep.Root), html.EscapeString(rep.Root), rep.TotalHuman)
}

func (s *server) handleTreemapSVG(w http.ResponseWriter, r *http.Request) {
	l, _, err := s.layoutFor(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(render.RenderSVG(l, render.WithHover()))
}

func (s *server) handleTreeSVG(w http.ResponseWriter, r *http.Request) {
	node, _ := s.snapshot()
	svg, err := render.RenderDOT(r.Context(), render.ToDOT(node, render.DOTOptions{}))
	if err != nil {
		s.writeError(w, duerr.Wrap(duerr.ErrCodeRenderFailed, err, "render tree diagram"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func (s *server) handleReport(w http.ResponseWriter, _ *http.Request) {
	_, rep := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteReport(rep, w); err != nil {
		s.logger.Error("write report response", "err", err)
	}
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	l, reportID, err := s.layoutFor(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := report.MarshalLayout(report.ExportLayout(l, reportID))
	if err != nil {
		s.writeError(w, duerr.Wrap(duerr.ErrCodeInternal, err, "marshal layout"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *server) handleRescan(w http.ResponseWriter, _ *http.Request) {
	if err := s.rescan(); err != nil {
		s.writeError(w, err)
		return
	}
	_, rep := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"report_id": rep.ID,
		"total":     rep.TotalHuman,
	}); err != nil {
		s.logger.Error("write rescan response", "err", err)
	}
}

// writeError maps structured error codes to HTTP statuses and writes a
// JSON error body.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch duerr.GetCode(err) {
	case duerr.ErrCodeInvalidDimensions, duerr.ErrCodeInvalidInput, duerr.ErrCodeInvalidFormat, duerr.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case duerr.ErrCodeNotFound, duerr.ErrCodeFileNotFound, duerr.ErrCodeReportNotFound:
		status = http.StatusNotFound
	}

	s.logger.Error("request failed", "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":  string(duerr.GetCode(err)),
		"error": duerr.UserMessage(err),
	})
}

