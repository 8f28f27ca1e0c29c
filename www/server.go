package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/odonslab/dengueview-go/config"
	"github.com/odonslab/dengueview-go/database"
	"github.com/odonslab/dengueview-go/task"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	db     *database.Database
	hub    *Hub
	tm     *TemplateManager
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(db *database.Database, tasks *task.Tasks, config config.AppConfigApi) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, config.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger: logger,
		config: config,
		db:     db,
		hub:    NewHub(logger),
		tm:     tm,
	}

	go s.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", staticFilesHandler(config.WwwDir))

	http.Handle("/report", logReqMW(NewReportHandler(
		logger.With(slog.String("handler", "report")),
		s.db,
		s.tm,
		tasks.ReportTask)))

	http.Handle("/charts", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "charts")),
		s.db)))

	http.Handle("/cases", logReqMW(NewCasesHandler(
		logger.With(slog.String("handler", "cases")),
		s.tm)))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db,
		s.tm)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.GetPort())
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", s.config.GetPort()),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Second * 2)
	defer ticker.Stop()

	// Keeping state to avoid spamming logs and re-pushing unchanged
	// fragments to connected pages.
	statusErrorState := false
	lastPushed := ""

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			err := srv.Shutdown(shutdownCtx)
			if err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			status, err := fetchReportStatus(ctx, s.db)
			if err != nil {
				if !statusErrorState {
					statusErrorState = true
					s.logger.Warn("failed to get report status", slog.Any("error", err))
				}
				continue
			}
			statusErrorState = false

			buf, err := s.tm.Execute("report_status.html", status)
			if err != nil {
				s.logger.Error("error executing report status template", slog.Any("error", err))
				continue
			}

			if buf.String() == lastPushed {
				continue
			}
			lastPushed = buf.String()
			s.hub.Broadcast <- buf.Bytes()
		}
	}
}

func staticFilesHandler(wwwDir *string) http.Handler {
	if wwwDir != nil {
		staticDir := path.Join(*wwwDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
