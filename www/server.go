package www

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/angas/elexon-forecast/config"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	hub    *Hub
	tm     *TemplateManager
	mux    *http.ServeMux
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(
	cnfg *config.AppConfig,
	db LogReader,
	svc ForecastRequester,
	metrics http.Handler,
	version string,
) (*Server, error) {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.Api.WwwDir)
	if err != nil {
		return nil, fmt.Errorf("template manager initialization error: %w", err)
	}

	s := &Server{
		logger: logger,
		config: cnfg.Api,
		hub:    NewHub(logger.With(slog.String("component", "hub"))),
		tm:     tm,
		mux:    http.NewServeMux(),
	}

	session := NewSession(logger, cnfg.Api.SessionKey)
	defaults := DefaultWindow{DaysBack: cnfg.Gui.DefaultDaysBack, DaysAhead: cnfg.Gui.DefaultDaysAhead}

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	s.mux.Handle("GET /{$}", logReqMW(NewIndexHandler(
		logger.With(slog.String("handler", "index")),
		tm,
		session,
		defaults,
		cnfg.Gui.TriggerMode,
		version)))

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", staticFilesHandler(cnfg.Api.WwwDir)))

	s.mux.Handle("GET /forecast", logReqMW(NewForecastHandler(
		logger.With(slog.String("handler", "forecast")),
		svc,
		session,
		defaults)))

	s.mux.Handle("GET /log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		db,
		tm)))

	s.mux.Handle("GET /sys_info", logReqMW(NewSysInfoHandler(
		logger.With(slog.String("handler", "sys_info")),
		tm,
		s.hub,
		SysInfo{
			Version:   version,
			StartedAt: time.Now(),
			Timezone:  cnfg.Gui.Timezone,
			BaseURL:   cnfg.Elexon.BaseURL,
			Workers:   cnfg.Elexon.Workers,
		})))

	if metrics != nil {
		s.mux.Handle("GET /metrics", metrics)
	}

	s.mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// NotifyRefresh tells every open dashboard to request its forecast again.
func (s *Server) NotifyRefresh() {
	s.hub.Publish(Message{Type: MessageRefresh, At: time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.hub.Run(ctx)

	srvErrors := make(chan error, 1)
	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-srvErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", slog.Any("error", err))
		}

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
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
