package www

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"
)

type SysInfo struct {
	Version   string
	StartedAt time.Time
	Timezone  string
	BaseURL   string
	Workers   int
}

func NewSysInfoHandler(logger *slog.Logger, tm *TemplateManager, hub *Hub, sysInfo SysInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")

		data := struct {
			SysInfo
			Uptime     time.Duration
			GoVersion  string
			Goroutines int
			Clients    int
		}{
			SysInfo:    sysInfo,
			Uptime:     time.Since(sysInfo.StartedAt).Round(time.Second),
			GoVersion:  runtime.Version(),
			Goroutines: runtime.NumGoroutine(),
			Clients:    hub.ClientCount(),
		}

		if err := tm.ExecuteToWriter("sys_info.html", data, w); err != nil {
			logger.Error("handling sys info request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
