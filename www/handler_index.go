package www

import (
	"log/slog"
	"net/http"
)

type indexData struct {
	Start       string
	End         string
	TriggerMode string
	Version     string
}

func NewIndexHandler(logger *slog.Logger, tm *TemplateManager, session *Session, defaults DefaultWindow, triggerMode string, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")

		window := windowFor(r, session, defaults)
		data := indexData{
			Start:       window.Start,
			End:         window.End,
			TriggerMode: triggerMode,
			Version:     version,
		}

		if err := tm.ExecuteToWriter("index.html", data, w); err != nil {
			logger.Error("handling index request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
