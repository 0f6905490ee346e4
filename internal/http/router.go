package httpserver

import (
	"net/http"

	"cellmon/internal/http/handlers"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Login     *handlers.LoginHandler
	Dashboard *handlers.DashboardHandlers
	Export    *handlers.ExportHandlers
	Health    http.HandlerFunc
	WS        http.HandlerFunc
	Metrics   http.Handler
}

// NewRouter wires HTTP routes with middleware.
func NewRouter(deps RouterDeps, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, deps.Health))
	mux.Handle("/api/login", method(http.MethodPost, http.HandlerFunc(deps.Login.Login)))

	authenticated := func(expected string, handler http.HandlerFunc) http.Handler {
		return method(expected, authMiddleware(handler))
	}

	mux.Handle("/api/overview", authenticated(http.MethodGet, deps.Dashboard.Overview))
	mux.Handle("/api/cells", authenticated(http.MethodGet, deps.Dashboard.Cells))
	mux.Handle("/api/refresh", authenticated(http.MethodPost, deps.Dashboard.Refresh))
	mux.Handle("/api/roster", authenticated(http.MethodPut, deps.Dashboard.SetRoster))
	mux.Handle("/api/autorefresh", authenticated(http.MethodPut, deps.Dashboard.SetAutoRefresh))
	mux.Handle("/api/export/csv", authenticated(http.MethodGet, deps.Export.CSV))
	mux.Handle("/api/export/json", authenticated(http.MethodGet, deps.Export.JSON))

	if deps.WS != nil {
		mux.Handle("/ws", method(http.MethodGet, deps.WS))
	}
	if deps.Metrics != nil {
		mux.Handle("/metrics", method(http.MethodGet, deps.Metrics))
	}

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
