package api

import (
	"log"
	"net/http"

	"github.com/beautifulplanet/safetyserv/analysis"
	"github.com/beautifulplanet/safetyserv/metrics"
	"github.com/beautifulplanet/safetyserv/queue"
	"github.com/beautifulplanet/safetyserv/storage"
	"github.com/beautifulplanet/safetyserv/tasks"
)

type Config struct {
	// Optional. If empty, the safetyserv API will be disabled.
	ApiKey string
}

type Api struct {
	storage storage.PersistentStorage
	engine  *analysis.Engine
	pool    *queue.Pool
	quota   *tasks.QuotaTracker
	apiKey  string
}

func NewApi(config *Config, storage storage.PersistentStorage, engine *analysis.Engine, pool *queue.Pool, quota *tasks.QuotaTracker) (*Api, error) {
	return &Api{
		storage: storage,
		engine:  engine,
		pool:    pool,
		quota:   quota,
		apiKey:  config.ApiKey,
	}, nil
}

func (a *Api) httpRequestHandler(upstream func(api *Api, w http.ResponseWriter, r *http.Request)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstream(a, w, r)
	})
}

func (a *Api) httpAuthenticatedRequestHandler(upstream func(api *Api, w http.ResponseWriter, r *http.Request)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+a.apiKey {
			defer metrics.RecordHttpResponse(r.Method, "httpAuthenticatedRequestHandler", http.StatusUnauthorized)
			httpError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not allowed")
			return
		}

		upstream(a, w, r)
	})
}

func (a *Api) BindTo(mux *http.ServeMux) error {
	mux.Handle("/", a.httpRequestHandler(httpCatchAll))
	mux.Handle("/health", a.httpRequestHandler(httpHealth))
	mux.Handle("/ready", a.httpRequestHandler(httpReady))

	if a.apiKey != "" {
		log.Println("Enabling safetyserv API")
		mux.Handle("/api/v1/analyze", a.httpAuthenticatedRequestHandler(httpAnalyzeApi))
		mux.Handle("/api/v1/analyses/{videoId}", a.httpAuthenticatedRequestHandler(httpGetAnalysisApi))
		mux.Handle("/api/v1/signatures", a.httpAuthenticatedRequestHandler(httpGetSignaturesApi))
		mux.Handle("/api/v1/categories", a.httpAuthenticatedRequestHandler(httpGetCategoriesApi))
		mux.Handle("/api/v1/quota", a.httpAuthenticatedRequestHandler(httpGetQuotaApi))
	}

	return nil
}
