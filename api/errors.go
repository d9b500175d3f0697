package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/beautifulplanet/safetyserv/metrics"
)

func httpError(w http.ResponseWriter, code int, errcode string, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(fmt.Sprintf(`{"errcode": "%s", "error": "%s"}`, errcode, msg)))
}

type errorResponder struct {
	action string
	w      http.ResponseWriter
	r      *http.Request
}

func (e *errorResponder) text(httpCode int, errcode string, error string) {
	defer metrics.RecordHttpResponse(e.r.Method, e.action, httpCode)
	httpError(e.w, httpCode, errcode, error)
}

func (e *errorResponder) err(httpCode int, errcode string, err error) {
	log.Printf("%s error (%d/%s): %v", e.action, httpCode, errcode, err)
	e.text(httpCode, errcode, "Error")
}

func newErrorResponder(action string, w http.ResponseWriter, r *http.Request) *errorResponder {
	return &errorResponder{
		action: action,
		w:      w,
		r:      r,
	}
}
