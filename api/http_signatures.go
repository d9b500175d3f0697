package api

import (
	"net/http"

	"github.com/beautifulplanet/safetyserv/metrics"
	"github.com/beautifulplanet/safetyserv/signature"
)

type signaturesResponse struct {
	Revision         string   `json:"revision"`
	TriggerCount     int      `json:"trigger_count"`
	DangerCount      int      `json:"danger_pattern_count"`
	MetadataCount    int      `json:"metadata_count"`
	TriggerIds       []string `json:"trigger_ids"`
	DangerPatternIds []string `json:"danger_pattern_ids"`
	MetadataIds      []string `json:"metadata_ids"`
}

func httpGetSignaturesApi(api *Api, w http.ResponseWriter, r *http.Request) {
	metrics.RecordHttpRequest(r.Method, "httpGetSignaturesApi")
	t := metrics.StartRequestTimer(r.Method, "httpGetSignaturesApi")
	defer t.ObserveDuration()

	errs := newErrorResponder("httpGetSignaturesApi", w, r)

	if r.Method != http.MethodGet {
		errs.text(http.StatusMethodNotAllowed, "UNRECOGNIZED", "Method not allowed")
		return
	}

	store := api.engine.Store()
	resp := &signaturesResponse{
		Revision:         store.Revision(),
		TriggerCount:     len(store.TriggerSignatures()),
		DangerCount:      len(store.DangerPatterns()),
		MetadataCount:    len(store.MetadataSignatures()),
		TriggerIds:       make([]string, 0),
		DangerPatternIds: make([]string, 0),
		MetadataIds:      make([]string, 0),
	}
	for _, sig := range store.TriggerSignatures() {
		resp.TriggerIds = append(resp.TriggerIds, sig.Id)
	}
	for _, p := range store.DangerPatterns() {
		resp.DangerPatternIds = append(resp.DangerPatternIds, p.Id)
	}
	for _, m := range store.MetadataSignatures() {
		resp.MetadataIds = append(resp.MetadataIds, m.Category)
	}

	if err := respondJson("httpGetSignaturesApi", r, w, resp); err != nil {
		errs.err(http.StatusInternalServerError, "UNKNOWN", err)
	}
}

type categoryResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

func httpGetCategoriesApi(api *Api, w http.ResponseWriter, r *http.Request) {
	metrics.RecordHttpRequest(r.Method, "httpGetCategoriesApi")
	t := metrics.StartRequestTimer(r.Method, "httpGetCategoriesApi")
	defer t.ObserveDuration()

	errs := newErrorResponder("httpGetCategoriesApi", w, r)

	if r.Method != http.MethodGet {
		errs.text(http.StatusMethodNotAllowed, "UNRECOGNIZED", "Method not allowed")
		return
	}

	categories := make([]*categoryResponse, 0)
	for id, cat := range api.engine.Store().Categories() {
		categories = append(categories, &categoryResponse{
			Id:          id,
			Name:        displayName(api.engine.Store(), id, cat),
			Emoji:       cat.Emoji,
			Description: cat.Description,
		})
	}

	if err := respondJson("httpGetCategoriesApi", r, w, map[string]any{"categories": categories}); err != nil {
		errs.err(http.StatusInternalServerError, "UNKNOWN", err)
	}
}

func displayName(store *signature.Store, id string, cat signature.Category) string {
	if cat.Name != "" {
		return cat.Name
	}
	return store.CategoryName(id)
}

func httpGetQuotaApi(api *Api, w http.ResponseWriter, r *http.Request) {
	metrics.RecordHttpRequest(r.Method, "httpGetQuotaApi")
	t := metrics.StartRequestTimer(r.Method, "httpGetQuotaApi")
	defer t.ObserveDuration()

	errs := newErrorResponder("httpGetQuotaApi", w, r)

	if r.Method != http.MethodGet {
		errs.text(http.StatusMethodNotAllowed, "UNRECOGNIZED", "Method not allowed")
		return
	}

	remaining, err := api.quota.Remaining(r.Context())
	if err != nil {
		errs.err(http.StatusInternalServerError, "UNKNOWN", err)
		return
	}

	if err = respondJson("httpGetQuotaApi", r, w, map[string]any{"remaining_units": remaining}); err != nil {
		errs.err(http.StatusInternalServerError, "UNKNOWN", err)
	}
}
