package popn

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const maxUpload = 32 << (10 * 2)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// Handler returns an HTTP handler exposing the catalogue.
//
//	POST /detect          detect and store the chart image in the body
//	GET  /charts          list stored charts
//	GET  /charts/{sha1}   fetch one stored chart
func (p *Popn) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/detect", p.handleDetect).Methods(http.MethodPost)
	router.HandleFunc("/charts", p.handleCharts).Methods(http.MethodGet)
	router.HandleFunc("/charts/{sha1}", p.handleChart).Methods(http.MethodGet)
	return cors.Default().Handler(router)
}

func (p *Popn) handleDetect(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload"
	}

	ch, err := p.Detect(name, http.MaxBytesReader(w, r.Body, maxUpload))
	if err != nil {
		p.logger.Printf("Detect failed for \"%s\": %s\n", name, err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (p *Popn) handleCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := p.Charts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if charts == nil {
		charts = []Chart{}
	}
	writeJSON(w, http.StatusOK, charts)
}

func (p *Popn) handleChart(w http.ResponseWriter, r *http.Request) {
	ch, err := p.Chart(mux.Vars(r)["sha1"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ch == nil {
		writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}
