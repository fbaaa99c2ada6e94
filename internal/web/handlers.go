package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/otohub/catalog-import/internal/importer"
	"github.com/otohub/catalog-import/internal/logging"
	"github.com/otohub/catalog-import/internal/observability"
	"github.com/otohub/catalog-import/internal/parser"
)

// domainInfo is the /api/domains response element.
type domainInfo struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Columns []string `json:"columns"`
}

// importResponse wraps the report with the run error, if any. A run that
// reached row processing always returns its full report, even when it was
// abandoned partway.
type importResponse struct {
	*importer.Report
	Error string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDomains(w http.ResponseWriter, r *http.Request) {
	defs := importer.All()
	infos := make([]domainInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, domainInfo{
			Key:     def.Info.Key,
			Label:   def.Info.Label,
			Columns: importer.ColumnLabels(def.Columns),
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleTemplate serves the domain's CSV header template.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	def, ok := importer.Get(chi.URLParam(r, "domain"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown import domain")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s_import_template.csv", def.Info.Key))
	fmt.Fprintln(w, strings.Join(importer.ColumnLabels(def.Columns), ","))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, false)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, true)
}

func (s *Server) runImport(w http.ResponseWriter, r *http.Request, dry bool) {
	domain := chi.URLParam(r, "domain")

	def, ok := importer.Get(domain)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown import domain")
		return
	}

	filename, data, err := s.readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := parser.Parse(filename, data, importer.ColumnLabels(def.Columns))
	if err != nil {
		// Run-level failure: no rows were processed, no report exists.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A persisting run is the domain's single writer; previews only read.
	if !dry {
		if err := s.locks.Acquire(r.Context(), domain); err != nil {
			if errors.Is(err, importer.ErrRunInProgress) {
				writeError(w, http.StatusConflict, err.Error())
			} else {
				writeError(w, http.StatusRequestTimeout, err.Error())
			}
			return
		}
		defer s.locks.Release(domain)
	}

	runCtx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	runner := importer.NewRunner(domain, def.Build(s.pool), logging.FromContext(r.Context()))

	var report *importer.Report
	if dry {
		report, err = runner.Preview(runCtx, rows)
	} else {
		report, err = runner.Run(runCtx, rows)
	}

	observability.ObserveRun(domain, report, err)

	if report == nil {
		// Seed failure: the catalog snapshot could not be read or indexed.
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	resp := importResponse{Report: report}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// readUpload extracts the uploaded file from the multipart form, enforcing
// the configured size limit.
func (s *Server) readUpload(r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.cfg.Import.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("missing or oversized file upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}

	return header.Filename, data, nil
}
