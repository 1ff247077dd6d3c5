package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clm6/transformer-diagnostic-ai/internal/analyzer"
	"github.com/clm6/transformer-diagnostic-ai/internal/export"
	"github.com/clm6/transformer-diagnostic-ai/internal/pipeline"
	"github.com/clm6/transformer-diagnostic-ai/internal/report"
	"github.com/clm6/transformer-diagnostic-ai/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(e),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func newRouter(e *env) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"name":   "TransformIQ",
			"status": "ok",
		})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/analyze/upload", e.handleAnalyzeUpload)
	r.Post("/analyze/text", e.handleAnalyzeText)

	r.Get("/reports", e.handleListReports)
	r.Delete("/reports/all", e.handleClearReports)
	r.Get("/reports/{equipmentName}", e.handleGetReport)
	r.Delete("/reports/{equipmentName}", e.handleDeleteReport)

	r.Get("/dashboard/summary", e.handleDashboardSummary)
	r.Get("/export/master.csv", e.handleExportMaster)

	return r
}

func (e *env) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF files are supported")
		return
	}

	// Spool to disk so pdftotext can read it.
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to buffer upload")
		return
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, "failed to buffer upload")
		return
	}
	tmp.Close()

	result, err := e.Pipeline.AnalyzeFile(r.Context(), tmpName, header.Filename)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "completed",
		"filename": header.Filename,
		"analysis": result,
	})
}

func (e *env) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text          string `json:"text"`
		EquipmentName string `json:"equipment_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.EquipmentName) == "" {
		writeError(w, http.StatusBadRequest, "text and equipment_name are required")
		return
	}

	result, err := e.Pipeline.AnalyzeNamedText(r.Context(), req.Text, req.EquipmentName)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "completed",
		"analysis": result,
	})
}

func (e *env) handleListReports(w http.ResponseWriter, r *http.Request) {
	listings, err := e.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reports": listings,
		"count":   len(listings),
	})
}

func (e *env) handleGetReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "equipmentName")
	rep, err := e.Store.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (e *env) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "equipmentName")
	n, err := e.Store.Delete(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "deleted",
		"deleted_count": n,
	})
}

func (e *env) handleClearReports(w http.ResponseWriter, r *http.Request) {
	n, err := e.Store.DeleteAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "cleared",
		"cleared_count": n,
	})
}

func (e *env) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, listings, err := export.Summarize(r.Context(), e.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":        summary,
		"equipment_list": listings,
	})
}

func (e *env) handleExportMaster(w http.ResponseWriter, r *http.Request) {
	path, err := e.Exporter.ExportMaster(r.Context(), e.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="TransformIQ_Master_Analysis.csv"`)
	w.Header().Set("Content-Type", "text/csv")
	http.ServeFile(w, r, path)
}

// writeAnalysisError maps pipeline failures to HTTP statuses. Malformed model
// responses surface the raw response body so callers can debug prompt issues.
func writeAnalysisError(w http.ResponseWriter, err error) {
	var respErr *analyzer.ResponseError
	switch {
	case errors.Is(err, pipeline.ErrInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analyzer.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "analysis timed out")
	case errors.As(err, &respErr):
		writeJSON(w, http.StatusBadGateway, respErr)
	case errors.Is(err, report.ErrSchemaViolation):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("serve: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
