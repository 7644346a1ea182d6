package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/prebill-link/internal/ocr"
	"github.com/sells-group/prebill-link/internal/store"
)

var servePort int

// serverEnv carries the handler dependencies so the router can be built
// in tests without a running server.
type serverEnv struct {
	publicDir string
	store     store.Store
	extractor ocr.Extractor
	limiter   *rate.Limiter
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload/annotate HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := os.MkdirAll(cfg.Server.PublicDir, 0o755); err != nil {
			return eris.Wrap(err, "create public dir")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		extractor, err := ocr.New(cfg.OCR.Provider, cfg.OCR.PdfToTextPath)
		if err != nil {
			return err
		}

		env := serverEnv{
			publicDir: cfg.Server.PublicDir,
			store:     st,
			extractor: extractor,
			limiter:   rate.NewLimiter(rate.Limit(cfg.Server.UploadRPS), cfg.Server.UploadBurst),
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		// Graceful shutdown
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

func newRouter(env serverEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(uploadLimit(env.limiter))
		r.Post("/upload-pdf", env.handleUploadPDF)
		r.Post("/upload-xlsx", env.handleUploadXLSX)
	})

	r.Get("/jobs", env.handleListJobs)

	fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(env.publicDir)))
	r.Get("/files/*", fileServer.ServeHTTP)

	return r
}

// uploadLimit rejects upload bursts beyond the configured token bucket.
func uploadLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeJSONError(w, http.StatusTooManyRequests, "too many uploads")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// handleUploadPDF stores a pre-bill PDF in the public directory under a
// timestamped name and returns the stored file name for later processing.
func (env serverEnv) handleUploadPDF(w http.ResponseWriter, req *http.Request) {
	name, err := env.saveUpload(req, "pdfFile")
	if err != nil {
		zap.L().Error("pdf upload failed", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "upload failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "File uploaded successfully",
		"file":    name,
	})
}

// handleUploadXLSX stores the workbook, runs the pipeline against the
// previously uploaded PDF named in the pdfFile form value, and returns the
// extracted records plus the annotated workbook's name.
func (env serverEnv) handleUploadXLSX(w http.ResponseWriter, req *http.Request) {
	xlsxName, err := env.saveUpload(req, "xlFile")
	if err != nil {
		zap.L().Error("workbook upload failed", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "upload failed")
		return
	}

	pdfName := filepath.Base(req.FormValue("pdfFile"))
	if pdfName == "" || pdfName == "." {
		writeJSONError(w, http.StatusBadRequest, "pdfFile is required")
		return
	}

	pdfPath := filepath.Join(env.publicDir, pdfName)
	xlsxPath := filepath.Join(env.publicDir, xlsxName)
	outName := pdfName + "-updated.xlsx"
	outPath := filepath.Join(env.publicDir, outName)

	result, _, err := annotateWorkbook(req.Context(), env.extractor, env.store, pdfPath, xlsxPath, outPath)
	if err != nil {
		zap.L().Error("annotation failed",
			zap.String("pdf", pdfName),
			zap.String("xlsx", xlsxName),
			zap.Error(err),
		)
		writeJSONError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"file":    xlsxName,
		"data":    result.Records,
		"xlsxURL": outName,
	})
}

func (env serverEnv) handleListJobs(w http.ResponseWriter, req *http.Request) {
	jobs, err := env.store.ListJobs(req.Context(), store.JobFilter{Limit: 50})
	if err != nil {
		zap.L().Error("list jobs failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// saveUpload writes the named multipart file into the public directory as
// <unix-millis>-<original-name> and returns the stored name.
func (env serverEnv) saveUpload(req *http.Request, field string) (string, error) {
	file, header, err := req.FormFile(field)
	if err != nil {
		return "", eris.Wrapf(err, "read form file %s", field)
	}
	defer file.Close()

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	dst, err := os.Create(filepath.Join(env.publicDir, name))
	if err != nil {
		return "", eris.Wrap(err, "create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", eris.Wrap(err, "write upload file")
	}
	return name, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
