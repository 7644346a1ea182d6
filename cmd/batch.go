package main

import (
	"context"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prebill-link/internal/model"
	"github.com/sells-group/prebill-link/internal/ocr"
	"github.com/sells-group/prebill-link/internal/prebill"
	"github.com/sells-group/prebill-link/internal/tabular"
)

var (
	batchXLSX        string
	batchPDFDir      string
	batchOut         string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Annotate one workbook from a directory of pre-bill PDFs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		extractor, err := ocr.New(cfg.OCR.Provider, cfg.OCR.PdfToTextPath)
		if err != nil {
			return err
		}

		pdfs, err := filepath.Glob(filepath.Join(batchPDFDir, "*.pdf"))
		if err != nil {
			return eris.Wrap(err, "scan pdf dir")
		}
		if len(pdfs) == 0 {
			return eris.Errorf("no PDFs found in %s", batchPDFDir)
		}
		// Sorted name order keeps record order, and so first-match-wins
		// joins, deterministic across runs.
		sort.Strings(pdfs)

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}
		if concurrency <= 0 {
			concurrency = 1
		}

		out := batchOut
		if out == "" {
			out = batchXLSX + "-updated.xlsx"
		}

		job, err := st.CreateJob(ctx, filepath.Base(batchPDFDir), filepath.Base(batchXLSX))
		if err != nil {
			return err
		}

		records, table, err := runBatch(ctx, extractor, pdfs, concurrency, out)
		if err != nil {
			if failErr := st.FailJob(ctx, job.ID, err); failErr != nil {
				zap.L().Warn("failed to record job failure", zap.String("job", job.ID), zap.Error(failErr))
			}
			return eris.Wrap(err, "batch")
		}

		return st.CompleteJob(ctx, job.ID, model.JobOutcome{
			OutputName: filepath.Base(out),
			Records:    len(records),
			Matched:    prebill.Matched(table),
		})
	},
}

func runBatch(ctx context.Context, extractor ocr.Extractor, pdfs []string, concurrency int, out string) ([]model.ExtractedRecord, *model.Table, error) {
	records, err := extractAll(ctx, extractor, pdfs, concurrency)
	if err != nil {
		return nil, nil, err
	}

	table, err := tabular.ReadTable(batchXLSX)
	if err != nil {
		return nil, nil, err
	}

	prebill.Reconcile(table, records)
	if err := tabular.WriteTable(table, out); err != nil {
		return nil, nil, err
	}
	return records, table, nil
}

// extractAll extracts every PDF concurrently and returns the combined
// record sequence in PDF name order, block order within each PDF. A PDF
// that fails to extract is logged and skipped rather than aborting the
// batch.
func extractAll(ctx context.Context, extractor ocr.Extractor, pdfs []string, concurrency int) ([]model.ExtractedRecord, error) {
	zap.L().Info("extracting pre-bill PDFs",
		zap.Int("pdfs", len(pdfs)),
		zap.Int("concurrency", concurrency),
	)

	texts := make([]string, len(pdfs))
	extracted := make([]bool, len(pdfs))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, pdfPath := range pdfs {
		i, pdfPath := i, pdfPath
		g.Go(func() error {
			text, err := extractor.ExtractText(gctx, pdfPath)
			if err != nil {
				failed.Add(1)
				zap.L().Error("pdf extraction failed", zap.String("pdf", pdfPath), zap.Error(err))
				return nil // don't abort batch on individual failure
			}
			texts[i] = text
			extracted[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if n := failed.Load(); n > 0 {
		zap.L().Warn("some PDFs failed to extract", zap.Int64("failed", n))
	}
	if int(failed.Load()) == len(pdfs) {
		return nil, eris.New("every PDF failed to extract")
	}

	var records []model.ExtractedRecord
	for i, pdfPath := range pdfs {
		if !extracted[i] {
			continue
		}
		blocks := prebill.Segment(texts[i])
		records = append(records, prebill.Extract(blocks, filepath.Base(pdfPath))...)
	}
	return records, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "workbook to annotate (required)")
	batchCmd.Flags().StringVar(&batchPDFDir, "pdf-dir", "", "directory of pre-bill PDFs (required)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output workbook path (default <xlsx>-updated.xlsx)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent extractions (default from config)")
	batchCmd.MarkFlagRequired("xlsx")
	batchCmd.MarkFlagRequired("pdf-dir")
	rootCmd.AddCommand(batchCmd)
}
