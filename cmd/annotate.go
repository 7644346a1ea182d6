package main

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sells-group/prebill-link/internal/model"
	"github.com/sells-group/prebill-link/internal/ocr"
	"github.com/sells-group/prebill-link/internal/prebill"
	"github.com/sells-group/prebill-link/internal/store"
	"github.com/sells-group/prebill-link/internal/tabular"
)

// annotateWorkbook runs the full annotate flow for one PDF/workbook pair:
// extract the PDF text, run the pipeline with the PDF file name as the
// link source, write the annotated workbook to outPath, and record the
// job. The job is failed (not silently dropped) on any error.
func annotateWorkbook(ctx context.Context, ex ocr.Extractor, st store.Store, pdfPath, xlsxPath, outPath string) (model.Result, *model.Job, error) {
	pdfName := filepath.Base(pdfPath)

	job, err := st.CreateJob(ctx, pdfName, filepath.Base(xlsxPath))
	if err != nil {
		return model.Result{}, nil, err
	}

	result, err := runAnnotation(ctx, ex, pdfPath, xlsxPath, outPath, pdfName)
	if err != nil {
		if failErr := st.FailJob(ctx, job.ID, err); failErr != nil {
			zap.L().Warn("failed to record job failure", zap.String("job", job.ID), zap.Error(failErr))
		}
		return model.Result{}, job, err
	}

	outcome := model.JobOutcome{
		OutputName: filepath.Base(outPath),
		Records:    len(result.Records),
		Matched:    prebill.Matched(result.Table),
	}
	if err := st.CompleteJob(ctx, job.ID, outcome); err != nil {
		return result, job, err
	}

	job.OutputName = outcome.OutputName
	job.Records = outcome.Records
	job.Matched = outcome.Matched
	job.Status = model.JobStatusComplete
	return result, job, nil
}

func runAnnotation(ctx context.Context, ex ocr.Extractor, pdfPath, xlsxPath, outPath, sourceName string) (model.Result, error) {
	text, err := ex.ExtractText(ctx, pdfPath)
	if err != nil {
		return model.Result{}, err
	}

	table, err := tabular.ReadTable(xlsxPath)
	if err != nil {
		return model.Result{}, err
	}

	result := prebill.Run(text, sourceName, table)

	if err := tabular.WriteTable(result.Table, outPath); err != nil {
		return model.Result{}, err
	}

	zap.L().Info("workbook annotated",
		zap.String("pdf", sourceName),
		zap.Int("records", len(result.Records)),
		zap.Int("matched", prebill.Matched(result.Table)),
	)
	return result, nil
}
