package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prebill-link/internal/ocr"
)

var (
	processPDF  string
	processXLSX string
	processOut  string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Annotate a workbook from a single pre-bill PDF",
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

		out := processOut
		if out == "" {
			out = processPDF + "-updated.xlsx"
		}

		result, _, err := annotateWorkbook(ctx, extractor, st, processPDF, processXLSX, out)
		if err != nil {
			return eris.Wrap(err, "process")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Records)
	},
}

func init() {
	processCmd.Flags().StringVar(&processPDF, "pdf", "", "pre-bill PDF to extract (required)")
	processCmd.Flags().StringVar(&processXLSX, "xlsx", "", "workbook to annotate (required)")
	processCmd.Flags().StringVar(&processOut, "out", "", "output workbook path (default <pdf>-updated.xlsx)")
	processCmd.MarkFlagRequired("pdf")
	processCmd.MarkFlagRequired("xlsx")
	rootCmd.AddCommand(processCmd)
}
