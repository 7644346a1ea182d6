package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prebill-link/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "prebill-link",
	Short: "Annotate A/R workbooks with deep links into pre-bill PDFs",
	Long:  "Extracts pre-bill records from PDF text, matches them to workbook rows by file number, and writes page-level deep links back into the workbook.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
