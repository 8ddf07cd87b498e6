package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"site-classifier/internal/app"
	"site-classifier/internal/ioformats"
	"site-classifier/internal/models"
	"site-classifier/pkg/logger"
)

func newClassifyCmd(root *rootOptions) *cobra.Command {
	var website string
	cmd := &cobra.Command{
		Use:   "classify FILE...",
		Short: "Classify saved HTML files without launching a browser",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			a := app.New(cfg, logger.NewNop(), nil, nil)

			results := make(models.BatchResult, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				name := website
				if name == "" {
					name = "file://" + strings.TrimPrefix(path, "./")
				}
				results = append(results, a.Analyzer.ClassifyMarkup(name, string(data)))
			}
			ioformats.RenderTable(cmd.OutOrStdout(), a.Registry, results)
			return nil
		},
	}
	cmd.Flags().StringVar(&website, "website", "", "website value to report (default: file:// path)")
	return cmd
}
