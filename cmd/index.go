package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/config"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/knowledge"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

// indexCMD validates the knowledge base and writes the per-category
// index files plus the offline pack.
func indexCMD() *cobra.Command {
	var cfgPath string
	var index = &cobra.Command{
		Use:   "index",
		Short: "Validate the knowledge base and build category indices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)

			logger := log.New(log.Writer(), "[KB] ", log.LstdFlags)
			corpus, err := knowledge.Load(cfg.Knowledge.Dir, logger)
			if err != nil {
				return err
			}
			if len(corpus.Records) == 0 {
				return fmt.Errorf("no valid records under %q", cfg.Knowledge.Dir)
			}

			if err := knowledge.WriteIndices(corpus, cfg.Knowledge.IndicesDir); err != nil {
				return err
			}
			packPath := filepath.Join(cfg.Knowledge.IndicesDir, "offline_pack.json")
			if err := knowledge.WriteOfflinePack(corpus.Records, cfg.Knowledge.OfflinePackSize, packPath); err != nil {
				return err
			}

			stats := knowledge.Summarize(corpus)
			fmt.Printf("records: %d\n", stats.Total)
			for _, cat := range models.Categories {
				if n := stats.PerCategory[cat]; n > 0 {
					fmt.Printf("  %-20s %d\n", cat, n)
				}
			}
			fmt.Printf("question variants: %d\n", stats.TotalVariants)
			fmt.Printf("avg confidence weight: %.2f\n", stats.AvgConfidence)
			fmt.Printf("indices written to %s\n", cfg.Knowledge.IndicesDir)
			return nil
		},
	}
	index.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return index
}
