package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/config"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/intent"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/knowledge"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/pipeline"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/safety"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/server"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/telemetry"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/provider"
)

func serveCMD() *cobra.Command {
	var serveAddr string
	var cfgPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the Q&A HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)

			kbLogger := log.New(log.Writer(), "[KB] ", log.LstdFlags)
			corpus, err := knowledge.Load(cfg.Knowledge.Dir, kbLogger)
			if err != nil {
				return err
			}
			kbLogger.Printf("corpus ready with %d records", len(corpus.Records))

			loader := func(category models.Category) ([]*models.Record, error) {
				if intent.PartitionFile(category) == "" {
					return nil, models.ErrPartitionNotFound
				}
				return knowledge.LoadPartition(cfg.Knowledge.IndicesDir, category)
			}
			cache := knowledge.NewCache(loader, corpus)

			pipe := pipeline.New(
				safety.NewClassifier(),
				intent.NewClassifier(),
				cache,
				corpus,
				provider.New(cfg.Groq),
				log.New(log.Writer(), "[PIPE] ", log.LstdFlags),
			)

			var metrics *telemetry.Metrics
			if cfg.Telemetry.Enabled {
				metrics = telemetry.New()
				pipe.SetFailureHook(metrics.RecordCompletionFailure)
			}
			limiter := server.NewLimiter(cfg.RateLimit, log.New(log.Writer(), "[RATE] ", log.LstdFlags))

			return server.New(cfg, pipe, corpus, metrics, limiter).Run(serveAddr)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides general.listen)")
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return serve
}
