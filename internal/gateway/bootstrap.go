package gateway

import (
	"fmt"

	"github.com/contentcraft/contentcraft-api/internal/cli"
	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/llm"
	"go.uber.org/zap"
)

// BootstrapProvider resolves the configured active provider into a live
// adapter. Missing credentials are a warning, not a startup failure: the
// gateway still serves health and usage endpoints, and AI calls return a
// credentials error at request time.
func BootstrapProvider(cfg *config.Config, log *zap.Logger) (llm.Provider, error) {
	pCfg := cfg.ActiveProvider()

	provider, err := llm.New(pCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider '%s': %w", pCfg.ID, err)
	}

	if pCfg.APIKey == "" {
		log.Warn(fmt.Sprintf("%s %s %s",
			cli.WarningSign(),
			cli.Style(fmt.Sprintf("%s\t", pCfg.ID), cli.Bold),
			cli.Style("Provider has no API key configured", cli.Yellow),
		))
	} else {
		log.Info("provider ready",
			zap.String("provider", pCfg.ID),
			zap.String("model", pCfg.Model),
		)
	}

	return provider, nil
}
