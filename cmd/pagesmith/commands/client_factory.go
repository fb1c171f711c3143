package commands

import (
	"pagesmith/internal/config"
	"pagesmith/internal/confluence"
	"pagesmith/pkg/logger"
)

// newConfluenceClient is a package-level variable to allow test injection of a mock.
// Production code uses the real client constructor; tests can override this.
// The credential probe is deliberately non-fatal: a failed probe is logged
// and the command proceeds, letting the real operation surface the error.
var newConfluenceClient = func(cfg *config.Config, log *logger.Logger) confluence.ConfluenceClient {
	client := confluence.NewClient(cfg.Confluence.BaseURL, cfg.Confluence.Username, cfg.Confluence.Password, log)
	if err := client.VerifyCredentials(); err != nil {
		log.Warn("could not verify credentials against %s: %v", cfg.Confluence.BaseURL, err)
	}
	return client
}
