package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/cli/config"
	"github.com/secops-lab/incidentdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the incident type catalog file",
		Flags:   catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			logger.Info("Catalog validation passed", "type_count", len(catalog.IncidentTypes))
			for _, entry := range catalog.IncidentTypes {
				logger.Info("Incident type validated", "id", entry.ID, "name", entry.Name)
			}

			return nil
		},
	}
}
