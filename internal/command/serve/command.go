package serve

import (
	"log/slog"

	"github.com/de-scientist/notely-new/internal/config"
	"github.com/de-scientist/notely-new/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the notely server",
		Action: func(ctx *cli.Context) error {
			conf, err := loadConfig(ctx)
			if err != nil {
				return errors.Wrap(err, "could not load configuration")
			}

			server, err := setup.NewHTTPServerFromConfig(ctx.Context, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			slog.InfoContext(ctx.Context, "starting server", slog.Any("address", conf.HTTP.Address))

			if err := server.Run(ctx.Context); err != nil {
				return errors.Wrap(err, "could not run server")
			}

			return nil
		},
	}
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	if configFile := ctx.String("config"); configFile != "" {
		conf, err := config.ParseFile(configFile)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return conf, nil
	}

	conf, err := config.Parse()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return conf, nil
}
