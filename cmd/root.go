package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/podium/internal/adapters/repository"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/pkg/logger"
)

// rootOptions carries the global flags and what PersistentPreRunE derives
// from them.
type rootOptions struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "podium",
		Short: "Summer Olympics medals dashboard",
		Long: `Podium loads a table of Olympic participation records and serves a
dashboard of medal aggregates that follow the year, gender, medal, sport and
country filters. Without a subcommand it starts the HTTP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file, YAML or TOML (overrides "+config.EnvConfig+")")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log_level)")

	cmd.AddCommand(newServeCmd(opts), newViewCmd(opts), newProbeCmd(opts))
	return cmd
}

// setup loads the configuration and initialises the global logger on stderr.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.configPath != "" {
		if err := os.Setenv(config.EnvConfig, o.configPath); err != nil {
			return fmt.Errorf("set %s: %w", config.EnvConfig, err)
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	o.cfg = cfg
	o.log = logger.Get()
	return nil
}

// newService builds the dashboard service from the loaded configuration.
func (o *rootOptions) newService(extra ...service.Option) *service.Service {
	cfg := o.cfg
	opts := []service.Option{
		service.WithLogger(o.log.Named("service")),
		service.WithDatasetPath(cfg.DatasetPath),
		service.WithObjectStore(repository.ObjectStoreConfig{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
			UseSSL:    cfg.S3UseSSL,
		}),
		service.WithFilterAllViews(cfg.FilterAllViews),
		service.WithFunFacts(cfg.FunFacts),
		service.WithTitle(cfg.Title),
		service.WithVideoURL(cfg.VideoURL),
	}
	return service.New(append(opts, extra...)...)
}
