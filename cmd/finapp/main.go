package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finapp/internal/cli"
	"finapp/internal/config"
	applog "finapp/internal/log"
)

var version = "dev"

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	serve := serveCmd(opts)

	root := &cobra.Command{
		Use:          "finapp",
		Short:        "FinApp web UI for the personal finance API",
		Version:      version,
		SilenceUsage: true,
		// bare "finapp" serves the UI
		RunE: serve.RunE,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (yaml, json or toml)")
	pf.String("port", "", "HTTP port (overrides PORT)")
	pf.String("api-base", "", "backend API base URL (overrides FINAPP_API_BASE)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text, json, console")

	root.AddCommand(serve)
	root.AddCommand(pingCmd(opts))
	root.AddCommand(tailEventsCmd(opts))
	return root
}

// loadConfig reads .env, the environment, the optional config file and the
// command's flags, then sets up logging.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, *applog.Logger, error) {
	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig(o.configFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	return cfg, cli.SetupLoggerFormat(cfg.LogLevel, cfg.LogFormat), nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
