package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	apihttp "github.com/turtacn/keyip-mcs/internal/interfaces/http"
	"github.com/turtacn/keyip-mcs/internal/interfaces/http/middleware"
)

type serveOptions struct {
	host string
	port int
}

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (default from config)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config
	srvCfg := cfg.Server
	if opts.host != "" {
		srvCfg.Host = opts.host
	}
	if opts.port != 0 {
		srvCfg.Port = opts.port
	}

	rc := apihttp.RouterConfig{
		Service:     cliCtx.Service,
		Logger:      cliCtx.Logger,
		Version:     Version,
		Mode:        srvCfg.Mode,
		MaxBodySize: srvCfg.MaxBodySize,
		Metrics:     cliCtx.Metrics,
		Logging:     middleware.DefaultLoggingConfig(),
	}
	if cfg.Metrics.Enabled {
		rc.Collector = cliCtx.Collector
		rc.MetricsPath = cfg.Metrics.Path
	}
	srv := apihttp.NewServer(srvCfg, apihttp.NewRouter(rc), cliCtx.Logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	cliCtx.Logger.Info("Shutdown signal received", logging.String("addr", srv.Addr()))
	if err := srv.Stop(context.Background()); err != nil {
		return err
	}
	return <-errCh
}

//Personal.AI order the ending
