package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/getmockd/armmock/pkg/config"
	"github.com/getmockd/armmock/pkg/coordinator"
	"github.com/getmockd/armmock/pkg/metrics"
	"github.com/getmockd/armmock/pkg/responder"
	"github.com/getmockd/armmock/pkg/server"
	"github.com/getmockd/armmock/pkg/specindex"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

// serveFlags holds the parsed command-line flags for the serve command.
type serveFlags struct {
	host            string
	port            int
	readTimeout     int
	writeTimeout    int
	specRoot        string
	cascade         bool
	validateRequest bool
	exampleGen      bool
}

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ARM mock server (foreground)",
	Long: `Start the ARM mock server. The spec tree is indexed in the background;
the status route answers 503 until it is ready.`,
	Example: `  # Serve a local checkout of azure-rest-api-specs
  armmock serve --spec-root ./azure-rest-api-specs/specification

  # Start with config file on custom port
  armmock serve --config armmock.yaml --port 9443

  # Disable cascading existence checks
  armmock serve --cascade=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyServeFlags(cmd, cfg, &serveFlagVals)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration:\n%w", err)
		}

		log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return newApp(cfg, log).run(ctx)
	},
}

func initServeCmd() {
	rootCmd.AddCommand(serveCmd)
	bindServeFlags(serveCmd, &serveFlagVals)
}

func bindServeFlags(cmd *cobra.Command, f *serveFlags) {
	cmd.Flags().StringVar(&f.host, "host", "", "Listen host (default: all interfaces)")
	cmd.Flags().IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port")
	cmd.Flags().IntVar(&f.readTimeout, "read-timeout", config.DefaultReadTimeout, "Read timeout in seconds")
	cmd.Flags().IntVar(&f.writeTimeout, "write-timeout", config.DefaultWriteTimeout, "Write timeout in seconds")
	cmd.Flags().StringVar(&f.specRoot, "spec-root", config.DefaultSpecRoot, "Root directory of the spec tree")
	cmd.Flags().BoolVar(&f.cascade, "cascade", true, "Require parent resources to exist before children are created")
	cmd.Flags().BoolVar(&f.validateRequest, "validate-request", false, "Validate request parameters and bodies against the spec")
	cmd.Flags().BoolVar(&f.exampleGen, "example-generation", false, "Write every synthesized exchange as an example file")
}

func init() {
	initServeCmd()
}

// applyServeFlags copies the flags the user set over cfg.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config, f *serveFlags) {
	flags := cmd.Flags()
	set := func(name, key string, apply func()) {
		if flags.Changed(name) {
			apply()
			cfg.SetSource(key, config.SourceFlag)
		}
	}
	set("host", "server.host", func() { cfg.Server.Host = f.host })
	set("port", "server.port", func() { cfg.Server.Port = f.port })
	set("read-timeout", "server.readTimeout", func() { cfg.Server.ReadTimeout = f.readTimeout })
	set("write-timeout", "server.writeTimeout", func() { cfg.Server.WriteTimeout = f.writeTimeout })
	set("spec-root", "specs.root", func() { cfg.Specs.Root = f.specRoot })
	set("cascade", "cascadeEnabled", func() { cfg.CascadeEnabled = f.cascade })
	set("validate-request", "validateRequest", func() { cfg.ValidateRequest = f.validateRequest })
	set("example-generation", "exampleGeneration.enabled", func() { cfg.ExampleGeneration.Enabled = f.exampleGen })
}

// app wires one server from a configuration.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	index  *specindex.Index
	coord  *coordinator.Coordinator
	server *server.Server
}

func newApp(cfg *config.Config, log *slog.Logger) *app {
	reg := prometheus.NewRegistry()
	metrics.RegisterRuntime(reg, time.Now())
	m := metrics.New(reg)

	ix := specindex.New(cfg.IndexConfig())
	ix.SetLogger(log)
	coord := coordinator.New(cfg.CoordinatorConfig(), ix, responder.New(cfg.ResponderConfig()), log)
	coord.SetMetrics(m)

	srv := server.New(cfg.ServerConfig(), coord,
		server.WithLogger(log),
		server.WithMetrics(m, reg),
		server.WithInventory(ix),
	)
	return &app{cfg: cfg, log: log, index: ix, coord: coord, server: srv}
}

// run serves until ctx is done. The index loads after the listener is up;
// a load failure stops the server.
func (a *app) run(ctx context.Context) error {
	if err := a.server.Start(); err != nil {
		return err
	}

	initErr := make(chan error, 1)
	go func() { initErr <- a.coord.Initialize(ctx) }()

	var runErr error
	select {
	case err := <-initErr:
		if err != nil {
			runErr = fmt.Errorf("loading specs from %s: %w", a.cfg.Specs.Root, err)
			break
		}
		a.log.Info("ready to serve", "addr", a.server.Addr(), "operations", a.index.Operations())
		<-ctx.Done()
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
