// Package cli parses the command line and runs commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/auth"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/store"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	workDir  string
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
// The default task file lives under workDir.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory, workDir string) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		workDir:  workDir,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmd, ok := d.registry.Find(args[0])
	if !ok {
		// Anything unrecognized prints usage.
		return d.dispatch(ctx, "help", nil, out, errOut)
	}
	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	file      string
	quiet     bool
	debug     bool
	noLock    bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configDir, "config", "", "")
	fs.StringVar(&c.file, "file", "", "")
	fs.BoolVar(&c.quiet, "quiet", false, "")
	fs.BoolVar(&c.debug, "debug", false, "")
	fs.BoolVar(&c.noLock, "no-lock", false, "")
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	cfg, err := config.Load(common.configDir, d.workDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if common.file != "" {
		cfg.StorePath = cfg.ResolvePath(common.file)
	}
	if common.noLock {
		cfg.Lock = false
	}
	cfg.Quiet = cfg.Quiet || common.quiet
	cfg.Debug = cfg.Debug || common.debug

	logger := logging.New(errOut, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		Debug:           cfg.Debug,
		ReportTimestamp: cfg.LogTimestamps,
	})
	logger.Debug("dispatching", "command", cmd.Name(), "args", fs.Args(), "store", cfg.StorePath)

	rt := &commands.Runtime{
		Config: cfg,
		Store:  store.New(cfg.StorePath, logger),
		Logger: logger,
	}

	if cmd.NeedsAuth() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: remote sync is not available")
			return exitcode.AuthError
		}
		svc, err := d.factory(ctx, cfg)
		if err != nil {
			if auth.IsAuthError(err) {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
		rt.Service = svc
	}

	return cmd.Run(ctx, rt, fs.Args(), out, errOut)
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return errStr
	}
	if name, ok := strings.CutPrefix(errStr, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	return errStr
}
