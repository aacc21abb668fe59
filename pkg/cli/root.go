package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getmockd/roster/pkg/client"
	"github.com/getmockd/roster/pkg/cliconfig"
	"github.com/getmockd/roster/pkg/logging"
	"github.com/getmockd/roster/pkg/persist"
	"github.com/getmockd/roster/pkg/viewstate"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// annotationFullscreen marks commands that own the terminal. Their logs go
// to the log file only.
const annotationFullscreen = "roster/fullscreen"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	apiURL    string
	timeout   time.Duration
	stateFile string
	logLevel  string
	logFormat string
	logFile   string
	json      bool
}

// app carries what the root command wires up for its subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	flags    globalFlags
	cfg      *cliconfig.Config
	logger   *slog.Logger
	closeLog func() error
	store    *persist.FileStore
	state    *viewstate.Manager
	client   client.StudentClient
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut, logger: logging.Nop()}
}

// Execute runs the root command and exits non-zero on failure. It is called
// by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := a.execute(ctx, newRootCmd(a)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "roster",
		Short: "roster manages student records from the terminal",
		Long: `roster lists, filters, sorts, adds and edits student records held by a
student records API.

The list commands print one page of a view; "roster tui" opens the
interactive client. Filters and sorts are saved per view and shared by both.

Configuration can be provided via flags, environment variables (ROSTER_*),
a local .rosterrc.yaml, or ~/.config/roster/config.yaml.`,
		SilenceUsage:      true,
		SilenceErrors:     true, // We handle errors in Execute()
		PersistentPreRunE: a.setup,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.apiURL, "api-url", "", "Student API base URL (default: "+cliconfig.DefaultAPIURL+")")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "Request timeout (default: 30s)")
	pf.StringVar(&a.flags.stateFile, "state-file", "", "File holding the saved filters and sorts")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&a.flags.logFile, "log-file", "", "Also append logs to this file")
	pf.BoolVar(&a.flags.json, "json", false, "Output command results in JSON format")

	root.AddCommand(
		newStudentsCmd(a),
		newHonorCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newFiltersCmd(a),
		newConfigCmd(a),
		newTUICmd(a),
		newVersionCmd(a),
	)
	return root
}

// flagConfig collects the persistent flags the user actually set.
func (a *app) flagConfig(cmd *cobra.Command) *cliconfig.Config {
	fc := &cliconfig.Config{}
	changed := cmd.Flags().Changed
	if changed("api-url") {
		fc.APIURL = a.flags.apiURL
	}
	if changed("timeout") {
		fc.Timeout = a.flags.timeout
	}
	if changed("state-file") {
		fc.StateFile = a.flags.stateFile
	}
	if changed("log-level") {
		fc.LogLevel = a.flags.logLevel
	}
	if changed("log-format") {
		fc.LogFormat = a.flags.logFormat
	}
	if changed("log-file") {
		fc.LogFile = a.flags.logFile
	}
	return fc
}

// setup loads the layered configuration and builds the logger, the saved
// view state and the API client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return err
	}
	cliconfig.MergeConfig(cfg, a.flagConfig(cmd), cliconfig.SourceFlag)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	logCfg := logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: a.errOut,
	}
	if cmd.Annotations[annotationFullscreen] != "" {
		logCfg.Output = nil
	}
	logger, closeLog, err := logging.Open(logCfg, cfg.LogFile)
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog

	a.store = persist.NewFileStore(cfg.StateFile)
	if err := a.store.Load(); err != nil {
		a.logger.Warn("ignoring saved view state", "path", cfg.StateFile, "error", err)
		a.warn("ignoring saved view state: %v", err)
	}
	a.state = viewstate.NewManager(a.store, a.logger)

	a.client = client.New(cfg.APIURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(a.logger),
	)
	a.logger.Debug("configuration loaded",
		"command", cmd.CommandPath(),
		"apiUrl", cfg.APIURL,
		"stateFile", cfg.StateFile,
	)
	return nil
}

// execute runs cmd and releases what setup opened, whether or not the
// command succeeded.
func (a *app) execute(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() {
		if cerr := a.teardown(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close log file: %w", cerr)
		}
	}()
	return cmd.ExecuteContext(ctx)
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

// interactive reports whether prompts can be shown on stdin.
func (a *app) interactive() bool {
	f, ok := a.in.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// apiError turns client errors into the message printed to the user.
func apiError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode == client.ErrCodeConnection {
		return errors.New(client.FormatConnectionError(err))
	}
	return err
}
