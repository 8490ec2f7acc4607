package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/everdragons2/deployer/internal/adapters/progress"
	"github.com/everdragons2/deployer/internal/app"
	"github.com/everdragons2/deployer/internal/config"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ContractName is the contract deployed by the root command
const ContractName = "Everdragons2WormholeDemo"

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// cleanupKey is the context key for cleanups that Run executes after the command
	cleanupKey contextKey = "cleanup"
)

// AppFactory builds the application for one command invocation
type AppFactory func(v *viper.Viper, sink usecase.ProgressSink) (*app.App, error)

// Option configures the root command
type Option func(*rootOptions)

type rootOptions struct {
	appFactory AppFactory
}

// WithAppFactory replaces the wired application, used to run the CLI against test doubles
func WithAppFactory(factory AppFactory) Option {
	return func(o *rootOptions) {
		o.appFactory = factory
	}
}

// NewRootCmd creates the root command
func NewRootCmd(opts ...Option) *cobra.Command {
	options := &rootOptions{appFactory: app.InitApp}
	for _, opt := range opts {
		opt(options)
	}

	rootCmd := &cobra.Command{
		Use:   "deployer",
		Short: "Deploy the " + ContractName + " contract",
		Long: `Deploys one instance of ` + ContractName + ` from the project's compiled
artifacts, waits for the transaction to be mined and prints the contract address.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Find project root, the provider falls back to the working directory
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				projectRoot = ""
			}

			// Set up viper with all flags of the running command
			v := config.SetupViper(projectRoot, cmd)

			sink := newProgressSink(cmd, v)

			// Initialize app with DI
			appInstance, err := options.appFactory(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				deferCancel(cmd, cancel)
			}

			cmd.SetContext(ctx)

			return nil
		},
		RunE: runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from foundry.toml [rpc_endpoints] or an RPC URL")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC URL used when no network is given")
	rootCmd.PersistentFlags().Uint64("chain-id", 0, "Expected chain ID, checked against the RPC endpoint")
	rootCmd.PersistentFlags().String("private-key", "", "Deployer private key (prefer DEPLOYER_PRIVATE_KEY)")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Give up after this long, 0 disables")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (defaults to the nearest foundry.toml or hardhat config)")

	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Run executes the command tree and maps the outcome to a process exit code
func Run(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanups := &cleanupList{}
	ctx = context.WithValue(ctx, cleanupKey, cleanups)

	err := cmd.ExecuteContext(ctx)
	cleanups.run()
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// cleanupList collects functions to run once the command has finished,
// whether it succeeded or not
type cleanupList struct {
	fns []func()
}

func (l *cleanupList) run() {
	for i := len(l.fns) - 1; i >= 0; i-- {
		l.fns[i]()
	}
	l.fns = nil
}

// deferCancel releases cancel when Run returns. Commands executed without Run
// fall back to PostRun, which cobra skips on error.
func deferCancel(cmd *cobra.Command, cancel context.CancelFunc) {
	if cleanups, ok := cmd.Context().Value(cleanupKey).(*cleanupList); ok {
		cleanups.fns = append(cleanups.fns, cancel)
		return
	}
	cmd.PostRun = func(cmd *cobra.Command, args []string) {
		cancel()
	}
}

// printError writes the full error chain, in red on a terminal
func printError(w io.Writer, err error) {
	c := color.New(color.FgRed)
	if isTerminal(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(w, "Error: %v\n", err)
}

// newProgressSink picks the status output for the current invocation
func newProgressSink(cmd *cobra.Command, v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("json") {
		return progress.NewNopSink()
	}

	interactive := !v.GetBool("non_interactive")
	sink := progress.NewConsoleSink(cmd.OutOrStdout())
	if interactive && isTerminal(cmd.ErrOrStderr()) {
		sink = sink.WithSpinner(cmd.ErrOrStderr())
	}
	return sink.WithColor(interactive && isTerminal(cmd.OutOrStdout()))
}

// isTerminal reports whether w is attached to a terminal
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
