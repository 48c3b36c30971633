package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/zoro11031/datasave/internal/cli"
	"github.com/zoro11031/datasave/internal/ui"
	"github.com/zoro11031/datasave/pkg/version"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "datasave",
	Short: "Save text to internal or external storage",
	Long: `A small editor for saving text into files.

Type a file name and some content, then:
- Save Internal    overwrite the file in app-private storage
- Append Internal  append the content as a new line of the file
- Save External    write the file into the app documents directory
                   (asks for the storage permission first)

Run without arguments to open the interactive screen.`,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
	RunE:          runScreen,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Open the interactive screen",
	Long:  `Open the interactive screen with the file name and content fields.`,
	RunE:  runScreen,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default ~/.datasave.conf)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(screenCmd)
}

// newContext builds the application context from the global flags. UI output
// goes to the command's error stream.
func newContext(cmd *cobra.Command, opts cli.Options) (*cli.AppContext, error) {
	if opts.UI == nil {
		opts.UI = ui.NewWithWriter(cmd.ErrOrStderr())
	}
	opts.ConfigPath = configPath
	opts.LogLevel = logLevel
	ctx, err := cli.NewAppContext(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return ctx, nil
}

func runScreen(cmd *cobra.Command, args []string) error {
	app, err := newContext(cmd, cli.Options{})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return app.NewScreen().Run(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
