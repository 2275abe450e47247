// Package guidecli implements the guide command: the signup workflow run
// from a terminal, saving the guide to disk instead of a browser download.
package guidecli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	cfgFile string
	debug   bool
}

// NewRootCommand builds the guide command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Get the ResQ-X emergency guide",
		Long: `Sign up for ResQ-X updates and download the emergency preparedness guide.

Settings are read from $HOME/.resqx/config.yaml and RESQX_* environment
variables (for example RESQX_BREVO_API_KEY and RESQX_BREVO_LIST_ID).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.resqx/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log workflow details to stderr")

	cmd.AddCommand(
		newSubscribeCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	if !o.debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
