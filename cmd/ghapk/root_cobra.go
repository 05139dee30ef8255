package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pushchain/ghapk/internal/config"
	"github.com/pushchain/ghapk/internal/exitcodes"
	"github.com/pushchain/ghapk/internal/registry"
	"github.com/pushchain/ghapk/internal/ui"
)

// Version is set via -ldflags during build
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ghapk",
	Short: "Install Android builds from GitHub releases",
	Long: `Browse the releases of a GitHub repository, read their notes, and install
the .apk attached to a release onto the device behind the local ADB server.

Required environment:
  GH_ACCESS_TOKEN   token with read access to the repository
  GH_OWNER          repository owner
  GH_REPO           repository name

Optional environment:
  GHAPK_ADB_HOST, GHAPK_ADB_PORT   ADB server (default 127.0.0.1:5037)
  GHAPK_ADB_BIN                    adb executable (default adb)
  GHAPK_SCRATCH_PATH               local download path (default /tmp/app.apk)
  GHAPK_REMOTE_PATH                device path (default /data/local/tmp/app.apk)
  GHAPK_API_URL                    GitHub API base URL
  GHAPK_DEBUG_LOG                  write diagnostics to this file

Keys: j/k or arrows to move, h to unselect, l or enter to install,
g/G to jump, q or esc to quit.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.Close()
		return runSession(cmd.Context(), d)
	},
}

// Execute runs the root command and exits with the mapped code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(errorMessageFor(err))
		exitcodes.Exit(exitcodes.CodeForError(err))
	}
}

// errorMessageFor turns a fatal startup error into actionable output.
func errorMessageFor(err error) ui.ErrorMessage {
	msg := ui.ErrorMessage{Problem: err.Error()}

	switch exitcodes.CodeForError(err) {
	case exitcodes.ConfigError:
		msg.Actions = []string{
			"export " + config.EnvToken + "=<token with read access to the repository>",
			"export " + config.EnvOwner + "=<owner> " + config.EnvRepo + "=<repository>",
		}
		msg.Hints = []string{"ghapk --help lists every supported variable"}

	case exitcodes.RegistryError:
		switch {
		case errors.Is(err, registry.ErrUnauthorized):
			msg.Causes = []string{"the token is invalid, expired, or lacks repository access"}
			msg.Actions = []string{"create a new token and export it as " + config.EnvToken}
		case errors.Is(err, registry.ErrNotFound):
			msg.Causes = []string{
				"the repository does not exist",
				"the token cannot see a private repository",
			}
			msg.Actions = []string{"check " + config.EnvOwner + " and " + config.EnvRepo}
		default:
			msg.Causes = []string{"network unreachable", "GitHub API unavailable or rate limited"}
			msg.Actions = []string{"retry in a moment"}
		}

	case exitcodes.TerminalError:
		msg.Causes = []string{"stdin or stdout is not a terminal"}
		msg.Actions = []string{"run ghapk directly in an interactive terminal"}
	}
	return msg
}
