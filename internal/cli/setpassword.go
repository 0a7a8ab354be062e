package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/clearpond/kassa/internal/config"
	"github.com/clearpond/kassa/internal/pos"
)

// NewSetPasswordCommand creates the set-password command.
func NewSetPasswordCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-password <password>",
		Short: "Set the admin password",
		Long: `Store the admin password hash in the local settings.

The hash is queued for synchronization like any other setting, so every
device of the venue converges on the same password once online.

Example:
  kassa set-password s3cret`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetPassword(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSetPassword(opts *RootOptions, password string, cmd *cobra.Command) error {
	if strings.TrimSpace(password) == "" {
		return NewExitError(ExitCommandError, "password must not be empty")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	store, backend, err := openStore(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer backend.Close()

	if err := store.SetSetting(pos.SettingAdminPasswordHash, pos.HashPassword(password)); err != nil {
		return WrapExitError(ExitFailure, "failed to store password", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success("Password updated.")
}
