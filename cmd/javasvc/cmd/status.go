package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/munichmade/javasvc/internal/service"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the configured service",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printUnexpectedArgs(cmd, args) {
			return nil
		}
		sess, err := openSession(afero.NewOsFs(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer sess.Close()

		name := sess.Config.ServiceName()
		state, err := service.Status(name)
		switch {
		case errors.Is(err, service.ErrUnsupported):
			sess.Logger.Warn("cannot query service state", "service", name, "error", err)
			return nil
		case err != nil:
			sess.Logger.Error("failed to query service state", "service", name, "error", err)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
