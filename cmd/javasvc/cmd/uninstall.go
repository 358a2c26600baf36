package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/munichmade/javasvc/internal/privilege"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop the service and delete its registration",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printUnexpectedArgs(cmd, args) {
			return nil
		}
		// Removing a registration does not depend on the java runtime.
		sess, err := openSession(afero.NewOsFs(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer sess.Close()
		a := &app{Session: sess}

		privilege.WarnIfNotElevated(a.Logger, "uninstall")

		inst := a.installer()
		if err := inst.Uninstall(cmd.Context()); err != nil {
			a.Logger.Error("uninstall failed", "stage", inst.Stage(), "error", err)
			return nil
		}
		a.Logger.Info("service uninstalled", "service", a.Config.ServiceName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
