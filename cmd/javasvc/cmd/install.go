package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/munichmade/javasvc/internal/privilege"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the service and start it",
	Long: `Remove any service registered under the configured name, register the
jar as a service through the JavaService wrapper and start it.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printUnexpectedArgs(cmd, args) {
			return nil
		}
		a, err := openApp(cmd.Context(), afero.NewOsFs(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()

		privilege.WarnIfNotElevated(a.Logger, "install")

		inst := a.installer()
		if err := inst.Install(cmd.Context()); err != nil {
			a.Logger.Error("install failed", "stage", inst.Stage(), "error", err)
			return nil
		}
		a.Logger.Info("service installed", "service", a.Config.ServiceName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
