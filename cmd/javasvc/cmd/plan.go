package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/munichmade/javasvc/internal/jre"
	"github.com/munichmade/javasvc/internal/service"
)

var planOutput string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the service commands without running them",
	Long: `Print the commands install and uninstall would run. Nothing is
executed and nothing is written to disk: the logs directory and the installer
log are created in memory only.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printUnexpectedArgs(cmd, args) {
			return nil
		}
		if planOutput != "text" && planOutput != "yaml" {
			return fmt.Errorf("unknown output format %q, use text or yaml", planOutput)
		}

		fs := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())
		a, err := openApp(cmd.Context(), fs, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		p := buildPlan(a)
		if planOutput == "yaml" {
			return writePlanYAML(cmd.OutOrStdout(), p)
		}
		writePlanText(cmd.OutOrStdout(), p)
		return nil
	},
}

// Plan is the printable result of the plan command.
type Plan struct {
	Service   string   `yaml:"service"`
	Java      string   `yaml:"java"`
	Install   []string `yaml:"install"`
	Uninstall []string `yaml:"uninstall"`
	Errors    []string `yaml:"errors,omitempty"`
}

func buildPlan(a *app) Plan {
	b := a.builder()
	p := Plan{
		Service: a.Config.ServiceName(),
		Java:    a.env.RuntimeVersion(),
	}

	if uninstall, err := b.BuildUninstall(); err != nil {
		p.Errors = append(p.Errors, "uninstall: "+err.Error())
	} else {
		p.Uninstall = uninstall.Strings()
	}
	// install refuses an old runtime before building anything.
	if !jre.CheckVersion(p.Java) {
		err := fmt.Errorf("%w: %q", service.ErrUnsupportedVersion, p.Java)
		p.Errors = append(p.Errors, "install: "+err.Error())
		return p
	}
	if install, err := b.BuildInstall(); err != nil {
		p.Errors = append(p.Errors, "install: "+err.Error())
	} else {
		p.Install = install.Strings()
	}
	return p
}

func writePlanText(w io.Writer, p Plan) {
	fmt.Fprintf(w, "Service: %s\n", p.Service)
	fmt.Fprintf(w, "Java:    %s\n", p.Java)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Uninstall:")
	for _, line := range p.Uninstall {
		fmt.Fprintf(w, "  %s\n", line)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Install:")
	for _, line := range p.Install {
		fmt.Fprintf(w, "  %s\n", line)
	}

	if len(p.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors:")
		for _, e := range p.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}

func writePlanYAML(w io.Writer, p Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}

func init() {
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "text", "output format: text or yaml")
	rootCmd.AddCommand(planCmd)
}
