package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/a11ybridge/internal/output"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [script.yaml]",
	Short: "Run a call script against headless adapters and print the raised events",
	Long: `Run a call script that creates adapters, activates them, pushes updates and
requests actions. Each step is reported with the platform events it raised.

Example:
  a11ybridge simulate session.yaml
  a11ybridge simulate --platform windows - < session.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	addScriptFlags(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	_, res, err := runScript(cmd, args)
	if err != nil {
		return err
	}
	if err := output.Print(res); err != nil {
		return err
	}
	return scriptFailed(res)
}
