package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/output"
	"github.com/mj1618/a11ybridge/internal/script"
)

// BuildResult is the output of the build command.
type BuildResult struct {
	OK      bool                        `yaml:"ok"                json:"ok"`
	Error   string                      `yaml:"error,omitempty"   json:"error,omitempty"`
	Updates map[string]model.UpdateView `yaml:"updates"           json:"updates"`
	Live    int                         `yaml:"live"              json:"live"`
	Failed  []script.StepResult         `yaml:"failed,omitempty"  json:"failed,omitempty"`
}

var buildCmd = &cobra.Command{
	Use:   "build [script.yaml]",
	Short: "Build tree updates from a call script and print them",
	Long: `Run a call script and print every tree update it still holds at the end,
with nodes in insertion order, the declared root and the focus target.

Example:
  a11ybridge build <<'EOF'
  - node-new: { as: win, role: window, children: [2] }
  - node-new: { as: ok, role: button, actions: [click], label: OK }
  - update-new: { as: first, focus: 2, root: 1 }
  - update-add: { update: first, id: 1, node: win }
  - update-add: { update: first, id: 2, node: ok }
  EOF`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addScriptFlags(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	r, res, err := runScript(cmd, args)
	if err != nil {
		return err
	}
	out := BuildResult{
		OK:      res.OK,
		Error:   res.Error,
		Updates: r.UpdateViews(),
		Live:    res.Live,
	}
	for _, step := range res.Results {
		if !step.OK {
			out.Failed = append(out.Failed, step)
		}
	}
	if err := output.Print(out); err != nil {
		return err
	}
	return scriptFailed(res)
}
