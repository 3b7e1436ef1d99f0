package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11ybridge/internal/script"
)

// stdin is where scripts are read from when no file is named.
var stdin io.Reader = os.Stdin

// readScript loads the script named by args[0], or reads it from stdin
// when no argument or "-" is given.
func readScript(args []string) (*script.Script, error) {
	if len(args) > 0 && args[0] != "-" {
		return script.Load(args[0])
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no steps provided on stdin — pipe a YAML list of calls")
	}
	return script.Parse(data)
}

// runScript reads the script and runs it on a fresh runner. A failing
// script is not an error here; callers decide how to report it.
func runScript(cmd *cobra.Command, args []string) (*script.Runner, script.Result, error) {
	s, err := readScript(args)
	if err != nil {
		return nil, script.Result{}, err
	}
	if stop, _ := cmd.Flags().GetBool("stop-on-error"); cmd.Flags().Changed("stop-on-error") {
		s.StopOnError = &stop
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	r := script.New(cfg.Platform, logger)
	res := r.Run(ctx, s)
	logger.Debug().Int("steps", res.Steps).Int("completed", res.Completed).Int("live", res.Live).Msg("script finished")
	return r, res, nil
}

// scriptFailed turns a failed run into the command's error after its
// output has been printed.
func scriptFailed(res script.Result) error {
	if res.OK {
		return nil
	}
	if res.Error != "" {
		return fmt.Errorf("script failed: %s", res.Error)
	}
	return fmt.Errorf("script failed: %d of %d steps completed", res.Completed, res.Steps)
}

func addScriptFlags(c *cobra.Command) {
	c.Flags().Bool("stop-on-error", true, "Stop execution on first error")
}
