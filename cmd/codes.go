package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/a11ybridge/internal/output"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List role codes",
	Long:  "List every role with its numeric code, wire name and compact short code.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(output.CodeTables("role"))
	},
}

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List action codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(output.CodeTables("action"))
	},
}

var codesCmd = &cobra.Command{
	Use:   "codes [kind...]",
	Short: "List the code tables of every enumeration",
	Long: `List the numeric codes accepted at the boundary. With no arguments every table
is printed; otherwise only the named ones (role, action, toggled, live,
textDirection).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(output.CodeTables(args...))
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd, actionsCmd, codesCmd)
}
