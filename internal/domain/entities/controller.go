package entities

import "github.com/spf13/cobra"

// ControllerBind is the Cobra metadata a controller contributes to the command tree.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is one CLI subcommand.
type Controller interface {
	GetBind() ControllerBind
	Execute(command *cobra.Command, arguments []string) error
	AddFlags(command *cobra.Command)
}
