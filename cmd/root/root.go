package root

import (
	"github.com/spf13/cobra"

	"github.com/go-polysat/polysat/cmd/bisect"

	"github.com/go-polysat/polysat/cmd/demo"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polysat",
		Short: "Polysat is a saturation engine for bit-vector multiplication conflicts",
		Long: `A lemma-generation engine for nonlinear bit-vector constraints written in Go.
For more information visit https://github.com/go-polysat/polysat`,
	}

	// add sub-commands
	rootCmd.AddCommand(bisect.NewBisectCommand())
	rootCmd.AddCommand(demo.NewDemoCommand())

	return rootCmd
}
