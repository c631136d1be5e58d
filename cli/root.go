package cli

import (
	"github.com/fretforge/fretforge/pkg/version"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "fretforge",
		Short:   "Fretforge product configurator",
		Version: version.Get().Version,
	}

	root.AddCommand(
		ServeCmd(),
		QuoteCmd(),
	)

	return root
}
