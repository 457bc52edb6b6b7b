package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the rawpick command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rawpick",
		Short: "Pull the RAW originals of your kept photos out of an archive",
		Long: `rawpick matches RAW files against a set of reference photos (JPEG, HEIC, ...)
by base file name and copies the matching RAW files into an output directory.
Cull the JPEGs, then let rawpick fetch the RAWs of the keepers.`,
		Version:       VersionString(),
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewMatchCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
