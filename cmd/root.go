package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bedrock-oss/wikigen/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:           "wikigen",
		Short:         "Regenerate Bedrock wiki pages from vanilla pack data",
		Long:          "wikigen extracts data from vanilla resource and behavior packs and splices the generated tables and snippets into the marker regions of wiki pages.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Current(); err == nil {
				return nil
			}
			opts := config.New()
			if err := opts.Init(flagRoot, flagConfig, flagJSON, flagVerbose, flagDryRun, flagLogFile); err != nil {
				return WrapCLIError(ExitCodeFilesystem, err)
			}
			cmd.SetContext(opts.WithContext(cmd.Context()))
			return nil
		},
	}

	flagJSON    bool
	flagVerbose bool
	flagDryRun  bool
	flagRoot    string
	flagConfig  string
	flagLogFile string
)

// Execute runs the root command.
func Execute() error {
	registerCommands()
	err := rootCmd.Execute()
	if opts, cerr := config.Current(); cerr == nil {
		if cerr := opts.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to close resources: %v\n", cerr)
		}
	}
	return err
}

// RootCommand returns the configured root command; primarily for testing scenarios.
func RootCommand() *cobra.Command {
	registerCommands()
	return rootCmd
}

// registerCommands ensures all subcommands are attached before execution.
func registerCommands() {
	if len(rootCmd.Commands()) > 0 {
		return
	}
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Report changes without writing pages")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Path to the wiki checkout (default: wiki_local_path.txt, then current directory)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the job configuration (default: ./wikigen.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "File to write verbose logs")

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newSpliceCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newTableCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand())
}
