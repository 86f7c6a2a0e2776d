package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bedrock-oss/wikigen/internal/config"
	"github.com/bedrock-oss/wikigen/internal/util"
)

func newInitCommand() *cobra.Command {
	var force bool
	var rememberRoot bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default wikigen.yaml",
		Long: "Create the job configuration with the default pack locations, markers, limits and page paths. " +
			"With --remember-root the wiki root is also stored in wiki_local_path.txt for later runs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}
			log := opts.Logger().WithField("component", "init")

			if _, err := os.Stat(opts.ConfigPath); err == nil && !force {
				return NewCLIError(ExitCodeValidation, fmt.Sprintf("%s already exists; use --force to overwrite it", opts.ConfigPath))
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return WrapCLIError(ExitCodeFilesystem, err)
			}

			jobs := config.DefaultJobs()
			data, err := jobs.Encode()
			if err != nil {
				return WrapCLIError(ExitCodeUnknown, err)
			}

			written := []string{opts.ConfigPath}
			if rememberRoot {
				written = append(written, filepath.Join(filepath.Dir(opts.ConfigPath), config.WikiPathFile))
			}

			if opts.DryRun {
				log.WithFields(logrus.Fields{
					"action": "init",
					"files":  written,
					"dryRun": true,
				}).Info("Skipping write in dry-run mode")
				return respond(cmd, opts, true, fmt.Sprintf("Would write %s", opts.ConfigPath), map[string]interface{}{
					"files":   written,
					"dry_run": true,
				})
			}

			if err := util.WriteFileAtomic(opts.ConfigPath, data, 0o644); err != nil {
				return WrapCLIError(ExitCodeFilesystem, err)
			}
			if rememberRoot {
				if err := util.WriteFileAtomic(written[1], []byte(opts.RootDir+"\n"), 0o644); err != nil {
					return WrapCLIError(ExitCodeFilesystem, err)
				}
			}
			log.WithFields(logrus.Fields{
				"action": "init",
				"files":  written,
			}).Info("Configuration written")

			return respond(cmd, opts, true, fmt.Sprintf("Wrote %s", opts.ConfigPath), map[string]interface{}{
				"files": written,
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration")
	cmd.Flags().BoolVar(&rememberRoot, "remember-root", false, "Store the wiki root in wiki_local_path.txt next to the configuration")
	return cmd
}
