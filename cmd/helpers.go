package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bedrock-oss/wikigen/internal/config"
	"github.com/bedrock-oss/wikigen/internal/lock"
	"github.com/bedrock-oss/wikigen/internal/util"
)

func options() (*config.Options, error) {
	return config.Current()
}

func respond(cmd *cobra.Command, opts *config.Options, success bool, message string, data interface{}) error {
	if opts.JSONOutput {
		payload := util.StructuredResult(success, message, data)
		return util.PrintJSON(cmd.OutOrStdout(), payload)
	}
	if message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), message)
	}
	return nil
}

// loadJobs reads the job configuration named by the global flags. A missing
// default file falls back to the built-in configuration; a missing file
// requested explicitly is an error.
func loadJobs(opts *config.Options) (*config.Jobs, error) {
	jobs, err := config.LoadJobs(opts.ConfigPath, flagConfig == "")
	if err != nil {
		return nil, classify(err)
	}
	return jobs, nil
}

// lockWiki takes the run lock for commands that rewrite pages.
func lockWiki(opts *config.Options, command string) (func(), error) {
	release, err := lock.NewManager(opts).Acquire(command, lock.DefaultTTL)
	if err != nil {
		if errors.Is(err, lock.ErrActiveLock) {
			return nil, WrapCLIError(ExitCodeLocked, err)
		}
		return nil, classify(err)
	}
	return func() {
		if err := release(); err != nil {
			opts.Logger().WithError(err).Warn("Failed to release lock")
		}
	}, nil
}
