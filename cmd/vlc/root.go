package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vlc/internal/lifecycle"
)

type exitError struct {
	status int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.status)
}

func newRootCommand(environ []string) *cobra.Command {
	return newRootCommandWith(environ, lifecycle.Options{})
}

func newRootCommandWith(environ []string, base lifecycle.Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:                "vlc [options] [parameters] [file]...",
		Short:              "VideoLAN client",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := base
			opts.Args = append([]string{invocationName()}, args...)
			opts.Environ = environ
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			if status := lifecycle.Run(cmd.Context(), opts); status != lifecycle.ExitOK {
				return &exitError{status: status}
			}
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}

func invocationName() string {
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "vlc"
}
