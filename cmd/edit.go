package cmd

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/graydon/scholar-digest/internal/editor"
	"github.com/spf13/cobra"
)

var (
	flagShow   string
	flagDelete string
	flagFiles  []string
)

// errUsage marks a misuse already reported on stdout.
var errUsage = errors.New("usage error")

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Show or delete digest blocks matching a pattern",
	Long: `Operate on saved digest files block by block. A block matches when
any of its lines matches the pattern; matching is case-insensitive.

--show prints matching blocks without touching the file. --delete
rewrites each file in place, dropping matching blocks; the original
file is restored if anything goes wrong mid-rewrite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runEdit(cmd)
		if err != nil && !errors.Is(err, errUsage) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	},
}

func init() {
	editCmd.Flags().StringVar(&flagShow, "show", "", "print blocks matching this pattern")
	editCmd.Flags().StringVar(&flagDelete, "delete", "", "delete blocks matching this pattern")
	editCmd.Flags().StringArrayVar(&flagFiles, "file", nil, "digest file to operate on (repeatable)")
	// SilenceErrors hides flag-parse failures too; report them the same
	// way runEdit failures are reported.
	editCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	})
}

func runEdit(cmd *cobra.Command) error {
	if flagShow != "" && flagDelete != "" {
		fmt.Fprintln(cmd.OutOrStdout(), "can only pass one of --show or --delete")
		return errUsage
	}
	if flagShow == "" && flagDelete == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "must pass one of --show or --delete")
		return errUsage
	}

	pattern := flagShow
	if flagDelete != "" {
		pattern = flagDelete
	}
	rx, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	if len(flagFiles) == 0 {
		return fmt.Errorf("at least one --file is required")
	}
	for _, path := range flagFiles {
		if flagDelete != "" {
			err = editor.Delete(path, rx)
		} else {
			err = editor.Show(cmd.OutOrStdout(), path, rx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
