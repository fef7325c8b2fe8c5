package cmd

import (
	"fmt"
	"os"

	"github.com/graydon/scholar-digest/internal/block"
	"github.com/spf13/cobra"
)

var flagStatsFiles []string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show digest statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(flagStatsFiles) == 0 {
			return fmt.Errorf("at least one --file is required")
		}
		for _, path := range flagStatsFiles {
			count, size, err := digestStats(path)
			if err != nil {
				return fmt.Errorf("reading stats: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Digest: %s\n", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Blocks: %d\n", count)
			fmt.Fprintf(cmd.OutOrStdout(), "Size: %s\n", formatBytes(size))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringArrayVar(&flagStatsFiles, "file", nil, "digest file to report on (repeatable)")
}

func digestStats(path string) (int, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}

	count := 0
	sc := block.NewScanner(f)
	for sc.Scan() {
		count++
	}
	if err := sc.Err(); err != nil {
		return 0, 0, err
	}
	return count, info.Size(), nil
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
