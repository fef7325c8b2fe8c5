package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/graydon/scholar-digest/internal/blacklist"
	"github.com/graydon/scholar-digest/internal/config"
	"github.com/graydon/scholar-digest/internal/gmail"
	"github.com/graydon/scholar-digest/internal/scholar"
	"github.com/spf13/cobra"
)

var flagOutput string

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Collect scholar alert mail into a digest",
	Long: `Fetch Google Scholar alert messages matching the configured query,
merge every mentioned paper into one block-per-paper digest, and write
the digest to stdout.

Papers appearing in several alerts are merged into a single block that
records which author, citation and related-research watches flagged
them. Configured publisher and topic blacklists are applied before
output.`,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().StringVar(&flagOutput, "output", "", "write the digest to a file instead of stdout")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	filter, err := loadFilter(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := gmail.NewClient(ctx, cfg.CredentialsPath(), cfg.TokenPath())
	if err != nil {
		return err
	}

	ids, err := client.List(ctx, cfg.Query, cfg.MaxResults)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Scanning %d messages...\n", len(ids))

	agg := scholar.NewAggregator()
	for _, id := range ids {
		msg, err := client.Fetch(ctx, id)
		if err != nil {
			return err
		}
		if len(msg.HTML) == 0 {
			continue
		}
		agg.SetSubject(msg.Subject)
		if err := agg.ReadFragment(bytes.NewReader(msg.HTML)); err != nil {
			return fmt.Errorf("parsing message %s: %w", id, err)
		}
	}

	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagOutput, err)
		}
		if err := writeDigest(f, agg, filter); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return writeDigest(cmd.OutOrStdout(), agg, filter)
}

func writeDigest(w io.Writer, agg *scholar.Aggregator, filter *blacklist.Filter) error {
	bw := bufio.NewWriter(w)
	for _, p := range agg.Papers() {
		if filter.Exclude(p.URL, p.Desc) {
			continue
		}
		if err := p.Block().Write(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func loadFilter(cfg *config.Config) (*blacklist.Filter, error) {
	publishers, err := blacklist.Load(cfg.PublisherBlacklistPath())
	if err != nil {
		return nil, err
	}
	topics, err := blacklist.Load(cfg.TopicBlacklistPath())
	if err != nil {
		return nil, err
	}
	return blacklist.NewFilter(publishers, topics), nil
}
