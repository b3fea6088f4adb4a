package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"finapp/internal/cli"
	"finapp/internal/events"
)

func tailEventsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tail-events",
		Short: "Print submission events from the AMQP queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.EventsEnabled() {
				return errors.New("AMQP_URL is not set")
			}

			client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
			if err != nil {
				return fmt.Errorf("connect to broker: %w", err)
			}
			defer client.Close()

			ctx, cancel := cli.SignalContext(cmd.Context(), logger)
			defer cancel()

			out := cmd.OutOrStdout()
			err = client.Consume(ctx, func(s *events.Submission) error {
				if asJSON {
					b, err := s.ToJSON()
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(b))
					return nil
				}
				fmt.Fprintln(out, formatSubmission(s))
				return nil
			})
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON events")
	return cmd
}

var outcomeStyles = map[string]lipgloss.Style{
	events.OutcomeOK:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	events.OutcomeAPIError:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	events.OutcomeTransport: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	events.OutcomeInvalid:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

func formatSubmission(s *events.Submission) string {
	status := "-"
	if s.Status != 0 {
		status = fmt.Sprint(s.Status)
	}
	outcome := fmt.Sprintf("%-15s", s.Outcome)
	if style, ok := outcomeStyles[s.Outcome]; ok {
		outcome = style.Render(outcome)
	}
	return fmt.Sprintf("%-16s %-14s %-24s %s %-4s %s",
		humanize.Time(s.Timestamp),
		s.Page,
		s.Endpoint,
		outcome,
		status,
		time.Duration(s.DurationMS)*time.Millisecond,
	)
}
