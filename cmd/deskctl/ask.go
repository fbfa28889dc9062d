package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/frontdesk/internal/conversation"
	"github.com/MikeSquared-Agency/frontdesk/internal/gemini"
	"github.com/MikeSquared-Agency/frontdesk/internal/resolver"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var historyPath string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Resolve one message through the FAQ, department and model tiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := readHistory(historyPath)
			if err != nil {
				return err
			}

			kb, depts := opts.loadCatalog(cmd.Context())
			llm := gemini.NewClient(opts.cfg.GeminiAPIURL, opts.cfg.GeminiAPIKey, opts.cfg.GeminiTimeout)
			res := resolver.New(kb, depts, llm, slog.Default())

			result, err := res.Resolve(cmd.Context(), strings.Join(args, " "), history)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", sourceLabel(result.Source), result.Answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", "", "JSON file with prior turns: [{\"sender\":\"user\",\"text\":\"...\"}]")
	return cmd
}

func readHistory(path string) ([]conversation.Turn, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var history []conversation.Turn
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return history, nil
}

func sourceLabel(source resolver.Source) string {
	label := "[" + string(source) + "]"
	switch source {
	case resolver.SourceFAQ:
		return color.GreenString(label)
	case resolver.SourceDepartment:
		return color.CyanString(label)
	default:
		return color.YellowString(label)
	}
}
