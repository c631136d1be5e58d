package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fretforge/fretforge/engine/configurator"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/spf13/cobra"
)

// QuoteCmd returns the quote command: a one-shot configuration run that
// settles the given choices and prints the resulting view as JSON.
func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Resolve a configuration and print the priced result",
		RunE:  handleQuoteCmd,
	}
	cmd.Flags().String("model", "", "Product model key to configure")
	cmd.Flags().StringArray("set", nil, `Choice to apply, as "Group=Option" (repeatable, applied in order)`)
	cmd.Flags().Bool("send", false, "Submit the configuration as a quote request")
	addCommonFlags(cmd)
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func parseChoices(pairs []string) ([]configurator.Choice, error) {
	choices := make([]configurator.Choice, 0, len(pairs))
	for _, pair := range pairs {
		group, option, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(group) == "" || strings.TrimSpace(option) == "" {
			return nil, fmt.Errorf("invalid choice %q: expected \"Group=Option\"", pair)
		}
		choices = append(choices, configurator.Choice{
			Group:  strings.TrimSpace(group),
			Option: strings.TrimSpace(option),
		})
	}
	return choices, nil
}

func handleQuoteCmd(cmd *cobra.Command, _ []string) error {
	ctx, err := setupContext(cmd)
	if err != nil {
		return err
	}
	cfg := config.FromContext(ctx)
	model, err := cmd.Flags().GetString("model")
	if err != nil {
		return fmt.Errorf("failed to get model flag: %w", err)
	}
	pairs, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return fmt.Errorf("failed to get set flag: %w", err)
	}
	choices, err := parseChoices(pairs)
	if err != nil {
		return err
	}
	service, err := buildService(cfg)
	if err != nil {
		return err
	}
	send, err := cmd.Flags().GetBool("send")
	if err != nil {
		return fmt.Errorf("failed to get send flag: %w", err)
	}
	var result any
	if send {
		result, err = service.QuoteRequest(ctx, model, choices)
	} else {
		result, err = service.Configure(ctx, model, choices)
	}
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
