package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/armmock/pkg/config"
	"github.com/getmockd/armmock/pkg/coordinator"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/responder"
	"github.com/getmockd/armmock/pkg/specindex"
)

var (
	matchSpecRoot string
	matchJSON     bool
)

// matchResult is what the match command reports.
type matchResult struct {
	Method      string `json:"method"`
	URL         string `json:"url"`
	OperationID string `json:"operationId"`
	APIVersion  string `json:"apiVersion"`
	File        string `json:"file"`
	Path        string `json:"path"`
	LongRunning bool   `json:"longRunning"`
	PollingURL  string `json:"pollingUrl,omitempty"`
}

var matchCmd = &cobra.Command{
	Use:   "match METHOD URL",
	Short: "Print the spec operation a request resolves to",
	Example: `  armmock match GET "https://management.azure.com/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Storage/storageAccounts/sa1?api-version=2023-01-01"

  armmock match PUT /subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Compute/virtualMachines/vm1 --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("spec-root") {
			cfg.Specs.Root = matchSpecRoot
			cfg.SetSource("specs.root", config.SourceFlag)
		}
		return runMatch(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], args[1], matchJSON)
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchSpecRoot, "spec-root", config.DefaultSpecRoot, "Root directory of the spec tree")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Output the result in JSON format")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(ctx context.Context, out io.Writer, cfg *config.Config, method, target string, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ix := specindex.New(cfg.IndexConfig())
	coord := coordinator.New(cfg.CoordinatorConfig(), ix, responder.New(cfg.ResponderConfig()), logging.Nop())
	if err := coord.Initialize(ctx); err != nil {
		return fmt.Errorf("loading specs from %s: %w", cfg.Specs.Root, err)
	}

	req, err := exchange.NewRequest(strings.ToUpper(method), target, nil, nil)
	if err != nil {
		return err
	}
	if req.Host == "" {
		req.Host = "management.azure.com"
	}

	op, version, err := coord.Search(req)
	if err != nil {
		return err
	}
	res := matchResult{
		Method:      req.Method,
		URL:         req.URL,
		OperationID: op.ID(),
		APIVersion:  version,
		File:        op.File.Path,
		Path:        op.Path,
		LongRunning: op.IsLongRunning(),
	}
	if res.LongRunning {
		if res.PollingURL, err = coord.FindLROGet(ctx, req, op, version); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintf(out, "Operation:    %s\n", res.OperationID)
	fmt.Fprintf(out, "API version:  %s\n", res.APIVersion)
	fmt.Fprintf(out, "Path:         %s\n", res.Path)
	fmt.Fprintf(out, "File:         %s\n", res.File)
	if res.LongRunning {
		polling := res.PollingURL
		if polling == "" {
			polling = "(none, responds synchronously)"
		}
		fmt.Fprintf(out, "Polling URL:  %s\n", polling)
	}
	return nil
}
