package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/goregistry/internal/adapter/http/dto"
	"github.com/iho/goregistry/internal/compliance"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "registry-cli",
		Short:         "GoRegistry CLI tool",
		Long:          `A command line interface for the GoRegistry holdings API and compliance tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoRegistry API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(newHoldingsCmd(), newLookupCmd(), newEntityTypeCmd())

	return rootCmd
}

func newHoldingsCmd() *cobra.Command {
	var classID string

	cmd := &cobra.Command{
		Use:   "holdings <member-id>",
		Short: "Print the reconciled holdings of a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			holdings, err := fetchHoldings(&http.Client{Timeout: timeout}, baseURL, args[0], classID)
			if err != nil {
				return err
			}
			return printHoldings(cmd.OutOrStdout(), holdings)
		},
	}

	cmd.Flags().StringVar(&classID, "class", "all", "Security class ID, or all")

	return cmd
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <country> <type> [value]",
		Short: "Describe an identifier type and optionally format a value",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			country := strings.ToUpper(args[0])
			t, ok := compliance.Lookup(country, args[1])
			if !ok {
				return fmt.Errorf("no identifier type %q for country %q", args[1], country)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s: %s\n", country, t.Code, t.Name)
			if n := t.Format.Length(); n > 0 {
				fmt.Fprintf(out, "Length: %d\n", n)
			}
			if len(args) == 3 {
				fmt.Fprintf(out, "Formatted: %s\n", t.FormatValue(args[2]))
			}

			return nil
		},
	}
}

func newEntityTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entity-type <country> <code>",
		Short: "Describe an entity type of a country",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			country := strings.ToUpper(args[0])
			t, ok := compliance.LookupEntityType(country, args[1])
			if !ok {
				return fmt.Errorf("no entity type %q for country %q", args[1], country)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", country, t.Code, t.Name)
			return nil
		},
	}
}

type holdingsEnvelope struct {
	Success bool                  `json:"success"`
	Data    *dto.HoldingsResponse `json:"data"`
	Error   string                `json:"error"`
}

func fetchHoldings(client *http.Client, base, memberID, classID string) (*dto.HoldingsResponse, error) {
	endpoint := fmt.Sprintf("%s/api/registry/members/%s/holdings", strings.TrimRight(base, "/"), url.PathEscape(memberID))
	if classID != "" {
		endpoint += "?securityClassId=" + url.QueryEscape(classID)
	}

	resp, err := client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("request holdings: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope holdingsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}

	if !envelope.Success || envelope.Data == nil {
		return nil, fmt.Errorf("holdings request failed (status %d): %s", resp.StatusCode, envelope.Error)
	}

	return envelope.Data, nil
}

func printHoldings(w io.Writer, h *dto.HoldingsResponse) error {
	fmt.Fprintf(w, "Member: %s (%s)\n\n", h.MemberName, h.MemberID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tQUANTITY\tPAID\tUNPAID\tTRANCHES")
	for _, s := range h.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\n",
			classLabel(s.SecurityClassSymbol, s.SecurityClassName),
			s.TotalQuantity,
			formatAmount(s.TotalAmountPaid, s.Currency),
			formatAmount(s.TotalAmountUnpaid, s.Currency),
			s.TrancheCount,
		)
	}

	return tw.Flush()
}

func classLabel(symbol, name string) string {
	if symbol == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, symbol)
}

// formatAmount renders a decimal amount with the currency's symbol and
// minor units. Unknown currencies fall back to the plain value and code.
func formatAmount(value decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return value.StringFixed(2) + " " + code
	}

	fraction := int32(cur.Fraction)
	return cur.Formatter().Format(value.Round(fraction).Shift(fraction).IntPart())
}
