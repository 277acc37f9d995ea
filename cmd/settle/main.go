// Command settle prints balances and the settlement for a group described in JSON.
//
//	settle -in group.json [-mode netted|per-expense] [-json]
//
// The input has the shape {"members": [...], "expenses": [{"amount", "paidBy", "splitBetween"}]}.
// Reading from stdin is the default.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsettle/internal/service"
	"github.com/mmynk/splitsettle/pkg/api"
	"github.com/mmynk/splitsettle/pkg/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type output struct {
	Balances   []api.MemberBalance        `json:"balances"`
	Summary    api.Summary                `json:"summary"`
	Settlement *api.GetSettlementResponse `json:"settlement"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("settle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "-", "group JSON file, - for stdin")
	mode := fs.String("mode", "netted", "settlement mode: netted or per-expense")
	asJSON := fs.Bool("json", false, "print JSON instead of tables")
	logLevel := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	slog.SetDefault(logging.New(stderr, logging.ParseLevel(*logLevel)))

	req, err := readGroup(*in, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "settle: %v\n", err)
		return 1
	}

	ctx := context.Background()
	svc := service.NewSettlementService(nil)

	balances, err := svc.GetBalances(ctx, connect.NewRequest(req))
	if err != nil {
		return fail(stderr, err)
	}
	settlement, err := svc.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{
		Members:  req.Members,
		Expenses: req.Expenses,
		Mode:     *mode,
	}))
	if err != nil {
		return fail(stderr, err)
	}

	out := output{
		Balances:   balances.Msg.Balances,
		Summary:    balances.Msg.Summary,
		Settlement: settlement.Msg,
	}
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(stderr, "settle: %v\n", err)
			return 1
		}
		return 0
	}

	printTables(stdout, out)
	return 0
}

func readGroup(path string, stdin io.Reader) (*api.GetBalancesRequest, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var req api.GetBalancesRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("parse group: %w", err)
	}
	return &req, nil
}

func fail(stderr io.Writer, err error) int {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		fmt.Fprintf(stderr, "settle: %s\n", connectErr.Message())
	} else {
		fmt.Fprintf(stderr, "settle: %v\n", err)
	}
	return 1
}

func printTables(w io.Writer, out output) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MEMBER\tPAID\tOWES\tBALANCE\t")
	for _, b := range out.Balances {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%+.2f\t\n", b.Member, b.Paid, b.Owes, b.Balance)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d expenses, %.2f total\n\n", out.Summary.Count, out.Summary.Total)

	if len(out.Settlement.Transactions) == 0 {
		fmt.Fprintln(w, "All settled.")
		return
	}
	fmt.Fprintf(w, "Settlement (%s):\n", out.Settlement.Mode)
	for _, tx := range out.Settlement.Transactions {
		if tx.ExpenseID != "" {
			fmt.Fprintf(w, "  %s pays %s %.2f  [%s]\n", tx.From, tx.To, tx.Amount, label(tx))
			continue
		}
		fmt.Fprintf(w, "  %s pays %s %.2f\n", tx.From, tx.To, tx.Amount)
	}
}

func label(tx api.Transaction) string {
	if tx.Description != "" {
		return tx.Description
	}
	return tx.ExpenseID
}
