// finance.go - finance record and report commands
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/marquee/premiere-engine/finance"
	"github.com/marquee/premiere-engine/store/sqlite"
)

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.AddCommand(recordAddCmd)
	recordCmd.AddCommand(recordRemoveCmd)
	recordCmd.AddCommand(recordListCmd)
	recordCmd.AddCommand(recordHistoryCmd)
	rootCmd.AddCommand(reportCmd)

	recordAddCmd.Flags().String("id", "", "Record id (generated when omitted)")
	recordAddCmd.Flags().String("category", "", "Category (INCOME, CREDIT, SPONSORSHIP, EXPENSE, CAST, ADVERTISING, BUDGET, OTHER)")
	recordAddCmd.Flags().String("amount", "", "Amount, must be greater than 0")
	recordAddCmd.Flags().String("description", "", "Description")
	recordAddCmd.Flags().String("date", "", "Date as dd.mm.yyyy (defaults to today)")
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage finance records",
}

var recordAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a finance record",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		categoryStr, _ := cmd.Flags().GetString("category")
		amountStr, _ := cmd.Flags().GetString("amount")
		description, _ := cmd.Flags().GetString("description")
		dateStr, _ := cmd.Flags().GetString("date")

		category, err := finance.ParseCategory(categoryStr)
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q", amountStr)
		}
		date := time.Now().UTC()
		if dateStr != "" {
			date, err = time.Parse(finance.DateLayout, dateStr)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected dd.mm.yyyy", dateStr)
			}
		}
		if id == "" {
			id = finance.NewRecordID()
		}

		rec, err := finance.NewRecord(id, category, amount, description, date)
		if err != nil {
			return err
		}

		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		if err := p.ledger.AddRecord(cmd.Context(), rec); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Finance record added: %s\n", rec)
		return nil
	},
}

var recordRemoveCmd = &cobra.Command{
	Use:   "remove RECORD_ID",
	Short: "Remove a finance record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		if err := p.ledger.RemoveRecord(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Finance record %s removed.\n", args[0])
		return nil
	},
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List finance records",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		records := p.ledger.Records()
		if len(records) == 0 {
			fmt.Fprintln(os.Stdout, "No finance records.")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintln(os.Stdout, rec)
		}
		return nil
	},
}

var recordHistoryCmd = &cobra.Command{
	Use:   "history [RECORD_ID]",
	Short: "Show the archived ledger mutation history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		if p.archive == nil {
			return fmt.Errorf("ledger history archive is disabled")
		}

		var (
			entries []sqlite.HistoryEntry
		)
		if len(args) == 1 {
			entries, err = p.archive.HistoryForRecord(cmd.Context(), args[0])
		} else {
			entries, err = p.archive.History(cmd.Context())
		}
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(os.Stdout, "No archived history.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(os.Stdout, "%6d %-6s %s  at %s\n",
				e.Seq, e.Op, e.Record, e.OccurredAt.Format(time.RFC3339))
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the finance report",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		rep, err := p.ledger.GenerateReport()
		if err != nil {
			return err
		}
		rep.Render(os.Stdout)
		return nil
	},
}
