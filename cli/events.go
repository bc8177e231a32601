// events.go - premiere management commands
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/marquee/premiere-engine/premiere"
)

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventRemoveCmd)
	eventCmd.AddCommand(eventReportCmd)
	eventCmd.AddCommand(eventGuestCmd)
	eventCmd.AddCommand(eventReviewCmd)
	eventCmd.AddCommand(eventBudgetCmd)

	eventAddCmd.Flags().String("id", "", "Premiere id (max 30 characters)")
	eventAddCmd.Flags().String("title", "", "Premiere title")
	eventAddCmd.Flags().String("date", "", "Date as dd.mm.yyyy HH:mm MST")
	eventAddCmd.Flags().String("location", "", "Location")
	eventAddCmd.Flags().Int("capacity", 0, "Initial ticket capacity")
	eventAddCmd.Flags().String("budget", "0", "Initial budget")

	eventGuestCmd.Flags().Bool("adult", false, "Guest is 18 or older")
}

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage premieres",
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a premiere",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		id, _ := cmd.Flags().GetString("id")
		title, _ := cmd.Flags().GetString("title")
		dateStr, _ := cmd.Flags().GetString("date")
		location, _ := cmd.Flags().GetString("location")
		capacity, _ := cmd.Flags().GetInt("capacity")
		budgetStr, _ := cmd.Flags().GetString("budget")

		date, err := time.Parse(premiere.DateLayout, dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected dd.mm.yyyy HH:mm MST", dateStr)
		}
		budget, err := decimal.NewFromString(budgetStr)
		if err != nil {
			return fmt.Errorf("invalid budget %q", budgetStr)
		}

		ev, err := premiere.New(id, title, date, location, capacity, budget)
		if err != nil {
			return err
		}
		if err := p.premieres.Add(ev); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Premiere added: %s (%d tickets)\n", ev.Title, ev.Capacity())
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List premieres",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		events := p.premieres.All()
		if len(events) == 0 {
			fmt.Fprintln(os.Stdout, "No premieres registered.")
			return nil
		}
		for _, ev := range events {
			fmt.Fprintf(os.Stdout, "%-10s %-30s %s  sold %d/%d  budget %s\n",
				ev.ID, ev.Title, ev.Date.Format(premiere.DateLayout),
				ev.Sold(), ev.Capacity(), ev.Budget.StringFixed(2))
		}
		return nil
	},
}

var eventRemoveCmd = &cobra.Command{
	Use:   "remove PREMIERE_ID",
	Short: "Remove a premiere",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		if err := p.premieres.RemoveByID(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Premiere %s removed.\n", args[0])
		return nil
	},
}

var eventReportCmd = &cobra.Command{
	Use:   "report [PREMIERE_ID]",
	Short: "Print premiere reports",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		if len(args) == 1 {
			ev, err := p.premieres.FindByID(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, ev.Report())
			return nil
		}

		reports := p.premieres.Reports()
		if len(reports) == 0 {
			fmt.Fprintln(os.Stdout, "No premieres to report on.")
			return nil
		}
		for _, r := range reports {
			fmt.Fprintln(os.Stdout, r)
		}
		return nil
	},
}

var eventGuestCmd = &cobra.Command{
	Use:   "guest PREMIERE_ID NAME",
	Short: "Add a guest to a premiere",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		isAdult, _ := cmd.Flags().GetBool("adult")
		if err := p.premieres.AddGuest(args[0], args[1], isAdult); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Guest %s added to premiere %s.\n", args[1], args[0])
		return nil
	},
}

var eventReviewCmd = &cobra.Command{
	Use:   "review PREMIERE_ID TEXT",
	Short: "Add a review to a premiere",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		if err := p.premieres.AddReview(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Review added.")
		return nil
	},
}

var eventBudgetCmd = &cobra.Command{
	Use:   "budget PREMIERE_ID AMOUNT",
	Short: "Contribute to a premiere's budget",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		if err := p.boxOffice.ContributeBudget(cmd.Context(), args[0], amount); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Budget of premiere %s increased by %s.\n", args[0], amount.StringFixed(2))
		return nil
	},
}
