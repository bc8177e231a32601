/*
menu.go - Interactive numbered menu

The classic console surface: a numbered loop reading choices from stdin,
each action mapping 1:1 to a platform operation. Errors abort only the
chosen action; exit is an explicit menu choice.
*/
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/marquee/premiere-engine/finance"
	"github.com/marquee/premiere-engine/premiere"
)

func init() {
	rootCmd.AddCommand(menuCmd)
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	p, err := openPlatform()
	if err != nil {
		return err
	}
	defer p.close()

	in := bufio.NewScanner(os.Stdin)
	out := os.Stdout

	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "=== Premiere platform ===")
		fmt.Fprintln(out, " 1. Add premiere")
		fmt.Fprintln(out, " 2. List premieres")
		fmt.Fprintln(out, " 3. Sell tickets")
		fmt.Fprintln(out, " 4. Return tickets")
		fmt.Fprintln(out, " 5. Add guest")
		fmt.Fprintln(out, " 6. Add review")
		fmt.Fprintln(out, " 7. Add finance record")
		fmt.Fprintln(out, " 8. Remove finance record")
		fmt.Fprintln(out, " 9. Finance report")
		fmt.Fprintln(out, "10. Premiere reports")
		fmt.Fprintln(out, " 0. Exit")

		choice := prompt(in, out, "Choice: ")
		var err error
		switch choice {
		case "1":
			err = menuAddPremiere(p, in, out)
		case "2":
			menuListPremieres(p, out)
		case "3":
			err = menuTickets(cmd, p, in, out, true)
		case "4":
			err = menuTickets(cmd, p, in, out, false)
		case "5":
			id := prompt(in, out, "Premiere id: ")
			name := prompt(in, out, "Guest name: ")
			adult := strings.EqualFold(prompt(in, out, "Is the guest 18 or older? (y/n): "), "y")
			err = p.premieres.AddGuest(id, name, adult)
		case "6":
			id := prompt(in, out, "Premiere id: ")
			review := prompt(in, out, "Review: ")
			err = p.premieres.AddReview(id, review)
		case "7":
			err = menuAddRecord(cmd, p, in, out)
		case "8":
			id := prompt(in, out, "Record id: ")
			err = p.ledger.RemoveRecord(cmd.Context(), id)
		case "9":
			var rep *finance.Report
			if rep, err = p.ledger.GenerateReport(); err == nil {
				rep.Render(out)
			}
		case "10":
			for _, r := range p.premieres.Reports() {
				fmt.Fprintln(out, r)
			}
		case "0":
			fmt.Fprintln(out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(out, "Unknown choice.")
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func menuAddPremiere(p *platform, in *bufio.Scanner, out *os.File) error {
	id := prompt(in, out, "Id: ")
	title := prompt(in, out, "Title: ")
	dateStr := prompt(in, out, "Date (dd.mm.yyyy HH:mm MST): ")
	location := prompt(in, out, "Location: ")
	capacityStr := prompt(in, out, "Ticket capacity: ")

	date, err := time.Parse(premiere.DateLayout, dateStr)
	if err != nil {
		return fmt.Errorf("invalid date %q", dateStr)
	}
	capacity, err := strconv.Atoi(capacityStr)
	if err != nil {
		return fmt.Errorf("invalid capacity %q", capacityStr)
	}

	ev, err := premiere.New(id, title, date, location, capacity, decimal.Zero)
	if err != nil {
		return err
	}
	if err := p.premieres.Add(ev); err != nil {
		return err
	}
	fmt.Fprintf(out, "Premiere added: %s\n", ev.Title)
	return nil
}

func menuListPremieres(p *platform, out *os.File) {
	events := p.premieres.All()
	if len(events) == 0 {
		fmt.Fprintln(out, "No premieres registered.")
		return
	}
	for _, ev := range events {
		fmt.Fprintf(out, "%-10s %-30s %s  sold %d/%d  budget %s\n",
			ev.ID, ev.Title, ev.Date.Format(premiere.DateLayout),
			ev.Sold(), ev.Capacity(), ev.Budget.StringFixed(2))
	}
}

func menuTickets(cmd *cobra.Command, p *platform, in *bufio.Scanner, out *os.File, sell bool) error {
	id := prompt(in, out, "Premiere id: ")
	countStr := prompt(in, out, "Ticket count: ")
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return fmt.Errorf("invalid ticket count %q", countStr)
	}

	if sell {
		op, err := p.boxOffice.SellTickets(cmd.Context(), id, count)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Sold %d tickets for %s. Available: %d.\n",
			op.Count, op.Amount.StringFixed(2), op.Available)
		return nil
	}

	op, err := p.boxOffice.ReturnTickets(cmd.Context(), id, count)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Returned %d tickets for %s. Available: %d.\n",
		op.Count, op.Amount.StringFixed(2), op.Available)
	return nil
}

func menuAddRecord(cmd *cobra.Command, p *platform, in *bufio.Scanner, out *os.File) error {
	categoryStr := prompt(in, out, "Category: ")
	amountStr := prompt(in, out, "Amount: ")
	description := prompt(in, out, "Description: ")

	category, err := finance.ParseCategory(strings.ToUpper(categoryStr))
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q", amountStr)
	}

	rec, err := finance.NewRecord(finance.NewRecordID(), category, amount, description, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := p.ledger.AddRecord(cmd.Context(), rec); err != nil {
		return err
	}
	fmt.Fprintf(out, "Finance record added: %s\n", rec)
	return nil
}

func prompt(in *bufio.Scanner, out *os.File, label string) string {
	fmt.Fprint(out, label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}
