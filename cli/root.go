/*
Package cli implements the premiere platform command line.

COMMANDS:
  premiere serve              Run the HTTP API server
  premiere menu               Interactive numbered menu
  premiere event ...          Manage premieres (add/list/remove/report/...)
  premiere tickets ...        Sell and return tickets
  premiere record ...         Manage finance records
  premiere report             Print the finance report

All commands read the TOML config (default ./premiere.toml) and operate on
the flat files in the configured data directory.
*/
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/marquee/premiere-engine/boxoffice"
	"github.com/marquee/premiere-engine/config"
	"github.com/marquee/premiere-engine/finance"
	"github.com/marquee/premiere-engine/premiere"
	"github.com/marquee/premiere-engine/store/flatfile"
	"github.com/marquee/premiere-engine/store/sqlite"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "premiere",
	Short: "Premiere production platform",
	Long: `Track premieres, ticket inventory and the finance ledger for a small
production operation. State lives in flat files in the data directory and is
rewritten after every mutation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "premiere.toml", "Path to TOML config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// platform bundles every wired component a command may need.
type platform struct {
	cfg       config.Config
	premieres *premiere.Manager
	ledger    *finance.Ledger
	boxOffice *boxoffice.Service
	archive   *sqlite.Archive // nil when disabled
}

// openPlatform loads config, opens the stores and reconstructs in-memory
// state from the flat files.
func openPlatform() (*platform, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	price, err := cfg.UnitPrice()
	if err != nil {
		return nil, err
	}
	// The unit price is a platform-wide constant; both the inventory and the
	// report's derived ticket counts must agree on it.
	premiere.DefaultTicketPrice = price
	finance.DefaultUnitPrice = price

	var archive *sqlite.Archive
	if cfg.Archive.Enabled {
		archive, err = sqlite.NewArchive(cfg.Archive.Path)
		if err != nil {
			// The archive is a query-side supplement; run without it.
			log.Printf("warning: ledger history archive unavailable: %v", err)
			archive = nil
		}
	}

	var ledgerArchive finance.Archive
	if archive != nil {
		ledgerArchive = archive
	}
	ledger, err := finance.NewLedger(flatfile.NewFinanceStore(cfg.DataDir), ledgerArchive)
	if err != nil {
		return nil, err
	}
	premieres, err := premiere.NewManager(flatfile.NewPremiereStore(cfg.DataDir))
	if err != nil {
		return nil, err
	}

	return &platform{
		cfg:       cfg,
		premieres: premieres,
		ledger:    ledger,
		boxOffice: boxoffice.NewService(premieres, ledger),
		archive:   archive,
	}, nil
}

func (p *platform) close() {
	if p.archive != nil {
		if err := p.archive.Close(); err != nil {
			log.Printf("warning: failed to close archive: %v", err)
		}
	}
}
