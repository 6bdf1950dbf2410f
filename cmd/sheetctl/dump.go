package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/kernel"
	"github.com/gridkernel/sheet/logger"
	"github.com/gridkernel/sheet/persist"
)

// runDump loads path (if given) into a fresh Sheet, runs Update, and
// prints every live cell in row-major order. A missing path is not an
// error: it starts an empty sheet, matching a front-end that hasn't
// been told to load anything yet.
func runDump(cmd *cobra.Command, path string) error {
	log := logger.NewLogger(os.Stderr, logger.Info)
	defer log.Close()

	sh := kernel.NewSheet()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("sheetctl: %w", err)
		}
		defer f.Close()

		lines := persist.Load(f)
		log.Info("%s: %d lines parsed", path, len(lines))

		processed := 0
		log.AddPeriodic("load", 2*time.Second, 30*time.Second,
			func(c *logger.Composer, sinceLast time.Duration) {
				c.Write("%s: %d/%d cells inserted (%s since last report)",
					path, processed, len(lines), logger.RoundDuration(sinceLast, time.Second))
			})
		for _, line := range lines {
			if err := sh.Insert(line.Pos, line.Expr, line.Pool); err != nil {
				log.RemovePeriodic("load")
				return fmt.Errorf("sheetctl: loading %s: %w", coord.FormatAddress(line.Pos), err)
			}
			processed++
		}
		log.RemovePeriodic("load")
		sh.EndUndoGroup()
	}

	sh.Update()

	cells := sh.LiveCells()
	if len(cells) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(empty sheet)")
		return nil
	}
	for _, pos := range cells {
		rec, _ := sh.CellAt(pos)
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", coord.FormatAddress(pos), rec.Value)
	}
	return nil
}
