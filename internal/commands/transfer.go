package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pennywise/pennywise/internal/app"
	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/database"
	"github.com/pennywise/pennywise/pkg/transfer"
	"github.com/spf13/cobra"
)

func newImportCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <table> <file>",
		Short: "Import a CSV file into expenses, revenue or budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := transfer.ParseTable(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[1], err)
			}
			defer f.Close()

			deps, closeDb, err := connect(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer closeDb()

			result, err := deps.TransferService.Import(cmd.Context(), table, f)
			if err != nil {
				return err
			}
			return printImportResult(cmd.OutOrStdout(), result)
		},
	}
}

func printImportResult(w io.Writer, result transfer.ImportResult) error {
	if _, err := fmt.Fprintf(w, "Imported %d rows successfully.\n", result.SuccessCount); err != nil {
		return err
	}
	if len(result.Errors) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Skipped %d rows due to errors:\n", len(result.Errors)); err != nil {
		return err
	}
	for _, rowErr := range result.Errors {
		if _, err := fmt.Fprintln(w, rowErr.Error()); err != nil {
			return err
		}
	}
	return nil
}

func newExportCommand(configPath *string) *cobra.Command {
	var toSheets bool

	cmd := &cobra.Command{
		Use:   "export <table> [file]",
		Short: "Export expenses, revenue or budget as CSV",
		Long:  "Export a table as CSV. Without a file the name is derived from the table and today's date; use - for stdout.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := transfer.ParseTable(args[0])
			if err != nil {
				return err
			}

			deps, closeDb, err := connect(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer closeDb()

			if toSheets {
				result, err := deps.SheetsExporter.Export(cmd.Context(), table)
				if err != nil {
					return err
				}
				cmd.Printf("Wrote %d rows to sheet %s\n", result.Rows, result.Sheet)
				return nil
			}

			path := deps.TransferService.FileName(table)
			if len(args) == 2 {
				path = args[1]
			}
			if path == "-" {
				return deps.TransferService.Export(cmd.Context(), table, cmd.OutOrStdout())
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := deps.TransferService.Export(cmd.Context(), table, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			cmd.Printf("Exported %s to %s\n", table, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&toSheets, "sheets", false, "push to the configured Google spreadsheet instead of a file")

	return cmd
}

// connect opens the database for one-shot commands. Unlike serve, an
// unreachable database is an error here.
func connect(ctx context.Context, configPath string) (*app.Dependencies, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, nil, err
	}
	return app.BuildDependencies(ctx, db, cfg), db.Close, nil
}
