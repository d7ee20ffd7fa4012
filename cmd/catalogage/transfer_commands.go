package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"catalogage/internal/fileutil"
	"catalogage/internal/importer"
	"catalogage/internal/workspace"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import books from a spreadsheet export",
		Long: "Import books from a CSV export (comma or semicolon separated) with the\n" +
			"columns EAN, Titre, Auteur, Genre, Cote, Statut, Date d'entrée. Rows\n" +
			"without an EAN are skipped; an existing EAN is overwritten. Use - for stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strict {
				cfg.Import.Strict = true
			}

			rows, err := readImportFile(cmd, args[0])
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, func(c context.Context, ws *workspace.Workspace) error {
				result, err := ws.ImportRows(c, rows)
				printImportResult(cmd.OutOrStdout(), result)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject rows with an unknown statut, genre or date")
	return cmd
}

func readImportFile(cmd *cobra.Command, path string) ([]importer.Row, error) {
	if strings.TrimSpace(path) == "-" {
		return importer.ReadCSV(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return importer.ReadCSV(f)
}

func printImportResult(out io.Writer, result importer.Result) {
	fmt.Fprintf(out, "Imported %d, skipped %d, rejected %d\n", result.Imported, result.Skipped, len(result.Rejected))
	for _, rejected := range result.Rejected {
		fmt.Fprintf(out, "  %s\n", rejected.Error())
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.csv]",
		Short: "Export every book as CSV",
		Long:  "Export every book as CSV in a form the import command accepts. Writes to stdout without a file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, func(_ context.Context, ws *workspace.Workspace) error {
				model := ws.View()
				books := append(model.Pending, model.Completed...)
				if len(args) == 0 {
					return importer.WriteCSV(cmd.OutOrStdout(), books)
				}
				err := fileutil.WriteAtomic(args[0], 0o644, func(w io.Writer) error {
					return importer.WriteCSV(w, books)
				})
				if err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d books to %s\n", len(books), args[0])
				return nil
			})
		},
	}
}
