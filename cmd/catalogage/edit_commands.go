package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"catalogage/internal/batch"
	"catalogage/internal/catalog"
	"catalogage/internal/workspace"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ean> <field> <value>",
		Short: "Change one field of a book",
		Long: "Change one field of a book. Fields: titre, auteur, genre, cote, statut,\n" +
			"date_entree. Dates are given as DD/MM/YYYY; an unparseable date clears it.\n\n" +
			"Genres: " + joinLabels(catalog.AllGenres()) + "\n" +
			"Statuts: " + joinLabels(catalog.AllStatuses()),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := catalog.ParseField(args[1])
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, func(c context.Context, ws *workspace.Workspace) error {
				if err := ws.BeginEdit(c, args[0], field); err != nil {
					return err
				}
				if err := ws.StageEdit(args[2]); err != nil {
					return err
				}
				wrote, err := ws.CommitEdit(c)
				if err != nil {
					ws.CancelEdit()
					return err
				}
				out := cmd.OutOrStdout()
				if !wrote {
					fmt.Fprintf(out, "%s: %s unchanged\n", args[0], field)
					return nil
				}
				book, _ := ws.Book(args[0])
				fmt.Fprintf(out, "%s: %s = %q\n", args[0], field, book.EditValue(field))
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ean>...",
		Short: "Delete books",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, func(c context.Context, ws *workspace.Workspace) error {
				out := cmd.OutOrStdout()
				missing := 0
				for _, ean := range args {
					existed, err := ws.Delete(c, ean)
					if err != nil {
						return fmt.Errorf("delete %s: %w", ean, err)
					}
					if !existed {
						missing++
						fmt.Fprintf(out, "%s: not found\n", ean)
						continue
					}
					fmt.Fprintf(out, "Deleted %s\n", ean)
				}
				if missing == len(args) {
					return errors.New("no matching books")
				}
				return nil
			})
		},
	}
}

func newBulkCommand(ctx *commandContext) *cobra.Command {
	bulkCmd := &cobra.Command{
		Use:   "bulk",
		Short: "Apply one change to many books",
	}
	bulkCmd.AddCommand(newBulkSetCommand(ctx))
	bulkCmd.AddCommand(newBulkDeleteCommand(ctx))
	return bulkCmd
}

func newBulkSetCommand(ctx *commandContext) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "set <field> <value> [ean...]",
		Short: "Set a field on the selected books",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := catalog.ParseField(args[0])
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, func(c context.Context, ws *workspace.Workspace) error {
				if err := sel.apply(ws, args[2:]); err != nil {
					return err
				}
				result, err := ws.ApplyBulk(c, field, args[1])
				printBatchResult(cmd.OutOrStdout(), "Updated", result)
				return err
			})
		},
	}
	sel.register(cmd)
	return cmd
}

func newBulkDeleteCommand(ctx *commandContext) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "delete [ean...]",
		Short: "Delete the selected books",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, func(c context.Context, ws *workspace.Workspace) error {
				if err := sel.apply(ws, args); err != nil {
					return err
				}
				result, err := ws.DeleteSelected(c)
				printBatchResult(cmd.OutOrStdout(), "Deleted", result)
				return err
			})
		},
	}
	sel.register(cmd)
	return cmd
}

// selectionFlags builds the selection from explicit EANs or a whole partition.
type selectionFlags struct {
	all    string
	genre  string
	status string
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.all, "all", "", "Select every visible book of a partition (pending or completed)")
	cmd.Flags().StringVar(&s.genre, "genre", "", "Restrict pending books to a genre before selecting")
	cmd.Flags().StringVar(&s.status, "statut", "", "Restrict pending books to a statut before selecting")
}

func (s *selectionFlags) apply(ws *workspace.Workspace, eans []string) error {
	filters, err := parseFilterFlags(s.genre, s.status, "")
	if err != nil {
		return err
	}
	ws.SetFilter(filters)

	if s.all != "" {
		if len(eans) > 0 {
			return errors.New("--all cannot be combined with explicit EANs")
		}
		partition, err := workspace.ParsePartition(s.all)
		if err != nil {
			return err
		}
		ws.SelectAll(partition)
		return nil
	}
	if len(eans) == 0 {
		return errors.New("no books selected; pass EANs or --all")
	}
	return ws.SelectEANs(eans)
}

func printBatchResult(out io.Writer, verb string, result batch.Result) {
	done := len(result.Succeeded)
	fmt.Fprintf(out, "%s %d of %d", verb, done, result.Requested)
	if n := len(result.Missing); n > 0 {
		fmt.Fprintf(out, " (%d already gone)", n)
	}
	fmt.Fprintln(out)
	for _, failure := range result.Failures {
		fmt.Fprintf(out, "  failed %s: %v\n", failure.EAN, failure.Err)
	}
	if n := len(result.Skipped); n > 0 {
		fmt.Fprintf(out, "  %d not attempted\n", n)
	}
}

func joinLabels[T ~string](values []T) string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			labels = append(labels, string(v))
		}
	}
	return strings.Join(labels, ", ")
}
