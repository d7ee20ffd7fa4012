package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"catalogage/internal/view"
	"catalogage/internal/workspace"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var genre string
	var status string
	var coteSort string
	var partition string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show pending and completed books",
		Long: "Show pending and completed books, most recent entry first. Filters and\n" +
			"the cote sort apply to the pending books only.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilterFlags(genre, status, coteSort)
			if err != nil {
				return err
			}
			showPending, showCompleted, err := partitionsToShow(partition)
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, func(_ context.Context, ws *workspace.Workspace) error {
				ws.SetFilter(filters)
				model := ws.View()
				if !showPending {
					model.Pending = nil
				}
				if !showCompleted {
					model.Completed = nil
				}
				if jsonOut {
					return writeJSON(cmd, model)
				}
				renderViewModel(cmd, model, showPending, showCompleted)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "Only pending books of this genre")
	cmd.Flags().StringVar(&status, "statut", "", "Only pending books with this statut")
	cmd.Flags().StringVar(&coteSort, "sort-cote", "", "Sort pending books by cote (asc or desc)")
	cmd.Flags().StringVar(&partition, "partition", "all", "Partition to show (pending, completed or all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func parseFilterFlags(genre, status, coteSort string) (view.Filters, error) {
	return view.ParseFilters(genre, status, coteSort)
}

func partitionsToShow(value string) (pending, completed bool, err error) {
	if strings.EqualFold(strings.TrimSpace(value), "all") || strings.TrimSpace(value) == "" {
		return true, true, nil
	}
	partition, err := workspace.ParsePartition(value)
	if err != nil {
		return false, false, err
	}
	return partition == workspace.PartitionPending, partition == workspace.PartitionCompleted, nil
}

func renderViewModel(cmd *cobra.Command, model workspace.ViewModel, showPending, showCompleted bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	selected := make(map[string]bool, len(model.Selection))
	for _, ean := range model.Selection {
		selected[ean] = true
	}

	section := func(title string, count int) {
		for _, line := range renderSectionHeader(fmt.Sprintf("%s (%d)", title, count), colorize) {
			fmt.Fprintln(out, line)
		}
	}
	if showPending {
		section("Pending", len(model.Pending))
		if len(model.Pending) == 0 {
			fmt.Fprintln(out, "No pending books")
		} else {
			fmt.Fprintln(out, renderBooks(model.Pending, selected, colorize))
		}
	}
	if showPending && showCompleted {
		fmt.Fprintln(out)
	}
	if showCompleted {
		section("Completed", len(model.Completed))
		if len(model.Completed) == 0 {
			fmt.Fprintln(out, "No completed books")
		} else {
			fmt.Fprintln(out, renderBooks(model.Completed, selected, colorize))
		}
	}
}
