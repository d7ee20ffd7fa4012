package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"catalogage/internal/workspace"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add [code...]",
		Short: "Add books by 13-digit code",
		Long: "Add books by 13-digit code. Codes are looked up on Google Books when\n" +
			"lookups are enabled. Without arguments, codes are read one per line from\n" +
			"stdin, which suits a barcode scanner.",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := args
			if len(codes) == 0 {
				scanned, err := readCodes(cmd)
				if err != nil {
					return err
				}
				codes = scanned
			}
			if len(codes) == 0 {
				return fmt.Errorf("no codes provided")
			}
			return ctx.withWorkspace(cmd, func(c context.Context, ws *workspace.Workspace) error {
				return addCodes(cmd, c, ws, codes)
			})
		},
	}
}

func addCodes(cmd *cobra.Command, ctx context.Context, ws *workspace.Workspace, codes []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, code := range codes {
		book, err := ws.AddByCode(ctx, code)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", strings.TrimSpace(code), err)
			continue
		}
		fmt.Fprintf(out, "Added %s  %s\n", book.EAN, book.Title)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d codes not added", failed, len(codes))
	}
	return nil
}

func readCodes(cmd *cobra.Command) ([]string, error) {
	var codes []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read codes: %w", err)
	}
	return codes, nil
}
