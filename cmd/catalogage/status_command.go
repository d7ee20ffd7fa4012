package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"catalogage/internal/catalog"
	"catalogage/internal/preflight"
	"catalogage/internal/store"
)

type statusReport struct {
	ConfigPath   string               `json:"config_path"`
	ConfigExists bool                 `json:"config_exists"`
	Database     store.DatabaseHealth `json:"database"`
	Counts       map[string]int       `json:"counts"`
	Checks       []preflight.Result   `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show catalog health and readiness checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			c := cmd.Context()

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			health, err := st.CheckHealth(c)
			if err != nil {
				return err
			}
			stats, err := st.Stats(c)
			if err != nil {
				return err
			}
			report := statusReport{
				ConfigPath:   ctx.configPath,
				ConfigExists: ctx.configSeen,
				Database:     health,
				Counts:       make(map[string]int, len(stats)),
				Checks:       preflight.RunAll(c, cfg),
			}
			for _, status := range catalog.AllStatuses() {
				report.Counts[string(status)] = stats[status]
			}
			if jsonOut {
				return writeJSON(cmd, report)
			}
			for _, line := range statusLines(report, shouldColorize(cmd.OutOrStdout())) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func statusLines(report statusReport, colorize bool) []string {
	var lines []string

	lines = append(lines, renderSectionHeader("Configuration", colorize)...)
	configDetail := report.ConfigPath
	if !report.ConfigExists {
		configDetail += " (not found; defaults in use)"
	}
	lines = append(lines, renderStatusLine("Config", statusInfo, configDetail, colorize))
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Database", colorize)...)
	db := report.Database
	dbKind := statusOK
	dbDetail := fmt.Sprintf("%s (schema %s)", db.DBPath, db.SchemaVersion)
	if !db.Healthy() {
		dbKind = statusError
		switch {
		case db.Error != "":
			dbDetail = db.Error
		case len(db.MissingColumns) > 0:
			dbDetail = "missing columns: " + strings.Join(db.MissingColumns, ", ")
		case !db.IntegrityCheck:
			dbDetail = "integrity check failed"
		default:
			dbDetail = "database unavailable"
		}
	}
	lines = append(lines, renderStatusLine("Catalog", dbKind, dbDetail, colorize))
	lines = append(lines, renderStatusLine("Books", statusInfo, fmt.Sprintf("%d", db.TotalBooks), colorize))
	for _, status := range catalog.AllStatuses() {
		lines = append(lines, renderStatusLine(string(status), bookStatusKind(status), fmt.Sprintf("%d", report.Counts[string(status)]), colorize))
	}
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	for _, check := range report.Checks {
		kind := statusOK
		if !check.Passed {
			kind = statusError
		} else if check.Detail == "Disabled" {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(check.Name, kind, check.Detail, colorize))
	}
	return lines
}
