package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"classcheck/internal/batch"
	"classcheck/internal/columns"
	"classcheck/internal/tabular"
)

type columnReport struct {
	File          string   `json:"file"`
	Table         string   `json:"table"`
	Headers       []string `json:"headers"`
	Rows          int      `json:"rows"`
	StudentNumber string   `json:"student_number,omitempty"`
	Name          string   `json:"name,omitempty"`
	Room          string   `json:"room,omitempty"`
	Error         string   `json:"error,omitempty"`
}

func newColumnsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "columns <file|dir>...",
		Short: "Show which columns classcheck resolves in each table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			keywords := batch.OptionsFromConfig(cfg).Keywords
			paths, err := batch.ExpandInputs(args)
			if err != nil {
				return err
			}

			var reports []columnReport
			for _, path := range paths {
				tables, err := tabular.Load(path)
				if err != nil {
					reports = append(reports, columnReport{File: path, Error: err.Error()})
					continue
				}
				for _, table := range tables {
					res := columns.Resolve(table.Headers, keywords)
					r := columnReport{File: path, Table: table.Name, Headers: table.Headers, Rows: len(table.Rows)}
					r.StudentNumber, _ = res.Header(columns.RoleStudentNumber)
					r.Name, _ = res.Header(columns.RoleName)
					r.Room, _ = res.Header(columns.RoleRoom)
					reports = append(reports, r)
				}
			}

			if jsonOutput {
				return writeJSON(cmd, reports)
			}
			headers := []string{"File", "Table", "Rows", "Student number", "Name", "Room"}
			rows := make([][]string, 0, len(reports))
			for _, r := range reports {
				if r.Error != "" {
					rows = append(rows, []string{filepath.Base(r.File), "error: " + r.Error})
					continue
				}
				rows = append(rows, []string{filepath.Base(r.File), r.Table, strconv.Itoa(r.Rows), orDash(r.StudentNumber), orDash(r.Name), orDash(r.Room)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight}, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
