package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/railreport/pkg/material"
	"github.com/matzehuels/railreport/pkg/report"
	"github.com/matzehuels/railreport/pkg/store"
)

func (c *CLI) listCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List material records in the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			st, err := c.newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			recs, err := st.List(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if recs == nil {
					recs = []material.Record{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(recs)
			}
			fmt.Fprint(out, formatListing(recs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "maximum number of records")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the records as JSON")

	return cmd
}

// Listing columns, in terminal columns.
const (
	listIDWidth     = 16
	listTypeWidth   = 26
	listDepotWidth  = 10
	listStatusWidth = 14
)

// formatListing prints one line per record: id, fitting type, depot and
// installation status, with placeholders for absent values.
func formatListing(recs []material.Record) string {
	if len(recs) == 0 {
		return StyleDim.Render("No records found") + "\n"
	}
	var b strings.Builder
	header := cell("Material ID", listIDWidth) + cell("Fitting Type", listTypeWidth) +
		cell("Depot", listDepotWidth) + cell("Status", listStatusWidth)
	b.WriteString(StyleTitle.Render(strings.TrimRight(header, " ")) + "\n")
	for _, rec := range recs {
		line := cell(report.DisplayValue(rec.MaterialID, ""), listIDWidth) +
			cell(report.DisplayValue(rec.FittingType, ""), listTypeWidth) +
			cell(report.DisplayValue(rec.DepotCode, ""), listDepotWidth) +
			cell(report.DisplayValue(string(rec.InstallationStatus), material.PlaceholderNotSet), listStatusWidth)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d record(s)", len(recs))) + "\n")
	return b.String()
}

// cell pads or truncates s to width columns plus a separating space.
func cell(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		r = append(r[:width-1], '…')
	}
	return string(r) + strings.Repeat(" ", width-len(r)) + " "
}
