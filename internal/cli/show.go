package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
)

func (c *CLI) showCommand() *cobra.Command {
	var (
		id     string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a material record in report layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var rec *material.Record
			switch {
			case len(args) == 1 && id != "":
				return errors.New(errors.ErrCodeInvalidInput, "give either a record file or --id")
			case len(args) == 1:
				if err := errors.ValidateRecordFilename(args[0]); err != nil {
					return err
				}
				r, err := material.Load(args[0])
				if err != nil {
					return err
				}
				rec = r
			case id != "":
				cfg, err := c.config()
				if err != nil {
					return err
				}
				st, err := c.newStore(ctx, cfg)
				if err != nil {
					return err
				}
				defer st.Close(ctx)
				r, err := st.Get(ctx, id)
				if err != nil {
					return err
				}
				rec = r
			default:
				return errors.New(errors.ErrCodeInvalidInput, "give either a record file or --id")
			}

			if asJSON {
				return material.WriteJSON(os.Stdout, rec)
			}
			fmt.Print(formatRecord(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "material id to look up in the configured store")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")

	return cmd
}
