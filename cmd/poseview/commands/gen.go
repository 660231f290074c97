package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/poseview/internal/synth"
)

// genCurveOffset centres the printed curve near x = 0.
const genCurveOffset = 30

type genOptions struct {
	count   int
	offset  int
	group   string
	process string
	label   string
}

func newGenCmd() *cobra.Command {
	o := genOptions{}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Print synthetic pose records as a JSON array",
		Long: `Print --count records of the synthetic trajectory after skipping --offset
records. The output is a JSON array of records in the wire format the
viewer reads, with the pose under "data" as dotted keys.

Examples:
  poseview gen --count 3
  poseview gen --offset 100 --label "other pose" | jq '.[0].data'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.count < 0 || o.offset < 0 {
				return fmt.Errorf("count and offset must not be negative")
			}
			gen := synth.New(o.group, o.process, o.label, genCurveOffset)
			gen.Skip(o.offset)
			out, err := json.Marshal(gen.Take(o.count))
			if err != nil {
				return fmt.Errorf("encode records: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().IntVar(&o.count, "count", 10, "number of records to print")
	cmd.Flags().IntVar(&o.offset, "offset", 0, "number of records to skip first")
	cmd.Flags().StringVar(&o.group, "group", synth.DefaultGroup, "group field")
	cmd.Flags().StringVar(&o.process, "process", synth.DefaultProcess, "process field")
	cmd.Flags().StringVar(&o.label, "label", synth.DefaultLabel, "label field")
	return cmd
}
