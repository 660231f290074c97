package commands

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/five82/poseview/internal/stream"
)

type dumpOptions struct {
	host   string
	port   int
	count  int
	index  int
	output string
}

func newDumpCmd() *cobra.Command {
	o := dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump STREAM",
		Short: "Print redis stream entries as JSON",
		Long: `Print --count entries of a redis stream, starting at entry --index, as an
indented JSON array of field maps.

Examples:
  poseview dump my_stream
  poseview dump my_stream -i 20 -c 5 -o window.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := net.JoinHostPort(o.host, strconv.Itoa(o.port))
			rs, err := stream.NewRedisStream(&redis.Options{Addr: addr}, args[0])
			if err != nil {
				return err
			}
			defer rs.Close()

			entries, err := rs.Dump(cmd.Context(), o.index, o.count)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("encode entries: %w", err)
			}

			if o.output == "" || o.output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}
			if err := os.WriteFile(o.output, append(out, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", o.output, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&o.host, "host", "localhost", "redis host")
	cmd.Flags().IntVarP(&o.port, "port", "p", 6379, "redis port")
	cmd.Flags().IntVarP(&o.count, "count", "c", 10, "entries to print")
	cmd.Flags().IntVarP(&o.index, "index", "i", 0, "entries to skip first")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
