package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/five82/poseview/internal/stream"
	"github.com/five82/poseview/internal/synth"
)

type feedOptions struct {
	addr     string
	stream   string
	count    int
	interval time.Duration
	clear    bool
	group    string
	label    string
	offset   int64
}

func newFeedCmd() *cobra.Command {
	o := feedOptions{}
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Append synthetic pose records to a redis stream",
		Long: `Append synthetic records to a redis stream with XADD, one entry per
record with the pose stored as flat dotted fields.

--count 0 keeps feeding until interrupted. --clear deletes the stream
first so a viewer reading from id 0 starts from an empty history.

Examples:
  poseview feed --count 100 --interval 0
  poseview feed --count 0 --label "robot arm" --no-clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := runFeed(cmd.Context(), o)
			if n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "added %d entries to %s\n", n, o.stream)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&o.addr, "redis-addr", "127.0.0.1:6379", "redis host:port")
	cmd.Flags().StringVar(&o.stream, "stream", "my_stream", "stream key")
	cmd.Flags().IntVar(&o.count, "count", 10, "records to add (0 = until interrupted)")
	cmd.Flags().DurationVar(&o.interval, "interval", 300*time.Millisecond, "time between records")
	cmd.Flags().BoolVar(&o.clear, "clear", true, "delete the stream before feeding")
	cmd.Flags().StringVar(&o.group, "group", synth.DefaultGroup, "group field")
	cmd.Flags().StringVar(&o.label, "label", synth.DefaultLabel, "label field")
	cmd.Flags().Int64Var(&o.offset, "offset", 30, "sequence id placed at x = 0")
	return cmd
}

// runFeed publishes records and returns how many were added.
func runFeed(ctx context.Context, o feedOptions) (int, error) {
	rs, err := stream.NewRedisStream(&redis.Options{Addr: o.addr}, o.stream)
	if err != nil {
		return 0, err
	}
	defer rs.Close()

	if err := rs.Ping(ctx); err != nil {
		return 0, err
	}
	if o.clear {
		if err := rs.Clear(ctx); err != nil {
			return 0, err
		}
	}

	gen := synth.New(o.group, synth.DefaultProcess, o.label, o.offset)
	added := 0
	for o.count == 0 || added < o.count {
		if _, err := rs.Publish(ctx, gen.Next()); err != nil {
			return added, err
		}
		added++
		if o.interval <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return added, nil
		case <-time.After(o.interval):
		}
	}
	return added, nil
}
