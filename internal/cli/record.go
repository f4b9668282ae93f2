package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/leveltrack/internal/client"
	"github.com/lazypower/leveltrack/internal/tracker"
)

var (
	recordLevel    string
	recordDay      string
	recordGoal     string
	recordNoServer bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record today's level",
	Long: `Record today's level and day-at-level, replacing anything already recorded today.
Records older than seven days are pruned afterwards, unless the newest record is itself older than that.

If "leveltrack serve" is running on the same database, the write goes through it.`,
	Example: "  leveltrack record --level 3 --day 12 --goal 5",
	Args:    cobra.NoArgs,
	RunE:    runRecord,
}

func init() {
	recordCmd.Flags().StringVarP(&recordLevel, "level", "l", "", "Current level (required)")
	recordCmd.Flags().StringVarP(&recordDay, "day", "d", "", "Days at this level (required)")
	recordCmd.Flags().StringVarP(&recordGoal, "goal", "g", "", "Goal level (optional)")
	recordCmd.Flags().BoolVar(&recordNoServer, "no-server", false, "Write to the database directly even if a server is running")
}

func runRecord(cmd *cobra.Command, args []string) error {
	in, err := tracker.ParseInput(recordLevel, recordDay, recordGoal)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if !recordNoServer {
		if c, ok := serverFor(ctx); ok {
			logger.Debug("recording through server", "url", cfg.BaseURL())
			rec, err := c.Record(ctx, in)
			if err != nil {
				return fmt.Errorf("record: %w", err)
			}
			renderRecorded(cmd.OutOrStdout(), rec.Record, rec.Prune)
			return nil
		}
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rec, err := newService(db).RecordToday(ctx, in)
	if err != nil {
		return err
	}
	renderRecorded(cmd.OutOrStdout(), rec.Record, rec.Prune)
	return nil
}

// serverFor returns a client for the running server, but only when it is
// healthy and serving the database this command would open.
func serverFor(ctx context.Context) (*client.Client, bool) {
	c := client.New(cfg.BaseURL())
	h, err := c.Health(ctx)
	if err != nil || !h.DB {
		return nil, false
	}

	path, err := resolveDBPath()
	if err != nil {
		return nil, false
	}
	if filepath.Clean(h.DBPath) != path {
		logger.Warn("server is using a different database, writing directly",
			"server_db", h.DBPath, "db", path)
		return nil, false
	}
	return c, true
}
