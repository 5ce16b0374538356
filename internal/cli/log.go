package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/bifrost-labs/bifrost/internal/hashtable"
	"github.com/bifrost-labs/bifrost/internal/join"
	"github.com/bifrost-labs/bifrost/internal/observability"
	"github.com/bifrost-labs/bifrost/internal/profile"
	"github.com/bifrost-labs/bifrost/internal/relation"
)

// logJoin emits one structured log entry for an executed (or failed)
// join. Logging failures are not fatal to the command.
func (c *CLI) logJoin(
	left, right *relation.Table,
	leftColumn, rightColumn string,
	joinType join.Type,
	strategy hashtable.CollisionStrategy,
	data profile.Data,
	joinErr error,
) {
	entry := observability.JoinLogEntry{
		JoinID:      fmt.Sprintf("join-%d", time.Now().UnixNano()),
		LeftTable:   left.Name(),
		RightTable:  right.Name(),
		LeftColumn:  leftColumn,
		RightColumn: rightColumn,
		JoinType:    joinType.String(),
		Strategy:    strategy.String(),
		LeftRows:    left.RowCount(),
		RightRows:   right.RowCount(),
		ResultRows:  data.ResultRows,
		BuildTime:   data.BuildTime,
		ProbeTime:   data.ProbeTime,
		TotalTime:   data.TotalTime,
		Selectivity: data.Selectivity,
		Outcome:     "success",
	}
	if joinErr != nil {
		entry.Outcome = "error"
		entry.Error = joinErr.Error()
	}
	c.logger.LogJoin(context.Background(), entry)
}
