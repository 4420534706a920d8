package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"

	"github.com/ionecenter/marketplace/internal/core/port"
)

var _ port.ActivityReader = (*ActivityView)(nil)

// ActivityView serves the per-user activity counts materialized by
// [ActivityProcessor].
type ActivityView struct {
	gv *goka.View
}

func NewActivityView(seedBrokers []string, group string) (ActivityView, error) {
	const op = "NewActivityView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		activityCountCodec{},
	)
	if err != nil {
		return ActivityView{}, opErr(err, op)
	}

	return ActivityView{gv}, nil
}

func (v ActivityView) Run(ctx context.Context) {
	const op = "ActivityView.Run"
	log := slog.With("op", op)

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// UserActivity returns the event count for a user; a user with no
// recorded events reads as zero.
func (v ActivityView) UserActivity(userID string) (int64, error) {
	const op = "ActivityView.UserActivity"

	val, err := v.gv.Get(userID)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}
	cnt, ok := val.(ActivityCount)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(cnt), nil
}
