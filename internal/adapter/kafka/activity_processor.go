package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/lovoo/goka"

	"github.com/ionecenter/marketplace/pkg/schema"
)

// A clientEventCodec used for serde [schema.ClientEventV1].
type clientEventCodec struct {
	serde Serde
}

func newClientEventCodec(s Serde) clientEventCodec {
	return clientEventCodec{s}
}

func (c clientEventCodec) Encode(v any) ([]byte, error) {
	const op = "clientEventCodec.Encode"
	if _, ok := v.(schema.ClientEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c clientEventCodec) Decode(data []byte) (any, error) {
	const op = "clientEventCodec.Decode"
	var s schema.ClientEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// ActivityCount is the group table value: how many client events a user
// has produced.
type ActivityCount int64

type activityCountCodec struct{}

func (activityCountCodec) Encode(v any) ([]byte, error) {
	const op = "activityCountCodec.Encode"
	cv, ok := v.(ActivityCount)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt(nil, int64(cv), 10), nil
}

func (activityCountCodec) Decode(data []byte) (any, error) {
	const op = "activityCountCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return ActivityCount(n), nil
}

// ActivityProcessor folds the client events stream into a per-user
// activity count group table.
type ActivityProcessor struct {
	gp *goka.Processor
}

func NewActivityProcessor(
	seedBrokers []string, stream, group string, eventSerde Serde,
) (ActivityProcessor, error) {
	const op = "NewActivityProcessor"

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), newClientEventCodec(eventSerde), processActivity),
		goka.Persist(activityCountCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return ActivityProcessor{}, opErr(err, op)
	}

	return ActivityProcessor{gp}, nil
}

func processActivity(ctx goka.Context, msg any) {
	var cnt ActivityCount
	if v := ctx.Value(); v != nil {
		cnt = v.(ActivityCount)
	}
	ctx.SetValue(cnt + 1)
}

func (p ActivityProcessor) Run(ctx context.Context) {
	const op = "ActivityProcessor.Run"
	log := slog.With("op", op)

	if err := p.gp.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p ActivityProcessor) Close() {
	const op = "ActivityProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing activity processor...")
	p.gp.Stop()
	log.Info("activity processor is closed")
}
