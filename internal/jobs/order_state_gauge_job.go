package jobs

import (
	"context"
	"log/slog"

	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultStateGaugeSchedule refreshes the gauge every fifteen seconds.
const DefaultStateGaugeSchedule = "*/15 * * * * *"

type orderCounter interface {
	Handle(ctx context.Context, query queries.CountOrdersByStateQuery) (map[order.State]int64, error)
}

type orderCountSink interface {
	SetOrderCount(state string, count int64)
}

// OrderStateGaugeJob periodically counts stored orders per state and writes
// the counts to the per-state gauge.
type OrderStateGaugeJob struct {
	counter  orderCounter
	sink     orderCountSink
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStateGaugeJob takes a six-field cron expression (with seconds).
// An empty schedule means DefaultStateGaugeSchedule.
func NewOrderStateGaugeJob(
	counter orderCounter,
	sink orderCountSink,
	schedule string,
	logger *slog.Logger,
) *OrderStateGaugeJob {
	if schedule == "" {
		schedule = DefaultStateGaugeSchedule
	}
	return &OrderStateGaugeJob{
		counter:  counter,
		sink:     sink,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_state_gauge_job"),
	}
}

func (j *OrderStateGaugeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order state gauge job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh. Failures are logged and the gauge keeps its
// previous values.
func (j *OrderStateGaugeJob) Run(ctx context.Context) {
	counts, err := j.counter.Handle(ctx, queries.NewCountOrdersByStateQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order state gauge job failed", "error", err)
		return
	}

	for _, state := range order.States() {
		j.sink.SetOrderCount(state.String(), counts[state])
	}
}

// Stop waits for a running refresh to finish.
func (j *OrderStateGaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order state gauge job stopped")
}
