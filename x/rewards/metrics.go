package rewards

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/orm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payday",
		Subsystem: "rewards",
		Name:      "cycles_started_total",
		Help:      "Number of started distribution cycles.",
	})
	cyclesEnded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payday",
		Subsystem: "rewards",
		Name:      "cycles_ended_total",
		Help:      "Number of closed distribution cycles.",
	})
	holdersCounted = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "payday",
		Subsystem: "rewards",
		Name:      "holders_counted",
		Help:      "Number of holders counted as eligible in the current cycle.",
	})
	payouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payday",
		Subsystem: "rewards",
		Name:      "payouts_total",
		Help:      "Number of processed payouts by result.",
	}, []string{"result"})
	rewardsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payday",
		Subsystem: "rewards",
		Name:      "paid_units_total",
		Help:      "Sum of all transferred rewards, in base units.",
	})
	totalEligible = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "payday",
		Subsystem: "rewards",
		Name:      "total_eligible",
		Help:      "Total eligible balance of the current cycle.",
	})
	rewardPool = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "payday",
		Subsystem: "rewards",
		Name:      "pool",
		Help:      "Reward pool of the current cycle, set once the cycle is sealed.",
	})
)

// RecordMetrics updates the metrics from the result of a committed
// transaction. It must be called only after the changes of tx were
// committed, so that the metrics never count a rolled back operation.
func RecordMetrics(tx payday.Tx, res *payday.DeliverResult) {
	msg, err := tx.GetMsg()
	if err != nil || res == nil {
		return
	}
	switch msg.(type) {
	case *PayoutMsg:
		var h Holding
		if err := orm.Unmarshal(res.Data, &h); err != nil {
			return
		}
		if h.Reward == 0 {
			payouts.WithLabelValues("zero").Inc()
			return
		}
		payouts.WithLabelValues("paid").Inc()
		rewardsPaid.Add(float64(h.Reward))
	case *StartCycleMsg, *AccumulateMsg, *FinalizeMsg, *EndCycleMsg:
		var dist Distribution
		if err := orm.Unmarshal(res.Data, &dist); err != nil {
			return
		}
		switch msg.(type) {
		case *StartCycleMsg:
			cyclesStarted.Inc()
		case *EndCycleMsg:
			cyclesEnded.Inc()
		}
		totalEligible.Set(float64(dist.TotalEligible))
		rewardPool.Set(float64(dist.Pool))
		holdersCounted.Set(float64(dist.CountedHolders))
	}
}
