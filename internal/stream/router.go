package stream

import (
	"log/slog"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/pkg/metrics"
)

// matches reports whether a subscription filter accepts an event:
// the type list contains "all" or the event's type, and the cluster filter
// is empty or equals the event's cluster id exactly.
func matches(sub Subscription, ev *models.StreamEvent) bool {
	typeOK := false
	for _, t := range sub.Types {
		if t == models.EventTypeAll || t == ev.Type {
			typeOK = true
			break
		}
	}
	if !typeOK {
		return false
	}
	return sub.ClusterID == "" || sub.ClusterID == ev.ClusterID
}

// dispatch notifies every matching subscription in insertion order. A panic
// in one callback is recovered and logged; delivery to the remaining
// subscriptions continues. Callers must hold the client's dispatch mutex so
// two events are never processed concurrently.
func dispatch(reg *registry, ev *models.StreamEvent, log *slog.Logger) {
	for _, e := range reg.snapshot() {
		if !matches(e.sub, ev) {
			continue
		}
		invoke(e.id, e.sub.Callback, ev, log)
	}
}

func invoke(id string, cb func(*models.StreamEvent), ev *models.StreamEvent, log *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			metrics.CallbackPanicsTotal.Inc()
			log.Error("subscription callback panicked",
				"subscription_id", id, "event_id", ev.ID, "panic", r)
		}
	}()
	metrics.EventsDispatchedTotal.Inc()
	cb(ev)
}
