package notify

import (
	"context"

	"courier-track/internal/logx"

	"github.com/prometheus/client_golang/prometheus"
)

const notificationTitle = "Courier Status Update"

// LocalNotifier renders and delivers status notifications through a Sink,
// suppressing repeats for a status the owner has already been notified of.
type LocalNotifier struct {
	seen   SeenStore
	sink   Sink
	logger logx.Logger
	sent   prometheus.Counter
}

// NewLocalNotifier creates a LocalNotifier. The counter may be nil.
func NewLocalNotifier(seen SeenStore, sink Sink, logger logx.Logger, sent prometheus.Counter) *LocalNotifier {
	if logger == nil {
		logger = logx.Nop()
	}
	return &LocalNotifier{seen: seen, sink: sink, logger: logger, sent: sent}
}

// StatusChanged delivers at most one notification per distinct status. A
// cache read failure degrades to notifying anyway rather than dropping.
func (n *LocalNotifier) StatusChanged(ctx context.Context, ev StatusEvent) error {
	last, err := n.seen.LastStatus(ctx, ev.CourierID)
	if err != nil {
		n.logger.Warn("last status lookup failed",
			logx.Int64("courier_id", ev.CourierID),
			logx.Any("err", err),
		)
	}
	if last == string(ev.Status) {
		n.logger.Debug("status already notified",
			logx.Int64("courier_id", ev.CourierID),
			logx.String("status", string(ev.Status)),
		)
		return nil
	}

	if err := n.sink.Send(ctx, ev.Owner, notificationTitle, ev.Message()); err != nil {
		return err
	}
	if n.sent != nil {
		n.sent.Inc()
	}

	if err := n.seen.SetLastStatus(ctx, ev.CourierID, string(ev.Status)); err != nil {
		n.logger.Warn("last status save failed",
			logx.Int64("courier_id", ev.CourierID),
			logx.Any("err", err),
		)
	}
	return nil
}

// LogSink writes notifications to the log. It stands in for a platform
// notification channel: this service's responsibility ends at handing the
// rendered message off.
type LogSink struct {
	logger logx.Logger
}

// NewLogSink creates a Sink that logs deliveries.
func NewLogSink(logger logx.Logger) *LogSink {
	if logger == nil {
		logger = logx.Nop()
	}
	return &LogSink{logger: logger}
}

// Send logs the notification.
func (s *LogSink) Send(_ context.Context, owner, title, body string) error {
	s.logger.Info("notification delivered",
		logx.String("event", "notification_delivered"),
		logx.String("owner", owner),
		logx.String("title", title),
		logx.String("body", body),
	)
	return nil
}

// NopNotifier drops all events.
type NopNotifier struct{}

// StatusChanged does nothing.
func (NopNotifier) StatusChanged(context.Context, StatusEvent) error { return nil }
