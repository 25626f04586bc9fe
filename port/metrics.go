package port

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mdzio/go-uaport/proto"
)

const instrumentationName = "github.com/mdzio/go-uaport/port"

type metrics struct {
	calls       metric.Int64Counter
	events      metric.Int64Counter
	lateReplies metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
}

func newMetrics(mp metric.MeterProvider) *metrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)
	m := &metrics{}
	var err error
	m.calls, err = meter.Int64Counter("uaport.calls",
		metric.WithUnit("{call}"),
		metric.WithDescription("Number of calls sent to the worker"),
	)
	logInstrumentErr(err)
	m.events, err = meter.Int64Counter("uaport.events",
		metric.WithUnit("{event}"),
		metric.WithDescription("Number of events received from the worker"),
	)
	logInstrumentErr(err)
	m.lateReplies, err = meter.Int64Counter("uaport.late_replies",
		metric.WithUnit("{reply}"),
		metric.WithDescription("Number of replies received after the caller gave up"),
	)
	logInstrumentErr(err)
	m.failures, err = meter.Int64Counter("uaport.failures",
		metric.WithUnit("{failure}"),
		metric.WithDescription("Number of channel failures"),
	)
	logInstrumentErr(err)
	m.duration, err = meter.Float64Histogram("uaport.call.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of calls"),
	)
	logInstrumentErr(err)
	return m
}

func logInstrumentErr(err error) {
	if err != nil {
		log.Warningf("Creation of metric instrument failed: %v", err)
	}
}

func cmdAttr(cmd proto.Command) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("command", cmd.String()))
}

func (m *metrics) call(cmd proto.Command) {
	m.calls.Add(context.Background(), 1, cmdAttr(cmd))
}

func (m *metrics) completed(cmd proto.Command, start time.Time) {
	m.duration.Record(context.Background(), time.Since(start).Seconds(), cmdAttr(cmd))
}

func (m *metrics) event(kind proto.EventKind) {
	m.events.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind.String())))
}

func (m *metrics) lateReply() {
	m.lateReplies.Add(context.Background(), 1)
}

func (m *metrics) failure() {
	m.failures.Add(context.Background(), 1)
}
