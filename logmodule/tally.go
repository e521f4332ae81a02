package logmodule

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

// TallyReporter is a tally.StatsReporter that writes metrics to logrus at
// debug level.
type TallyReporter struct {
	entry *log.Entry
}

// NewTallyReporter returns a reporter logging with prefix "metric".
func NewTallyReporter() *TallyReporter {
	return &TallyReporter{entry: log.WithField("prefix", "metric")}
}

func (r *TallyReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.entry.WithFields(fields(tags)).Debugf("counter %s: %d", name, value)
}

func (r *TallyReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.entry.WithFields(fields(tags)).Debugf("gauge %s: %f", name, value)
}

func (r *TallyReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.entry.WithFields(fields(tags)).Debugf("timer %s: %s", name, interval)
}

func (r *TallyReporter) ReportHistogramValueSamples(name string, tags map[string]string,
	buckets tally.Buckets, bucketLowerBound, bucketUpperBound float64, samples int64) {
	r.entry.WithFields(fields(tags)).Debugf("histogram %s [%f, %f): %d", name, bucketLowerBound, bucketUpperBound, samples)
}

func (r *TallyReporter) ReportHistogramDurationSamples(name string, tags map[string]string,
	buckets tally.Buckets, bucketLowerBound, bucketUpperBound time.Duration, samples int64) {
	r.entry.WithFields(fields(tags)).Debugf("histogram %s [%s, %s): %d", name, bucketLowerBound, bucketUpperBound, samples)
}

func (r *TallyReporter) Capabilities() tally.Capabilities {
	return r
}

func (r *TallyReporter) Reporting() bool { return true }

func (r *TallyReporter) Tagging() bool { return true }

func (r *TallyReporter) Flush() {}

func fields(tags map[string]string) log.Fields {
	f := log.Fields{}
	for k, v := range tags {
		f[k] = v
	}
	return f
}
