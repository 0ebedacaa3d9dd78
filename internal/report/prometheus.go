package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/doselog/internal/compliance"
)

const metricNamespace = "doselog"

// NewRegistry exposes r as gauges labelled by medication. The overall
// figures carry an empty medication label.
func NewRegistry(r compliance.Report) (*prometheus.Registry, error) {
	labels := []string{"medication"}
	percentage := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Name:      "compliance_percentage",
		Help:      "Share of scheduled doses taken over the report period.",
	}, labels)
	expected := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Name:      "doses_expected",
		Help:      "Scheduled doses over the report period.",
	}, labels)
	taken := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Name:      "doses_taken",
		Help:      "Scheduled doses that were taken.",
	}, labels)
	missed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Name:      "doses_missed",
		Help:      "Scheduled doses that were not taken.",
	}, labels)

	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{percentage, expected, taken, missed} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	percentage.WithLabelValues("").Set(r.CompliancePercentage)
	expected.WithLabelValues("").Set(float64(r.TotalScheduled))
	taken.WithLabelValues("").Set(float64(r.TakenDoses))
	missed.WithLabelValues("").Set(float64(r.MissedDoses))

	for _, m := range r.Medications {
		percentage.WithLabelValues(m.Name).Set(m.CompliancePercentage)
		expected.WithLabelValues(m.Name).Set(float64(m.Expected))
		taken.WithLabelValues(m.Name).Set(float64(m.Taken))
		missed.WithLabelValues(m.Name).Set(float64(m.Missed))
	}
	return reg, nil
}

// WriteTextfile writes r in the text exposition format for node-exporter's
// textfile collector. The file is replaced atomically.
func WriteTextfile(path string, r compliance.Report) error {
	reg, err := NewRegistry(r)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
