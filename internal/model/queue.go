package model

import (
	"math"

	"go.uber.org/multierr"
)

// QueueStatus tells whether the M/M/1 metrics could be computed.
type QueueStatus string

const (
	QueueStable   QueueStatus = "stable"
	QueueUnstable QueueStatus = "unstable" // Service rate does not exceed arrival rate
)

// LoadLevel classifies server utilization.
type LoadLevel string

const (
	LoadHealthy  LoadLevel = "healthy"  // ρ ≤ 0.7
	LoadWatch    LoadLevel = "watch"    // 0.7 < ρ ≤ 0.85
	LoadCritical LoadLevel = "critical" // ρ > 0.85
)

// queueProbabilityStates is how many P(n) values a queue report carries.
const queueProbabilityStates = 15

// QueueInput holds the M/M/1 rates, both per hour.
type QueueInput struct {
	ArrivalRate float64 `json:"arrival_rate" yaml:"arrival_rate"` // λ
	ServiceRate float64 `json:"service_rate" yaml:"service_rate"` // μ
}

// DefaultQueueInput returns the car wash case.
func DefaultQueueInput() QueueInput {
	return QueueInput{ArrivalRate: 30, ServiceRate: 35}
}

// Validate rejects negative or non-finite rates.
func (in QueueInput) Validate() error {
	var err error
	err = multierr.Append(err, nonNegative("arrival_rate", in.ArrivalRate))
	err = multierr.Append(err, nonNegative("service_rate", in.ServiceRate))
	return err
}

// QueueMetrics are the steady-state M/M/1 measures. When Status is
// QueueUnstable every metric is left at zero.
type QueueMetrics struct {
	Status        QueueStatus `json:"status" yaml:"status"`
	Utilization   float64     `json:"utilization" yaml:"utilization"`       // ρ
	InSystem      float64     `json:"in_system" yaml:"in_system"`           // L
	InQueue       float64     `json:"in_queue" yaml:"in_queue"`             // Lq
	TimeInSystem  float64     `json:"time_in_system" yaml:"time_in_system"` // W, hours
	TimeInQueue   float64     `json:"time_in_queue" yaml:"time_in_queue"`   // Wq, hours
	ServiceTime   float64     `json:"service_time" yaml:"service_time"`     // 1/μ, hours
	Load          LoadLevel   `json:"load,omitempty" yaml:"load,omitempty"`
	Probabilities []float64   `json:"probabilities,omitempty" yaml:"probabilities,omitempty"` // P(n) for n = 0..14
}

// Stable reports whether metrics were computed.
func (m QueueMetrics) Stable() bool {
	return m.Status == QueueStable
}

// TimeInSystemMinutes returns W in minutes.
func (m QueueMetrics) TimeInSystemMinutes() float64 {
	return m.TimeInSystem * 60
}

// TimeInQueueMinutes returns Wq in minutes.
func (m QueueMetrics) TimeInQueueMinutes() float64 {
	return m.TimeInQueue * 60
}

// CalculateQueue evaluates an M/M/1 queue. The system is reported unstable,
// with no metrics, unless μ > λ. W and Wq use the 1/(μ−λ) forms, which equal
// L/λ and Lq/λ and stay defined for an idle server.
func CalculateQueue(in QueueInput) QueueMetrics {
	lambda, mu := in.ArrivalRate, in.ServiceRate
	if mu <= lambda {
		return QueueMetrics{Status: QueueUnstable}
	}

	rho := lambda / mu
	l := rho / (1 - rho)
	lq := rho * rho / (1 - rho)
	m := QueueMetrics{
		Status:       QueueStable,
		Utilization:  rho,
		InSystem:     l,
		InQueue:      lq,
		TimeInSystem: 1 / (mu - lambda),
		TimeInQueue:  rho / (mu - lambda),
		ServiceTime:  1 / mu,
	}

	switch {
	case rho > 0.85:
		m.Load = LoadCritical
	case rho > 0.7:
		m.Load = LoadWatch
	default:
		m.Load = LoadHealthy
	}

	m.Probabilities = make([]float64, queueProbabilityStates)
	for n := range m.Probabilities {
		m.Probabilities[n] = (1 - rho) * math.Pow(rho, float64(n))
	}
	return m
}
