package model

import (
	"math"
	"testing"
)

func TestCalculateQueueDefault(t *testing.T) {
	m := CalculateQueue(DefaultQueueInput())
	if !m.Stable() {
		t.Fatal("30 arrivals against 35 services per hour is stable")
	}
	if !approx(m.Utilization, 30.0/35, 1e-12) {
		t.Errorf("expected ρ=%.4f, got %.4f", 30.0/35, m.Utilization)
	}
	if !approx(m.InSystem, 6, 1e-9) {
		t.Errorf("expected L=6, got %.4f", m.InSystem)
	}
	if !approx(m.InQueue, 36.0/7, 1e-9) {
		t.Errorf("expected Lq=%.4f, got %.4f", 36.0/7, m.InQueue)
	}
	if !approx(m.TimeInSystemMinutes(), 12, 1e-9) {
		t.Errorf("expected W=12 min, got %.4f", m.TimeInSystemMinutes())
	}
	if !approx(m.TimeInQueueMinutes(), 72.0/7, 1e-9) {
		t.Errorf("expected Wq=%.4f min, got %.4f", 72.0/7, m.TimeInQueueMinutes())
	}
	if m.Load != LoadCritical {
		t.Errorf("ρ≈0.857 should be critical, got %s", m.Load)
	}
	// Little's law: L = λW.
	if !approx(m.InSystem, 30*m.TimeInSystem, 1e-9) {
		t.Error("L must equal λW")
	}
	if len(m.Probabilities) != 15 || !approx(m.Probabilities[0], 1-m.Utilization, 1e-12) {
		t.Errorf("unexpected state probabilities %v", m.Probabilities)
	}
}

func TestCalculateQueueLoadLevels(t *testing.T) {
	tests := []struct {
		lambda, mu float64
		want       LoadLevel
	}{
		{10, 20, LoadHealthy},
		{7, 10, LoadHealthy},
		{8, 10, LoadWatch},
		{9, 10, LoadCritical},
	}
	for _, tt := range tests {
		m := CalculateQueue(QueueInput{ArrivalRate: tt.lambda, ServiceRate: tt.mu})
		if m.Load != tt.want {
			t.Errorf("λ=%g μ=%g: expected %s, got %s", tt.lambda, tt.mu, tt.want, m.Load)
		}
	}
}

func TestCalculateQueueUnstable(t *testing.T) {
	for _, in := range []QueueInput{{ArrivalRate: 35, ServiceRate: 35}, {ArrivalRate: 40, ServiceRate: 35}, {}} {
		m := CalculateQueue(in)
		if m.Stable() {
			t.Errorf("%+v should be unstable", in)
		}
		if m.InSystem != 0 || m.TimeInSystem != 0 || m.Probabilities != nil {
			t.Errorf("unstable queue should carry no metrics, got %+v", m)
		}
	}
}

func TestCalculateQueueIdle(t *testing.T) {
	m := CalculateQueue(QueueInput{ArrivalRate: 0, ServiceRate: 12})
	if !m.Stable() || m.InSystem != 0 {
		t.Errorf("idle server should be stable and empty, got %+v", m)
	}
	if !approx(m.TimeInSystemMinutes(), 5, 1e-9) {
		t.Errorf("an idle server still takes 1/μ, got %.4f min", m.TimeInSystemMinutes())
	}
	if math.IsNaN(m.TimeInQueue) {
		t.Error("Wq must be defined for λ=0")
	}
}
