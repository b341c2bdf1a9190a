package exportorder

import (
	"testing"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to model.OrderStatus
	}{
		{model.OrderStatusNew, model.OrderStatusPending},
		{model.OrderStatusNew, model.OrderStatusRejected},
		{model.OrderStatusPending, model.OrderStatusApproved},
		{model.OrderStatusPending, model.OrderStatusRejected},
		{model.OrderStatusApproved, model.OrderStatusShipping},
		{model.OrderStatusApproved, model.OrderStatusRejected},
		{model.OrderStatusShipping, model.OrderStatusCompleted},
		{model.OrderStatusRejected, model.OrderStatusCancelled},
	}

	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tr.from, tr.to)
		}
	}

	denied := []struct {
		from, to model.OrderStatus
	}{
		{model.OrderStatusNew, model.OrderStatusApproved},
		{model.OrderStatusNew, model.OrderStatusCompleted},
		{model.OrderStatusNew, model.OrderStatusNew},
		{model.OrderStatusPending, model.OrderStatusNew},
		{model.OrderStatusPending, model.OrderStatusShipping},
		{model.OrderStatusApproved, model.OrderStatusCompleted},
		{model.OrderStatusShipping, model.OrderStatusRejected},
		{model.OrderStatusShipping, model.OrderStatusNew},
		{model.OrderStatusCompleted, model.OrderStatusNew},
		{model.OrderStatusCompleted, model.OrderStatusCancelled},
		{model.OrderStatusCancelled, model.OrderStatusNew},
		{model.OrderStatusRejected, model.OrderStatusNew},
		{model.OrderStatusRejected, model.OrderStatusPending},
	}

	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tr.from, tr.to)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	valid := []model.OrderStatus{
		model.OrderStatusNew,
		model.OrderStatusPending,
		model.OrderStatusApproved,
		model.OrderStatusShipping,
		model.OrderStatusCompleted,
		model.OrderStatusRejected,
		model.OrderStatusCancelled,
	}
	for _, s := range valid {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%s) = false, want true", s)
		}
	}

	if IsValidStatus("Draft") {
		t.Error("IsValidStatus(Draft) = true, want false")
	}
	if IsValidStatus("") {
		t.Error("IsValidStatus(empty) = true, want false")
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []model.OrderStatus{model.OrderStatusCompleted, model.OrderStatusCancelled}
	for _, s := range terminal {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}

	open := []model.OrderStatus{
		model.OrderStatusNew,
		model.OrderStatusPending,
		model.OrderStatusApproved,
		model.OrderStatusShipping,
		model.OrderStatusRejected,
	}
	for _, s := range open {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}

	if IsTerminal("Draft") {
		t.Error("IsTerminal(Draft) = true, want false for unknown status")
	}
}
