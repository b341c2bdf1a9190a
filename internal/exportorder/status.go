package exportorder

import "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"

// transitions is the single source of truth for the export order lifecycle.
// Every mutating use case consults it through CanTransition; the rules are
// not repeated anywhere else.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusNew:       {model.OrderStatusPending, model.OrderStatusRejected},
	model.OrderStatusPending:   {model.OrderStatusApproved, model.OrderStatusRejected},
	model.OrderStatusApproved:  {model.OrderStatusShipping, model.OrderStatusRejected},
	model.OrderStatusShipping:  {model.OrderStatusCompleted},
	model.OrderStatusRejected:  {model.OrderStatusCancelled},
	model.OrderStatusCompleted: {},
	model.OrderStatusCancelled: {},
}

// IsValidStatus reports whether s is a known lifecycle status.
func IsValidStatus(s model.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the lifecycle permits moving from one status
// to the other.
func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the status.
func IsTerminal(s model.OrderStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}
