package service

import (
	"context"
	"errors"
	"log"

	"lenspos/m/domain"
)

// Reconciliation outcome states.
const (
	ReconcileDelivered = "delivered"
	ReconcileSkipped   = "skipped"
	ReconcileNotFound  = "not_found"
	ReconcileFailed    = "failed"
)

// ReconcileOutcome reports what happened for one order reference. Failures
// are carried here instead of propagating; the invoice save never depends on
// reconciliation succeeding.
type ReconcileOutcome struct {
	OrderRef       string `json:"order_ref"`
	OrderID        string `json:"order_id,omitempty"`
	Status         string `json:"status"`
	LensesConsumed int    `json:"lenses_consumed"`
	Error          string `json:"error,omitempty"`
}

// Reconcile matches a sold line back to its originating order: the order is
// marked DELIVERED and one unit is consumed from every inventory lens record
// linked to it, in a single store transaction per order. Orders that do not
// resolve, or that are not yet in a deductible status, are skipped without
// touching anything.
func (s *Service) Reconcile(ctx context.Context, orderRef string) ReconcileOutcome {
	out := ReconcileOutcome{OrderRef: orderRef, Status: ReconcileNotFound}

	order, err := s.ResolveOrder(ctx, orderRef)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return out
		}
		log.Printf("reconcile %s: resolve failed: %v", orderRef, err)
		out.Status = ReconcileFailed
		out.Error = err.Error()
		return out
	}
	out.OrderID = order.ID

	if !domain.DeductibleStatus(order.Status) {
		out.Status = ReconcileSkipped
		return out
	}

	lenses, err := s.matchLenses(ctx, order, orderRef)
	if err != nil {
		log.Printf("reconcile %s: lens lookup failed: %v", orderRef, err)
		out.Status = ReconcileFailed
		out.Error = err.Error()
		return out
	}
	lensIDs := make([]string, len(lenses))
	for i, lens := range lenses {
		lensIDs[i] = lens.ID
	}

	// Terminal transition and stock consumption commit together.
	consumed, err := s.repo.ReconcileOrder(ctx, order.ID, lensIDs)
	if err != nil {
		log.Printf("reconcile %s: %v", orderRef, err)
		out.Status = ReconcileFailed
		out.Error = err.Error()
		return out
	}
	out.Status = ReconcileDelivered
	out.LensesConsumed = consumed
	return out
}

// matchLenses finds inventory linked to an order. Records may be keyed by
// the order's storage key or by display id in either typed form, so each
// lookup falls back to the next.
func (s *Service) matchLenses(ctx context.Context, order domain.Order, ref string) ([]domain.InventoryLens, error) {
	lenses, err := s.repo.FindLensesByOrderID(ctx, order.ID)
	if err != nil || len(lenses) > 0 {
		return lenses, err
	}
	lenses, err = s.repo.FindLensesByDisplayID(ctx, ref)
	if err != nil || len(lenses) > 0 {
		return lenses, err
	}
	if padded := padDisplayID(ref); padded != ref {
		return s.repo.FindLensesByDisplayID(ctx, padded)
	}
	return lenses, nil
}
