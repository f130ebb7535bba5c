// internal/domain/order/aggregator.go
package order

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/manobakers/bakery-backend/internal/domain/catalog"
)

// Aggregator owns one session's cart and fulfillment details. It resolves
// items against the catalog, computes totals, validates fulfillment input
// and captures the order snapshot at submit time.
//
// All operations are synchronous and atomic from the caller's
// perspective; the caller is responsible for not sharing one aggregator
// across goroutines (see Sessions).
type Aggregator struct {
	catalog     *catalog.Service
	store       SnapshotStore
	sessionID   string
	lines       []CartLine // insertion order preserved
	fulfillment Fulfillment

	now     func() time.Time
	randInt func(n int) int
}

// NewAggregator creates an aggregator for one session, hydrated from the
// persisted snapshot when one exists. A missing or undecodable snapshot
// means defaults, never an error.
func NewAggregator(cat *catalog.Service, store SnapshotStore, sessionID string) *Aggregator {
	a := &Aggregator{
		catalog:     cat,
		store:       store,
		sessionID:   sessionID,
		fulfillment: DefaultFulfillment(),
		now:         time.Now,
		randInt:     rand.Intn,
	}

	if store != nil {
		snap, err := store.Load(context.Background(), sessionID)
		if err == nil && snap != nil {
			a.hydrate(snap)
		}
	}

	return a
}

// hydrate restores cart and fulfillment from a snapshot, dropping lines
// that no longer resolve against the catalog
func (a *Aggregator) hydrate(snap *Snapshot) {
	for _, line := range snap.Lines {
		if line.Quantity < 1 {
			continue
		}
		item, err := a.catalog.FindItem(line.ItemID)
		if err != nil || !item.Available {
			continue
		}
		a.lines = append(a.lines, line)
	}

	if snap.Fulfillment.OrderType == OrderTypeDelivery || snap.Fulfillment.OrderType == OrderTypePickup {
		a.fulfillment = snap.Fulfillment
		if a.fulfillment.PickupTiming == "" {
			a.fulfillment.PickupTiming = PickupNow
		}
	}
}

// AddItem resolves the item against the catalog and adds one unit to the
// cart. Adding an item already in the cart increments its quantity rather
// than creating a second line.
func (a *Aggregator) AddItem(itemID int) error {
	item, err := a.catalog.FindItem(itemID)
	if err != nil {
		return fmt.Errorf("%w: item %d", ErrUnknownItem, itemID)
	}
	if !item.Available {
		return fmt.Errorf("%w: item %d is not available", ErrUnknownItem, itemID)
	}

	for i := range a.lines {
		if a.lines[i].ItemID == itemID {
			a.lines[i].Quantity++
			a.persist()
			return nil
		}
	}

	a.lines = append(a.lines, CartLine{ItemID: itemID, Quantity: 1})
	a.persist()
	return nil
}

// RemoveItem deletes the cart line for the item. Removing an absent item
// is a no-op, not an error.
func (a *Aggregator) RemoveItem(itemID int) {
	for i := range a.lines {
		if a.lines[i].ItemID == itemID {
			a.lines = append(a.lines[:i], a.lines[i+1:]...)
			a.persist()
			return
		}
	}
}

// SetQuantity sets the quantity of an existing cart line. A quantity of
// zero or less removes the line. Setting a quantity for an item with no
// line fails with ErrUnknownItem; AddItem is the only way lines are
// created.
func (a *Aggregator) SetQuantity(itemID, quantity int) error {
	if quantity <= 0 {
		a.RemoveItem(itemID)
		return nil
	}

	for i := range a.lines {
		if a.lines[i].ItemID == itemID {
			a.lines[i].Quantity = quantity
			a.persist()
			return nil
		}
	}

	return fmt.Errorf("%w: item %d is not in the cart", ErrUnknownItem, itemID)
}

// Lines returns a copy of the cart lines in insertion order
func (a *Aggregator) Lines() []CartLine {
	lines := make([]CartLine, len(a.lines))
	copy(lines, a.lines)
	return lines
}

// Fulfillment returns the current fulfillment details
func (a *Aggregator) Fulfillment() Fulfillment {
	return a.fulfillment
}

// SetFulfillment replaces the fulfillment details wholesale. No
// validation happens here; validation runs at submit.
func (a *Aggregator) SetFulfillment(f Fulfillment) {
	a.fulfillment = f
	a.persist()
}

// TotalItemCount returns the sum of all line quantities
func (a *Aggregator) TotalItemCount() int {
	total := 0
	for _, line := range a.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the cart total, resolving unit prices against the
// catalog at call time
func (a *Aggregator) TotalPrice() int64 {
	var total int64
	for _, line := range a.lines {
		item, err := a.catalog.FindItem(line.ItemID)
		if err != nil {
			continue
		}
		total += item.Price * int64(line.Quantity)
	}
	return total
}

// NormalizePhone strips every non-digit character from a phone number
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateForSubmit checks the cart and fulfillment details and returns
// every violated rule, not just the first. A nil result means the order
// can be submitted.
func (a *Aggregator) ValidateForSubmit() ValidationErrors {
	var errs ValidationErrors

	if len(a.lines) == 0 {
		errs = append(errs, ValidationError{
			Code:    CodeEmptyCart,
			Message: "Your cart is empty! Please add items before placing an order.",
		})
	}

	switch a.fulfillment.OrderType {
	case OrderTypeDelivery:
		if strings.TrimSpace(a.fulfillment.Address) == "" {
			errs = append(errs, ValidationError{
				Code:    CodeMissingAddress,
				Message: "Please enter your delivery address.",
			})
		}
		if len(NormalizePhone(a.fulfillment.Phone)) != 10 {
			errs = append(errs, ValidationError{
				Code:    CodeInvalidPhone,
				Message: "Please enter a valid 10-digit mobile number.",
			})
		}
	case OrderTypePickup:
		if a.fulfillment.PickupTiming == PickupLater {
			if a.fulfillment.ScheduledAt == nil || a.fulfillment.ScheduledAt.Before(a.now()) {
				errs = append(errs, ValidationError{
					Code:    CodeMissingPickupTime,
					Message: "Please select your preferred pickup date and time.",
				})
			}
		}
	}

	return errs
}

// GenerateOrderNumber produces a display label of the form
// MB-{yyyymmdd}-{hhmm}-{4 random digits}. The random suffix reduces
// same-minute collisions but no uniqueness is guaranteed; nothing in the
// system keys on it.
func (a *Aggregator) GenerateOrderNumber() string {
	now := a.now()
	return fmt.Sprintf("MB-%s-%s-%04d",
		now.Format("20060102"),
		now.Format("1504"),
		a.randInt(10000),
	)
}

// buildOrder captures the order snapshot from current state without
// mutating anything
func (a *Aggregator) buildOrder() *Order {
	o := &Order{
		OrderNumber: a.GenerateOrderNumber(),
		PlacedAt:    a.now(),
		Fulfillment: a.fulfillment,
		TotalItems:  a.TotalItemCount(),
		TotalPrice:  a.TotalPrice(),
	}

	// Normalized phone goes on the snapshot; raw input stays in session state
	o.Fulfillment.Phone = NormalizePhone(a.fulfillment.Phone)

	for _, line := range a.lines {
		item, err := a.catalog.FindItem(line.ItemID)
		if err != nil {
			continue
		}
		o.Lines = append(o.Lines, OrderLine{
			Item:     item,
			Quantity: line.Quantity,
			Subtotal: item.Price * int64(line.Quantity),
		})
	}

	return o
}

// SubmitOrder validates the cart and fulfillment, captures the order
// snapshot, then clears the cart and resets fulfillment to defaults.
// On validation failure the errors are returned and no state changes.
func (a *Aggregator) SubmitOrder() (*Order, ValidationErrors) {
	if errs := a.ValidateForSubmit(); len(errs) > 0 {
		return nil, errs
	}

	o := a.buildOrder()
	a.Clear()
	return o, nil
}

// PreviewOrder returns the order snapshot that SubmitOrder would produce,
// without validating or clearing anything. Used to show the outgoing
// message before the customer confirms.
func (a *Aggregator) PreviewOrder() *Order {
	return a.buildOrder()
}

// Clear empties the cart, resets fulfillment to defaults and drops the
// persisted snapshot. Safe to call on an already-empty cart.
func (a *Aggregator) Clear() {
	a.lines = nil
	a.fulfillment = DefaultFulfillment()

	if a.store != nil {
		if err := a.store.Delete(context.Background(), a.sessionID); err != nil {
			fmt.Printf("Warning: failed to clear session snapshot: %v\n", err)
		}
	}
}

// persist writes the current snapshot. Persistence is best-effort,
// last-write-wins; a failed write never fails the mutation.
func (a *Aggregator) persist() {
	if a.store == nil {
		return
	}

	snap := &Snapshot{
		Lines:       a.Lines(),
		Fulfillment: a.fulfillment,
	}

	if err := a.store.Save(context.Background(), a.sessionID, snap); err != nil {
		fmt.Printf("Warning: failed to persist session snapshot: %v\n", err)
	}
}
