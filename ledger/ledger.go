// Package ledger owns the balance rule for inventory items:
// balance == totalQuantity - taken, with 0 <= taken <= totalQuantity.
// Callers never supply balance; it is recomputed here on every write
// that touches either quantity.
package ledger

import (
	"errors"
	"time"

	"Gin_postgres_redis_inventory_tracker/models"
)

var (
	ErrTakenExceedsTotal = errors.New("taken quantity cannot exceed total quantity")
	ErrNegativeQuantity  = errors.New("quantities cannot be negative")
	ErrInvalidCondition  = errors.New("condition must be one of new, used, damaged")
)

func ValidCondition(c string) bool {
	switch c {
	case models.ConditionNew, models.ConditionUsed, models.ConditionDamaged:
		return true
	}
	return false
}

type NewItemInput struct {
	Category      string
	ItemCode      string
	Name          string
	TotalQuantity int
	Unit          string
	AcquiredDate  time.Time
	Condition     string
	Description   string
	GivenTo       string
	GivenBy       string
}

// NewItem builds a create-ready item attributed to actor. Taken starts at 0
// and balance at the full total regardless of what the caller sent.
func NewItem(in NewItemInput, actor string, now time.Time) (*models.InventoryItem, error) {
	if in.TotalQuantity < 0 {
		return nil, ErrNegativeQuantity
	}
	cond := in.Condition
	if cond == "" {
		cond = models.ConditionNew
	}
	if !ValidCondition(cond) {
		return nil, ErrInvalidCondition
	}
	unit := in.Unit
	if unit == "" {
		unit = "pcs"
	}
	return &models.InventoryItem{
		Category:      in.Category,
		ItemCode:      in.ItemCode,
		Name:          in.Name,
		TotalQuantity: in.TotalQuantity,
		Taken:         0,
		Balance:       in.TotalQuantity,
		Unit:          unit,
		AcquiredDate:  in.AcquiredDate,
		Condition:     cond,
		Description:   in.Description,
		GivenTo:       in.GivenTo,
		GivenBy:       in.GivenBy,
		CreatedBy:     actor,
		TakenHistory:  []models.TakenHistoryEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ItemPatch is a partial update. Nil means "leave unchanged". There is no
// balance field on purpose.
type ItemPatch struct {
	Name          *string
	Unit          *string
	Condition     *string
	Description   *string
	GivenTo       *string
	GivenBy       *string
	AcquiredDate  *time.Time
	TotalQuantity *int
	Taken         *int
}

// ApplyPatch applies p to it in place. All-or-nothing: on any rejection the
// item is left exactly as passed in. When taken changes, one history entry
// with the delta (newTaken - oldTaken) is appended, attributed to actor.
func ApplyPatch(it *models.InventoryItem, p ItemPatch, actor string, now time.Time) error {
	total := it.TotalQuantity
	if p.TotalQuantity != nil {
		total = *p.TotalQuantity
	}
	taken := it.Taken
	if p.Taken != nil {
		taken = *p.Taken
	}
	if total < 0 || taken < 0 {
		return ErrNegativeQuantity
	}
	if taken > total {
		return ErrTakenExceedsTotal
	}
	if p.Condition != nil && !ValidCondition(*p.Condition) {
		return ErrInvalidCondition
	}

	if p.Taken != nil && taken != it.Taken {
		it.TakenHistory = append(it.TakenHistory, models.TakenHistoryEntry{
			TakenBy:  actor,
			Quantity: taken - it.Taken,
			Date:     now,
		})
	}
	if p.TotalQuantity != nil || p.Taken != nil {
		it.TotalQuantity = total
		it.Taken = taken
		it.Balance = total - taken
	}

	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Unit != nil {
		it.Unit = *p.Unit
	}
	if p.Condition != nil {
		it.Condition = *p.Condition
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.GivenTo != nil {
		it.GivenTo = *p.GivenTo
	}
	if p.GivenBy != nil {
		it.GivenBy = *p.GivenBy
	}
	if p.AcquiredDate != nil {
		it.AcquiredDate = *p.AcquiredDate
	}
	it.UpdatedAt = now
	return nil
}
