package ledger

import (
	"errors"
	"testing"
	"time"

	"Gin_postgres_redis_inventory_tracker/models"
)

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func intp(v int) *int       { return &v }
func strp(s string) *string { return &s }

func testItem(total, taken int) *models.InventoryItem {
	return &models.InventoryItem{
		ID:            "item-1",
		Category:      "Tools",
		ItemCode:      "T-001",
		Name:          "Hammer",
		TotalQuantity: total,
		Taken:         taken,
		Balance:       total - taken,
		Unit:          "pcs",
		Condition:     models.ConditionNew,
		TakenHistory:  []models.TakenHistoryEntry{},
	}
}

func checkInvariant(t *testing.T, it *models.InventoryItem) {
	t.Helper()
	if it.Balance != it.TotalQuantity-it.Taken {
		t.Errorf("invariant broken: balance=%d total=%d taken=%d", it.Balance, it.TotalQuantity, it.Taken)
	}
	if it.Taken < 0 || it.Taken > it.TotalQuantity {
		t.Errorf("taken out of range: taken=%d total=%d", it.Taken, it.TotalQuantity)
	}
}

func TestNewItem_Defaults(t *testing.T) {
	it, err := NewItem(NewItemInput{
		Category:      "Tools",
		ItemCode:      "T-001",
		Name:          "Hammer",
		TotalQuantity: 10,
		Unit:          "pcs",
		AcquiredDate:  testNow,
	}, "alice", testNow)
	if err != nil {
		t.Fatalf("NewItem failed: %v", err)
	}
	if it.Taken != 0 {
		t.Errorf("expected taken 0, got %d", it.Taken)
	}
	if it.Balance != 10 {
		t.Errorf("expected balance 10, got %d", it.Balance)
	}
	if it.Condition != models.ConditionNew {
		t.Errorf("expected condition new, got %q", it.Condition)
	}
	if it.CreatedBy != "alice" {
		t.Errorf("expected createdBy alice, got %q", it.CreatedBy)
	}
	if len(it.TakenHistory) != 0 {
		t.Errorf("expected empty history, got %d entries", len(it.TakenHistory))
	}
	checkInvariant(t, it)
}

func TestNewItem_UnitDefault(t *testing.T) {
	it, err := NewItem(NewItemInput{TotalQuantity: 3, AcquiredDate: testNow}, "alice", testNow)
	if err != nil {
		t.Fatalf("NewItem failed: %v", err)
	}
	if it.Unit != "pcs" {
		t.Errorf("expected unit pcs, got %q", it.Unit)
	}
}

func TestNewItem_NegativeTotal(t *testing.T) {
	_, err := NewItem(NewItemInput{TotalQuantity: -1}, "alice", testNow)
	if !errors.Is(err, ErrNegativeQuantity) {
		t.Errorf("expected ErrNegativeQuantity, got %v", err)
	}
}

func TestNewItem_InvalidCondition(t *testing.T) {
	_, err := NewItem(NewItemInput{TotalQuantity: 1, Condition: "broken"}, "alice", testNow)
	if !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("expected ErrInvalidCondition, got %v", err)
	}
}

func TestApplyPatch_IncreaseTaken(t *testing.T) {
	it := testItem(10, 2)
	if err := ApplyPatch(it, ItemPatch{Taken: intp(5)}, "bob", testNow); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	if it.Balance != 5 {
		t.Errorf("expected balance 5, got %d", it.Balance)
	}
	if len(it.TakenHistory) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(it.TakenHistory))
	}
	h := it.TakenHistory[0]
	if h.Quantity != 3 {
		t.Errorf("expected history delta 3, got %d", h.Quantity)
	}
	if h.TakenBy != "bob" {
		t.Errorf("expected history actor bob, got %q", h.TakenBy)
	}
	if !h.Date.Equal(testNow) {
		t.Errorf("expected history date %v, got %v", testNow, h.Date)
	}
	checkInvariant(t, it)
}

func TestApplyPatch_DecreaseTaken(t *testing.T) {
	it := testItem(10, 5)
	if err := ApplyPatch(it, ItemPatch{Taken: intp(2)}, "bob", testNow); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	if it.Balance != 8 {
		t.Errorf("expected balance 8, got %d", it.Balance)
	}
	if len(it.TakenHistory) != 1 || it.TakenHistory[0].Quantity != -3 {
		t.Errorf("expected one history entry with delta -3, got %+v", it.TakenHistory)
	}
	checkInvariant(t, it)
}

func TestApplyPatch_TakenExceedsTotal(t *testing.T) {
	it := testItem(10, 2)
	err := ApplyPatch(it, ItemPatch{Taken: intp(11), Name: strp("Sledgehammer")}, "bob", testNow)
	if !errors.Is(err, ErrTakenExceedsTotal) {
		t.Fatalf("expected ErrTakenExceedsTotal, got %v", err)
	}
	// 整个更新被拒绝，任何字段都不能动
	if it.Taken != 2 || it.Balance != 8 {
		t.Errorf("rejected update must not change quantities: taken=%d balance=%d", it.Taken, it.Balance)
	}
	if len(it.TakenHistory) != 0 {
		t.Errorf("rejected update must not append history, got %d entries", len(it.TakenHistory))
	}
	if it.Name != "Hammer" {
		t.Errorf("rejected update must not change name, got %q", it.Name)
	}
}

func TestApplyPatch_NegativeQuantities(t *testing.T) {
	it := testItem(10, 2)
	if err := ApplyPatch(it, ItemPatch{Taken: intp(-1)}, "bob", testNow); !errors.Is(err, ErrNegativeQuantity) {
		t.Errorf("negative taken: expected ErrNegativeQuantity, got %v", err)
	}
	if err := ApplyPatch(it, ItemPatch{TotalQuantity: intp(-5)}, "bob", testNow); !errors.Is(err, ErrNegativeQuantity) {
		t.Errorf("negative total: expected ErrNegativeQuantity, got %v", err)
	}
	if it.Taken != 2 || it.Balance != 8 || len(it.TakenHistory) != 0 {
		t.Errorf("rejected updates must leave item unchanged: %+v", it)
	}
}

func TestApplyPatch_TotalAndTakenTogether(t *testing.T) {
	it := testItem(10, 2)
	if err := ApplyPatch(it, ItemPatch{TotalQuantity: intp(20), Taken: intp(5)}, "bob", testNow); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	// balance 用新的 total 算
	if it.Balance != 15 {
		t.Errorf("expected balance 15, got %d", it.Balance)
	}
	if len(it.TakenHistory) != 1 || it.TakenHistory[0].Quantity != 3 {
		t.Errorf("expected one history entry with delta 3, got %+v", it.TakenHistory)
	}
	checkInvariant(t, it)
}

func TestApplyPatch_TakenAboveOldTotalWithNewTotal(t *testing.T) {
	// 同一次更新里抬高 total 的话，taken 超过旧 total 也合法
	it := testItem(10, 2)
	if err := ApplyPatch(it, ItemPatch{TotalQuantity: intp(30), Taken: intp(15)}, "bob", testNow); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	if it.Balance != 15 {
		t.Errorf("expected balance 15, got %d", it.Balance)
	}
	checkInvariant(t, it)
}

func TestApplyPatch_TotalOnly(t *testing.T) {
	it := testItem(10, 2)
	if err := ApplyPatch(it, ItemPatch{TotalQuantity: intp(20)}, "bob", testNow); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	if it.Balance != 18 {
		t.Errorf("expected balance 18, got %d", it.Balance)
	}
	if len(it.TakenHistory) != 0 {
		t.Errorf("total-only update must not append history, got %d entries", len(it.TakenHistory))
	}
	checkInvariant(t, it)
}

func TestApplyPatch_UnrelatedFieldsOnly(t *testing.T) {
	it := testItem(10, 2)
	if err := ApplyPatch(it, ItemPatch{Description: strp("left in storage room B")}, "bob", testNow); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	if it.Taken != 2 || it.Balance != 8 {
		t.Errorf("description-only update must not touch quantities: taken=%d balance=%d", it.Taken, it.Balance)
	}
	if len(it.TakenHistory) != 0 {
		t.Errorf("description-only update must not append history")
	}
	if it.Description != "left in storage room B" {
		t.Errorf("description not applied: %q", it.Description)
	}
}

func TestApplyPatch_SameTakenNoHistory(t *testing.T) {
	it := testItem(10, 2)
	if err := ApplyPatch(it, ItemPatch{Taken: intp(2)}, "bob", testNow); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	if len(it.TakenHistory) != 0 {
		t.Errorf("unchanged taken must not append history, got %d entries", len(it.TakenHistory))
	}
	checkInvariant(t, it)
}

func TestApplyPatch_InvalidCondition(t *testing.T) {
	it := testItem(10, 2)
	err := ApplyPatch(it, ItemPatch{Condition: strp("rusty"), Taken: intp(5)}, "bob", testNow)
	if !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("expected ErrInvalidCondition, got %v", err)
	}
	if it.Taken != 2 || len(it.TakenHistory) != 0 {
		t.Errorf("rejected update must leave item unchanged: %+v", it)
	}
}

func TestApplyPatch_HistoryAccumulates(t *testing.T) {
	it := testItem(10, 0)
	steps := []struct {
		taken int
		delta int
	}{
		{3, 3}, {7, 4}, {5, -2}, {10, 5},
	}
	for _, s := range steps {
		if err := ApplyPatch(it, ItemPatch{Taken: intp(s.taken)}, "bob", testNow); err != nil {
			t.Fatalf("ApplyPatch to taken=%d failed: %v", s.taken, err)
		}
		checkInvariant(t, it)
	}
	if len(it.TakenHistory) != len(steps) {
		t.Fatalf("expected %d history entries, got %d", len(steps), len(it.TakenHistory))
	}
	for i, s := range steps {
		if it.TakenHistory[i].Quantity != s.delta {
			t.Errorf("entry %d: expected delta %d, got %d", i, s.delta, it.TakenHistory[i].Quantity)
		}
	}
	if it.Balance != 0 {
		t.Errorf("expected balance 0 after taking everything, got %d", it.Balance)
	}
}
