// models/inventory_item.go
package models

import "time"

const ItemTable = "inv_items"

const (
	ConditionNew     = "new"
	ConditionUsed    = "used"
	ConditionDamaged = "damaged"
)

// TakenHistoryEntry records one withdrawal (or return, when Quantity is
// negative) as the delta against the previous taken value. Entries are
// append-only.
type TakenHistoryEntry struct {
	TakenBy  string    `json:"takenBy"`
	Quantity int       `json:"quantity"`
	Date     time.Time `json:"date"`
}

type InventoryItem struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Category      string    `gorm:"size:200;index;not null" json:"category"`
	ItemCode      string    `gorm:"size:120;not null" json:"itemCode"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	TotalQuantity int       `gorm:"not null" json:"totalQuantity"`
	Taken         int       `gorm:"not null;default:0" json:"taken"`
	Balance       int       `gorm:"not null" json:"balance"` // always totalQuantity - taken, recomputed on write
	Unit          string    `gorm:"size:50;not null;default:'pcs'" json:"unit"`
	AcquiredDate  time.Time `gorm:"not null" json:"acquiredDate"`
	Condition     string    `gorm:"size:20;not null;default:'new'" json:"condition"` // new/used/damaged
	Description   string    `gorm:"type:text" json:"description"`
	GivenTo       string    `gorm:"size:255" json:"givenTo"`
	GivenBy       string    `gorm:"size:255" json:"givenBy"`
	CreatedBy     string    `gorm:"size:255" json:"createdBy"`

	TakenHistory []TakenHistoryEntry `gorm:"type:jsonb;serializer:json" json:"takenHistory"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (InventoryItem) TableName() string { return ItemTable }
