package domain

// InventoryLens is a stock lens unit. It may be linked back to the order that
// produced it by storage key, by display id, or both, depending on how the
// record was created.
type InventoryLens struct {
	ID             string `db:"id" json:"id"`
	OrderID        string `db:"order_id" json:"order_id"`
	OrderDisplayID string `db:"order_display_id" json:"order_display_id"`
	Brand          string `db:"brand" json:"brand"`
	LensType       string `db:"lens_type" json:"lens_type"`
	Sph            string `db:"sph" json:"sph"`
	Cyl            string `db:"cyl" json:"cyl"`
	Axis           string `db:"axis" json:"axis"`
	Add            string `db:"add_power" json:"add"`
	Qty            int64  `db:"qty" json:"qty"`
	CreatedAt      string `db:"created_at" json:"created_at"`
}
