package domain

// Order statuses. An order only becomes eligible for stock deduction once the
// lenses have actually arrived at the shop.
const (
	OrderPending    = "PENDING"
	OrderPlaced     = "PLACED"
	OrderReceived   = "RECEIVED"
	OrderDispatched = "DISPATCHED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
	OrderDeclined   = "DECLINED"
)

type Order struct {
	ID           string `db:"id" json:"id"`
	DisplayID    string `db:"display_id" json:"display_id"`
	CustomerID   string `db:"customer_id" json:"customer_id"`
	CustomerName string `db:"customer_name" json:"customer_name"`
	Brand        string `db:"brand" json:"brand"`
	LensType     string `db:"lens_type" json:"lens_type"`
	RightSph     string `db:"right_sph" json:"right_sph"`
	RightCyl     string `db:"right_cyl" json:"right_cyl"`
	RightAxis    string `db:"right_axis" json:"right_axis"`
	RightAdd     string `db:"right_add" json:"right_add"`
	RightQty     int64  `db:"right_qty" json:"right_qty"`
	LeftSph      string `db:"left_sph" json:"left_sph"`
	LeftCyl      string `db:"left_cyl" json:"left_cyl"`
	LeftAxis     string `db:"left_axis" json:"left_axis"`
	LeftAdd      string `db:"left_add" json:"left_add"`
	LeftQty      int64  `db:"left_qty" json:"left_qty"`
	Status       string `db:"status" json:"status"`
	Notes        string `db:"notes" json:"notes"`
	CreatedAt    string `db:"created_at" json:"created_at"`
}

// DeductibleStatus reports whether stock may be deducted against an order in
// the given status. PENDING and PLACED orders have no stock yet; CANCELLED and
// DECLINED orders never will.
func DeductibleStatus(status string) bool {
	switch status {
	case OrderReceived, OrderDispatched, OrderDelivered:
		return true
	}
	return false
}
