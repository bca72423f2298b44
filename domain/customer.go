package domain

type Customer struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone"`
	Address   string `db:"address" json:"address"`
	GSTNumber string `db:"gst_number" json:"gst_number"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
