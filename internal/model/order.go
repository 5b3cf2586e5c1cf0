package model

// OrderRow is one flattened output record: the session header joined with
// one confirmed product. Derived at finalization, never stored.
type OrderRow struct {
	UserName      string
	Store         string
	ShopID        string
	OwnerName     string
	OwnerPhone    string
	ProductCode   string
	ProductColor  string
	BadgeQuantity string
	SizeRange     string
	Price         string
	ImageFileID   string
}

// OrderColumns is the output header row, in the exact column order of the
// generated workbook.
var OrderColumns = []string{
	"User Name",
	"Store",
	"Shop ID",
	"Owner Name",
	"Owner Phone",
	"Product Code",
	"Product Color",
	"Badge Quantity",
	"Size Range",
	"Price",
	"Image File ID",
}

// Values returns the row's cells in OrderColumns order.
func (r OrderRow) Values() []string {
	return []string{
		r.UserName,
		r.Store,
		r.ShopID,
		r.OwnerName,
		r.OwnerPhone,
		r.ProductCode,
		r.ProductColor,
		r.BadgeQuantity,
		r.SizeRange,
		r.Price,
		r.ImageFileID,
	}
}
