package m_price

// Field name constants for the prices table.
const (
	TableName    = "prices"
	SequenceName = "price_id_seq"

	PriceID   = "price_id"
	BrandID   = "brand_id"
	ProductID = "product_id"
	PriceList = "price_list"
	Priority  = "priority"
	StartDate = "start_date"
	EndDate   = "end_date"
	Amount    = "amount"
	Currency  = "currency"
	Version   = "version"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// Columns lists every column read back into Data, in struct order.
var Columns = []string{
	PriceID,
	BrandID,
	ProductID,
	PriceList,
	Priority,
	StartDate,
	EndDate,
	Amount,
	Currency,
	Version,
	CreatedAt,
	UpdatedAt,
}
