package m_price

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the prices table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// NextIDStmt draws the next value of the price id sequence.
func (m *Model) NextIDStmt() spanner.Statement {
	return spanner.Statement{SQL: "SELECT GET_NEXT_SEQUENCE_VALUE(SEQUENCE " + SequenceName + ")"}
}

// InsertMut creates a Spanner mutation for inserting a price.
// data.PriceID must already be drawn from the sequence.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
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
		},
		[]interface{}{
			data.PriceID,
			data.BrandID,
			data.ProductID,
			data.PriceList,
			data.Priority,
			data.StartDate,
			data.EndDate,
			data.Amount,
			data.Currency,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// ReplaceMut overwrites every mutable column of an existing price.
// Priority and created_at are left untouched.
func (m *Model) ReplaceMut(data *Data) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{
			PriceID,
			BrandID,
			ProductID,
			PriceList,
			StartDate,
			EndDate,
			Amount,
			Currency,
			Version,
			UpdatedAt,
		},
		[]interface{}{
			data.PriceID,
			data.BrandID,
			data.ProductID,
			data.PriceList,
			data.StartDate,
			data.EndDate,
			data.Amount,
			data.Currency,
			data.Version,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a price.
func (m *Model) DeleteMut(priceID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{priceID})
}

// UpsertMut writes a fully identified price, inserting or overwriting it.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
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
		},
		[]interface{}{
			data.PriceID,
			data.BrandID,
			data.ProductID,
			data.PriceList,
			data.Priority,
			data.StartDate,
			data.EndDate,
			data.Amount,
			data.Currency,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}
