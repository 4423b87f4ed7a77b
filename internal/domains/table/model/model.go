package model

import "lunchtime/shared/model"

const (
	TableName  = "tables"
	EntityName = "table"

	FieldID           = "id"
	FieldRestaurantID = "restaurant_id"
	FieldPersons      = "persons"
)

// Table is a physical table in a restaurant seating a fixed number of guests.
type Table struct {
	ID           string `db:"id"`
	RestaurantID string `db:"restaurant_id"`
	Persons      int    `db:"persons"`
	model.Metadata
}
