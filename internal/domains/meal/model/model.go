package model

import "lunchtime/shared/model"

const (
	TableName  = "meals"
	EntityName = "meal"

	FieldID           = "id"
	FieldRestaurantID = "restaurant_id"
	FieldCategory     = "category"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldPrice        = "price"
)

// Meal categories form a closed set.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
)

type Meal struct {
	ID           string `db:"id"`
	RestaurantID string `db:"restaurant_id"`
	Category     string `db:"category"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	Price        string `db:"price"`
	model.Metadata
}
