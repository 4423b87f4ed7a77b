package model

import "lunchtime/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID           = "id"
	FieldRestaurantID = "restaurant_id"
	FieldUserID       = "user_id"
	FieldRating       = "rating"
	FieldBody         = "body"
)

// Review is a 1-5 star rating with free text, timestamped at creation and
// immutable afterwards.
type Review struct {
	ID           string `db:"id"`
	RestaurantID string `db:"restaurant_id"`
	UserID       string `db:"user_id"`
	Rating       int    `db:"rating"`
	Body         string `db:"body"`
	model.Metadata
}
