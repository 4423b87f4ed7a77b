package model

import (
	"time"

	"lunchtime/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldRestaurantID = "restaurant_id"
	FieldTableID      = "table_id"
	FieldReservedDate = "reserved_date"
	FieldReservedTime = "reserved_time"
)

const (
	MealsTableName  = "reservation_meals"
	MealsEntityName = "reservation_meal"

	FieldReservationID = "reservation_id"
	FieldMealID        = "meal_id"
)

// Reservation holds exactly one table for one slot. The storage layer keeps a
// unique constraint on (table_id, reserved_date, reserved_time), so two
// reservations can never hold the same table at the same slot.
type Reservation struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	RestaurantID string    `db:"restaurant_id"`
	TableID      string    `db:"table_id"`
	ReservedDate time.Time `db:"reserved_date"`
	ReservedTime time.Time `db:"reserved_time"`
	model.Metadata
}

// ReservationMeal links a reservation to one pre-ordered meal.
type ReservationMeal struct {
	ReservationID string `db:"reservation_id"`
	MealID        string `db:"meal_id"`
}
