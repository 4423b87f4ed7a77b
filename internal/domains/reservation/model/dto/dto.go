package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	mealDto "lunchtime/internal/domains/meal/model/dto"
	"lunchtime/internal/domains/reservation/model"
	restaurantDto "lunchtime/internal/domains/restaurant/model/dto"
	tableDto "lunchtime/internal/domains/table/model/dto"
	"lunchtime/shared"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	gModel "lunchtime/shared/model"
	"lunchtime/shared/timezone"
)

var (
	ErrInvalidSlotDate = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidSlotTime = errors.New("time must be in HH:MM:SS format")
)

const (
	slotDateCompact = "20060102"
	slotTimeCompact = "150405"
)

// ParseSlotDate accepts a calendar date with or without dashes.
func ParseSlotDate(value string) (time.Time, error) {
	layout := constant.SlotDateFormat
	if !strings.Contains(value, "-") {
		layout = slotDateCompact
	}

	date, err := timezone.Parse(layout, value)
	if err != nil {
		return time.Time{}, ErrInvalidSlotDate
	}

	return date, nil
}

// ParseSlotTime accepts a wall-clock time with or without colons.
func ParseSlotTime(value string) (time.Time, error) {
	layout := constant.SlotTimeFormat
	if !strings.Contains(value, ":") {
		layout = slotTimeCompact
	}

	slotTime, err := timezone.Parse(layout, value)
	if err != nil {
		return time.Time{}, ErrInvalidSlotTime
	}

	return slotTime, nil
}

type SelectSlotRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

type CreateReservationRequest struct {
	TableID string   `json:"table_id" validate:"required"`
	MealIDs []string `json:"meal_ids" validate:"omitempty,unique,dive,required"`
}

func (c *CreateReservationRequest) ToModel(user, restaurantID string, date, slotTime time.Time) model.Reservation {
	return model.Reservation{
		ID:           uuid.NewString(),
		UserID:       user,
		RestaurantID: restaurantID,
		TableID:      c.TableID,
		ReservedDate: date,
		ReservedTime: slotTime,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReservationResponse struct {
	ID             string   `json:"id"`
	RestaurantID   string   `json:"restaurant_id"`
	RestaurantName string   `json:"restaurant_name,omitempty"`
	TableID        string   `json:"table_id"`
	ReservedDate   string   `json:"reserved_date"`
	ReservedTime   string   `json:"reserved_time"`
	Meals          []string `json:"meals"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.RestaurantID = model.RestaurantID
	r.TableID = model.TableID
	r.ReservedDate = model.ReservedDate.Format(constant.SlotDateFormat)
	r.ReservedTime = model.ReservedTime.Format(constant.SlotTimeFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// ReservationDetailResponse carries a QR data URI encoding the reservation
// reference for check-in at the restaurant.
type ReservationDetailResponse struct {
	ReservationResponse
	QRCode string `json:"qr_code"`
}

// SelectRestaurantResponse is the second wizard stage: the chosen slot plus
// every restaurant that can still be picked for it.
type SelectRestaurantResponse struct {
	ReservedDate string                             `json:"reserved_date"`
	ReservedTime string                             `json:"reserved_time"`
	Restaurants  []restaurantDto.RestaurantResponse `json:"restaurants"`
}

// AvailabilityResponse is the third wizard stage: the free tables for the slot
// and the menu to pre-order from. Message is set when no table is free.
type AvailabilityResponse struct {
	ReservedDate string                   `json:"reserved_date"`
	ReservedTime string                   `json:"reserved_time"`
	RestaurantID string                   `json:"restaurant_id"`
	Tables       []tableDto.TableResponse `json:"tables"`
	Meals        []mealDto.MealResponse   `json:"meals"`
	Message      string                   `json:"message,omitempty"`
}

// ReservationEvent is published to Kafka when a reservation is created or
// cancelled.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	RestaurantID  string `json:"restaurant_id"`
	TableID       string `json:"table_id"`
	ReservedDate  string `json:"reserved_date"`
	ReservedTime  string `json:"reserved_time"`
	OccurredAt    string `json:"occurred_at"`
}

const (
	EventTypeCreated   = "reservation.created"
	EventTypeCancelled = "reservation.cancelled"
)

func NewReservationEvent(eventType string, reservation model.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		RestaurantID:  reservation.RestaurantID,
		TableID:       reservation.TableID,
		ReservedDate:  reservation.ReservedDate.Format(constant.SlotDateFormat),
		ReservedTime:  reservation.ReservedTime.Format(constant.SlotTimeFormat),
		OccurredAt:    timezone.Now().Format(constant.DateFormat),
	}
}
