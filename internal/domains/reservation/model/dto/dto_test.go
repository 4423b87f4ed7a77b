package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lunchtime/internal/domains/reservation/model"
	"lunchtime/internal/domains/reservation/model/dto"
	"lunchtime/shared/constant"
)

func TestParseSlotDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "dashed", value: "2030-05-20", want: "2030-05-20"},
		{name: "compact", value: "20300520", want: "2030-05-20"},
		{name: "garbage", value: "not-a-date", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := dto.ParseSlotDate(tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, dto.ErrInvalidSlotDate)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, date.Format(constant.SlotDateFormat))
		})
	}
}

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "with colons", value: "19:30:00", want: "19:30:00"},
		{name: "compact", value: "193000", want: "19:30:00"},
		{name: "garbage", value: "late", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slotTime, err := dto.ParseSlotTime(tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, dto.ErrInvalidSlotTime)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, slotTime.Format(constant.SlotTimeFormat))
		})
	}
}

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		TableID: "table-1",
		MealIDs: []string{"meal-1"},
	}

	date := time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC)
	slotTime := time.Date(0, 1, 1, 19, 0, 0, 0, time.UTC)

	reservation := req.ToModel("user-1", "restaurant-1", date, slotTime)

	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, "user-1", reservation.UserID)
	assert.Equal(t, "restaurant-1", reservation.RestaurantID)
	assert.Equal(t, "table-1", reservation.TableID)
	assert.Equal(t, date, reservation.ReservedDate)
	assert.Equal(t, slotTime, reservation.ReservedTime)
	assert.Equal(t, "user-1", reservation.CreatedBy)
}

func TestNewReservationEvent(t *testing.T) {
	reservation := model.Reservation{
		ID:           "reservation-1",
		UserID:       "user-1",
		RestaurantID: "restaurant-1",
		TableID:      "table-1",
		ReservedDate: time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC),
		ReservedTime: time.Date(0, 1, 1, 19, 0, 0, 0, time.UTC),
	}

	event := dto.NewReservationEvent(dto.EventTypeCancelled, reservation)

	assert.Equal(t, dto.EventTypeCancelled, event.Type)
	assert.Equal(t, "reservation-1", event.ReservationID)
	assert.Equal(t, "2030-05-20", event.ReservedDate)
	assert.Equal(t, "19:00:00", event.ReservedTime)
	assert.NotEmpty(t, event.OccurredAt)
}
