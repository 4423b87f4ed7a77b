package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"lunchtime/internal/domains/meal/model"
	"lunchtime/shared"
	gDto "lunchtime/shared/dto"
	gModel "lunchtime/shared/model"
	"lunchtime/shared/timezone"
)

var (
	errInvalidPrice = errors.New("price must be a non-negative amount with at most two decimal places")
)

// NormalizePrice validates a price string and formats it with exactly two
// decimal places. Prices never pass through floating point arithmetic after
// this point.
func NormalizePrice(price string) (string, error) {
	value, err := strconv.ParseFloat(price, 64)
	if err != nil || value < 0 {
		return "", errInvalidPrice
	}

	if parts := strings.SplitN(price, ".", 2); len(parts) == 2 && len(parts[1]) > 2 {
		return "", errInvalidPrice
	}

	return fmt.Sprintf("%.2f", value), nil
}

type CreateMealRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Category     string `json:"category"      validate:"required,oneof=breakfast lunch dinner"`
	Name         string `json:"name"          validate:"required,max=64"`
	Description  string `json:"description"   validate:"required,max=264"`
	Price        string `json:"price"         validate:"required"`
}

func (c *CreateMealRequest) ToModel(user string) (model.Meal, error) {
	price, err := NormalizePrice(c.Price)
	if err != nil {
		return model.Meal{}, err
	}

	return model.Meal{
		ID:           uuid.NewString(),
		RestaurantID: c.RestaurantID,
		Category:     c.Category,
		Name:         c.Name,
		Description:  c.Description,
		Price:        price,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateMealRequest struct {
	Category    string `db:"category"    json:"category"    validate:"omitempty,oneof=breakfast lunch dinner"`
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=64"`
	Description string `db:"description" json:"description" validate:"omitempty,max=264"`
	Price       string `db:"price"       json:"price"       validate:"omitempty"`
}

type MealResponse struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Category     string `json:"category"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	gDto.Metadata
}

func (r *MealResponse) FromModel(model model.Meal) {
	r.ID = model.ID
	r.RestaurantID = model.RestaurantID
	r.Category = model.Category
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Metadata.FromModel(model.Metadata)
}

type GetMealsResponse struct {
	Meals     []MealResponse `json:"meals"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetMealsResponse) FromModels(models []model.Meal, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Meals = make([]MealResponse, len(models))
	for i, mod := range models {
		r.Meals[i].FromModel(mod)
	}
}
