package dto

import (
	"github.com/google/uuid"

	mealDto "lunchtime/internal/domains/meal/model/dto"
	"lunchtime/internal/domains/restaurant/model"
	reviewDto "lunchtime/internal/domains/review/model/dto"
	tableDto "lunchtime/internal/domains/table/model/dto"
	"lunchtime/shared"
	gDto "lunchtime/shared/dto"
	gModel "lunchtime/shared/model"
	"lunchtime/shared/timezone"
)

type CreateRestaurantRequest struct {
	Name        string `json:"name"        validate:"required,max=64"`
	Address     string `json:"address"     validate:"required,max=256"`
	Phone       string `json:"phone"       validate:"required,max=20"`
	Email       string `json:"email"       validate:"required,email,max=64"`
	Description string `json:"description" validate:"required"`
	Logo        string `json:"logo"        validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=2"`
}

func (c *CreateRestaurantRequest) ToModel(owner, slug, logoURL string) model.Restaurant {
	return model.Restaurant{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Slug:        slug,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		Description: c.Description,
		LogoURL:     logoURL,
		OwnerID:     owner,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  owner,
			ModifiedBy: owner,
		},
	}
}

type UpdateRestaurantRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=64"`
	Address     string `db:"address"     json:"address"     validate:"omitempty,max=256"`
	Phone       string `db:"phone"       json:"phone"       validate:"omitempty,max=20"`
	Email       string `db:"email"       json:"email"       validate:"omitempty,email,max=64"`
	Description string `db:"description" json:"description" validate:"omitempty"`
	Logo        string `json:"logo"      validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=2"`
}

type RestaurantResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	OwnerID     string `json:"owner_id"`
	gDto.Metadata
}

func (r *RestaurantResponse) FromModel(model model.Restaurant) {
	r.ID = model.ID
	r.Name = model.Name
	r.Slug = model.Slug
	r.Address = model.Address
	r.Phone = model.Phone
	r.Email = model.Email
	r.Description = model.Description
	r.LogoURL = model.LogoURL
	r.OwnerID = model.OwnerID
	r.Metadata.FromModel(model.Metadata)
}

type GetRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetRestaurantsResponse) FromModels(models []model.Restaurant, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Restaurants = make([]RestaurantResponse, len(models))
	for i, mod := range models {
		r.Restaurants[i].FromModel(mod)
	}
}

// RestaurantDetailResponse aggregates the directory page for one restaurant:
// the menu grouped by category, the latest reviews, and the tables.
type RestaurantDetailResponse struct {
	Restaurant    RestaurantResponse         `json:"restaurant"`
	MenuBreakfast []mealDto.MealResponse     `json:"menu_breakfast"`
	MenuLunch     []mealDto.MealResponse     `json:"menu_lunch"`
	MenuDinner    []mealDto.MealResponse     `json:"menu_dinner"`
	Reviews       []reviewDto.ReviewResponse `json:"reviews"`
	Tables        []tableDto.TableResponse   `json:"tables"`
}
