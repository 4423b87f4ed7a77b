package dto

import (
	"github.com/google/uuid"

	"lunchtime/internal/domains/review/model"
	"lunchtime/shared"
	gDto "lunchtime/shared/dto"
	gModel "lunchtime/shared/model"
	"lunchtime/shared/timezone"
)

type CreateReviewRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Rating       int    `json:"rating"        validate:"required,min=1,max=5"`
	Body         string `json:"body"          validate:"required"`
}

func (c *CreateReviewRequest) ToModel(userID string) model.Review {
	return model.Review{
		ID:           uuid.NewString(),
		RestaurantID: c.RestaurantID,
		UserID:       userID,
		Rating:       c.Rating,
		Body:         c.Body,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type ReviewResponse struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	UserID       string `json:"user_id"`
	Rating       int    `json:"rating"`
	Body         string `json:"body"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.RestaurantID = model.RestaurantID
	r.UserID = model.UserID
	r.Rating = model.Rating
	r.Body = model.Body
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
