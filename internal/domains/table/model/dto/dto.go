package dto

import (
	"github.com/google/uuid"

	"lunchtime/internal/domains/table/model"
	"lunchtime/shared"
	gDto "lunchtime/shared/dto"
	gModel "lunchtime/shared/model"
	"lunchtime/shared/timezone"
)

type CreateTableRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Persons      int    `json:"persons"       validate:"required,min=1"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	return model.Table{
		ID:           uuid.NewString(),
		RestaurantID: c.RestaurantID,
		Persons:      c.Persons,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	Persons int `db:"persons" json:"persons" validate:"omitempty,min=1"`
}

type TableResponse struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Persons      int    `json:"persons"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.RestaurantID = model.RestaurantID
	r.Persons = model.Persons
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
