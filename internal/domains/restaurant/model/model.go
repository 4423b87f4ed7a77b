package model

import "lunchtime/shared/model"

const (
	TableName  = "restaurants"
	EntityName = "restaurant"

	FieldID          = "id"
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldAddress     = "address"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldDescription = "description"
	FieldLogoURL     = "logo_url"
	FieldOwnerID     = "owner_id"
)

type Restaurant struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Slug        string `db:"slug"`
	Address     string `db:"address"`
	Phone       string `db:"phone"`
	Email       string `db:"email"`
	Description string `db:"description"`
	LogoURL     string `db:"logo_url"`
	OwnerID     string `db:"owner_id"`
	model.Metadata
}
