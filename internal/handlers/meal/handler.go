package meal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lunchtime/infras/otel"
	"lunchtime/internal/domains/meal/model"
	"lunchtime/internal/domains/meal/model/dto"
	"lunchtime/internal/domains/meal/service"
	"lunchtime/shared/constant"
	gDto "lunchtime/shared/dto"
	"lunchtime/shared/validator"
	"lunchtime/transport/http/response"
)

type Handler struct {
	service service.Meal
	otel    otel.Otel
}

func New(service service.Meal, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/meal_list", handler.GetMeals)
	router.Post("/add_meal", handler.CreateMeal)
	router.Patch("/modify_meal/{id}", handler.UpdateMeal)
	router.Delete("/delete_meal/{id}", handler.DeleteMeal)
}

// GetMeals lists meals, optionally scoped to one restaurant or category.
// @Summary List meals
// @Description Retrieve meals with optional restaurant and category filtering and pagination.
// @Tags Meal
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param restaurant_id query string false "Filter by restaurant ID"
// @Param category query string false "Filter by category (breakfast, lunch, dinner)"
// @Success 200 {object} response.Data[dto.GetMealsResponse] "List of meals"
// @Failure 500 {object} response.Error
// @Router /v1/meal_list [get]
func (handler *Handler) GetMeals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	restaurantID := r.URL.Query().Get(model.FieldRestaurantID)
	category := r.URL.Query().Get(model.FieldCategory)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if restaurantID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRestaurantID,
			Operator: gDto.FilterOperatorEq,
			Value:    restaurantID,
			Table:    model.TableName,
		})
	}

	if category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	meals, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meals")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meals retrieved successfully")

	response.WithJSON(w, http.StatusOK, meals)
}

// CreateMeal adds a meal to a restaurant's menu.
// @Summary Add a meal
// @Description Add a meal with category and price to a restaurant managed by the caller.
// @Tags Meal
// @Accept json
// @Produce json
// @Param request body dto.CreateMealRequest true "Create Meal Request"
// @Success 201 {object} response.Message "Meal created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/add_meal [post]
// @Security BearerAuth
func (handler *Handler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMeal")
	defer scope.End()

	req := dto.CreateMealRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create meal")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Meal created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Meal created successfully")
}

// UpdateMeal updates a meal on the menu.
// @Summary Modify a meal
// @Description Update a meal. Only the restaurant owner or an admin may do this.
// @Tags Meal
// @Accept json
// @Produce json
// @Param id path string true "Meal ID"
// @Param request body dto.UpdateMealRequest true "Update Meal Request"
// @Success 200 {object} response.Message "Meal updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/modify_meal/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMeal")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateMealRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update meal")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Meal updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Meal updated successfully")
}

// DeleteMeal removes a meal from the menu.
// @Summary Delete a meal
// @Description Delete a meal from a restaurant managed by the caller.
// @Tags Meal
// @Accept json
// @Produce json
// @Param id path string true "Meal ID"
// @Success 200 {object} response.Message "Meal deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/delete_meal/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMeal")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete meal")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Meal deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Meal deleted successfully")
}
