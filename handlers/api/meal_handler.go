package api

import (
	"errors"
	"time"

	"sofra.link/configs/configslog"
	"sofra.link/models"
	"sofra.link/pkg/queryparams"
	"sofra.link/repositories"
	"sofra.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MealHandler yemek yönetimi uçları.
type MealHandler struct {
	service services.IMealService
}

// NewMealHandler varsayılan servisle yeni bir MealHandler oluşturur.
func NewMealHandler() *MealHandler {
	return &MealHandler{service: services.NewMealService()}
}

// NewMealHandlerWithService verilen servisle çalışan handler (testler için).
func NewMealHandlerWithService(service services.IMealService) *MealHandler {
	return &MealHandler{service: service}
}

// CreateMeal (POST /api/meals)
func (h *MealHandler) CreateMeal(c *fiber.Ctx) error {
	var req MealCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}
	if req.Date == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrMealDateRequired.Error()})
	}

	meal, err := h.service.CreateMeal(c.UserContext(), models.Meal{
		Title:        req.Title,
		Cuisine:      req.Cuisine,
		Date:         *req.Date,
		Tags:         models.MealTags(req.Tags),
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		var svcErr services.MealServiceError
		if errors.As(err, &svcErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("CreateMeal hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Yemek oluşturulamadı."})
	}
	c.Location(c.Path() + "/" + itoa(meal.ID))
	return c.Status(fiber.StatusCreated).JSON(meal)
}

// ListMeals (GET /api/meals) — filtreli, sayfalı, sıralı liste.
func (h *MealHandler) ListMeals(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("date")
	}
	params.Validate()

	filters := repositories.MealListFilters{
		Cuisine: params.Cuisine,
		Tag:     params.Tag,
	}
	if params.DateFrom != "" {
		from, err := time.ParseInLocation("2006-01-02", params.DateFrom, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_from için beklenen biçim YYYY-MM-DD."})
		}
		filters.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := time.ParseInLocation("2006-01-02", params.DateTo, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_to için beklenen biçim YYYY-MM-DD."})
		}
		// date_to gün sonuna kadar dahildir; repository üst sınırı dışlayıcı kullanır.
		toEnd := to.AddDate(0, 0, 1)
		filters.DateTo = &toEnd
	}

	result, err := h.service.ListMeals(c.UserContext(), filters, params)
	if err != nil {
		configslog.Log.Error("ListMeals hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Yemekler listelenemedi."})
	}
	return c.JSON(result)
}

// GetMeal (GET /api/meals/:id) — yemek + katılımcı sayısı.
func (h *MealHandler) GetMeal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz yemek ID."})
	}

	details, err := h.service.GetMealDetails(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("GetMeal hatası", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Yemek bilgisi alınamadı."})
	}
	return c.JSON(details)
}

// UpdateMeal (PUT /api/meals/:id) — iyimser sürüm denetimli kısmi güncelleme.
func (h *MealHandler) UpdateMeal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz yemek ID."})
	}

	var req MealUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	patch := services.MealPatch{
		Date:         req.Date,
		Title:        req.Title,
		Cuisine:      req.Cuisine,
		MaxAttendees: req.MaxAttendees,
		Version:      req.Version,
	}
	if req.Tags != nil {
		tags := models.MealTags(*req.Tags)
		patch.Tags = &tags
	}

	meal, err := h.service.UpdateMeal(c.UserContext(), uint(id), patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMealNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrMealVersionConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrMealTitleRequired),
			errors.Is(err, services.ErrMealDateRequired),
			errors.Is(err, services.ErrMealInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("UpdateMeal hatası", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Yemek güncellenemedi."})
	}
	return c.JSON(meal)
}

// DeleteMeal (DELETE /api/meals/:id) — rezervasyonu olan yemek silinemez.
func (h *MealHandler) DeleteMeal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz yemek ID."})
	}

	if err := h.service.DeleteMeal(c.UserContext(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrMealNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrMealHasSignups):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("DeleteMeal hatası", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Yemek silinemedi."})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
