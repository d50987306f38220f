package api

import (
	"errors"
	"time"

	"sofra.link/configs/configslog"
	"sofra.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SignupHandler rezervasyon uçları.
type SignupHandler struct {
	service services.ISignupService
}

// NewSignupHandler varsayılan servisle yeni bir SignupHandler oluşturur.
func NewSignupHandler() *SignupHandler {
	return &SignupHandler{service: services.NewSignupService()}
}

// NewSignupHandlerWithService verilen servisle çalışan handler (testler için).
func NewSignupHandlerWithService(service services.ISignupService) *SignupHandler {
	return &SignupHandler{service: service}
}

// CreateSignup (POST /api/signups)
//
// Yeni kayıt 201, idempotent tekrar (aynı yemek + kişi) mevcut kayıtla 200
// döndürür. Kural ihlalleri (günlük limit, beslenme, kontenjan) 409'dur:
// istemci durumu yeniden okuyup tekrar deneyebilir.
func (h *SignupHandler) CreateSignup(c *fiber.Ctx) error {
	var req SignupCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}
	if req.MealID == 0 || req.PersonID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mealId ve personId zorunludur."})
	}

	signup, created, err := h.service.CreateSignup(c.UserContext(), req.MealID, req.PersonID, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSignupMealNotFound),
			errors.Is(err, services.ErrSignupPersonNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrSignupDailyLimit),
			errors.Is(err, services.ErrSignupDietaryMismatch),
			errors.Is(err, services.ErrSignupMealFull):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrSignupInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("CreateSignup hatası",
			zap.Uint("mealID", req.MealID), zap.Uint("personID", req.PersonID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Rezervasyon oluşturulamadı."})
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
		c.Location("/api/signups/" + itoa(signup.ID))
	}
	return c.Status(status).JSON(fiber.Map{
		"signup":     signup,
		"wasCreated": created,
	})
}

// ListSignups (GET /api/signups?personId=&date=&range=)
//
// range "day" (varsayılan) verilen günü, "week" o günü içeren Pazartesi-Pazar
// haftasını kapsar. date verilmezse bugün kullanılır.
func (h *SignupHandler) ListSignups(c *fiber.Ctx) error {
	personID := c.QueryInt("personId")
	if personID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "personId zorunludur."})
	}

	var refDate *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date için beklenen biçim YYYY-MM-DD."})
		}
		refDate = &parsed
	}

	rng := services.SignupRange(c.Query("range", string(services.SignupRangeDay)))

	signups, err := h.service.ListPersonSignups(c.UserContext(), uint(personID), refDate, rng)
	if err != nil {
		if errors.Is(err, services.ErrSignupPersonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("ListSignups hatası", zap.Int("personID", personID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Rezervasyonlar listelenemedi."})
	}
	return c.JSON(fiber.Map{"data": signups})
}
