package api

import (
	"errors"

	"sofra.link/configs/configslog"
	"sofra.link/models"
	"sofra.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PersonHandler katılımcı uçları.
type PersonHandler struct {
	service services.IPersonService
}

// NewPersonHandler varsayılan servisle yeni bir PersonHandler oluşturur.
func NewPersonHandler() *PersonHandler {
	return &PersonHandler{service: services.NewPersonService()}
}

// NewPersonHandlerWithService verilen servisle çalışan handler (testler için).
func NewPersonHandlerWithService(service services.IPersonService) *PersonHandler {
	return &PersonHandler{service: service}
}

// CreatePerson (POST /api/people)
func (h *PersonHandler) CreatePerson(c *fiber.Ctx) error {
	var req PersonCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	person, err := h.service.CreatePerson(c.UserContext(), models.Person{
		Name:        req.Name,
		Email:       req.Email,
		DietaryTags: toDietaryTags(req.DietaryTags),
	})
	if err != nil {
		var svcErr services.PersonServiceError
		if errors.As(err, &svcErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("CreatePerson hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kişi kaydedilemedi."})
	}
	c.Location(c.Path() + "/" + itoa(person.ID))
	return c.Status(fiber.StatusCreated).JSON(person)
}

// GetPerson (GET /api/people/:id)
func (h *PersonHandler) GetPerson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kişi ID."})
	}

	person, err := h.service.GetPersonByID(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("GetPerson hatası", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kişi bilgisi alınamadı."})
	}
	return c.JSON(person)
}
