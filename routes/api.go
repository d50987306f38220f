package routes

import (
	api_handlers "sofra.link/handlers/api"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes /api altındaki rotaları tanımlar.
func registerAPIRoutes(app *fiber.App) {
	mealHandler := api_handlers.NewMealHandler()
	personHandler := api_handlers.NewPersonHandler()
	signupHandler := api_handlers.NewSignupHandler()

	apiGroup := app.Group("/api")

	// --- Yemekler ---
	apiGroup.Post("/meals", mealHandler.CreateMeal)       // POST   /api/meals
	apiGroup.Get("/meals", mealHandler.ListMeals)         // GET    /api/meals
	apiGroup.Get("/meals/:id", mealHandler.GetMeal)       // GET    /api/meals/{id}
	apiGroup.Put("/meals/:id", mealHandler.UpdateMeal)    // PUT    /api/meals/{id}
	apiGroup.Delete("/meals/:id", mealHandler.DeleteMeal) // DELETE /api/meals/{id}

	// --- Kişiler ---
	apiGroup.Post("/people", personHandler.CreatePerson) // POST /api/people
	apiGroup.Get("/people/:id", personHandler.GetPerson) // GET  /api/people/{id}

	// --- Rezervasyonlar ---
	apiGroup.Post("/signups", signupHandler.CreateSignup) // POST /api/signups
	apiGroup.Get("/signups", signupHandler.ListSignups)   // GET  /api/signups?personId=&date=&range=
}
