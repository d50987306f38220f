package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sofra.link/configs/configslog"
	"sofra.link/models"
	"sofra.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp bellek-içi sqlite üzerinde tam API yüzeyini ayağa kaldırır.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configslog.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Person{}, &models.Meal{}, &models.Signup{}))
	t.Cleanup(func() { _ = sqlDB.Close() })

	app := fiber.New()
	apiGroup := app.Group("/api")

	mealHandler := NewMealHandlerWithService(services.NewMealServiceWithDB(db))
	apiGroup.Post("/meals", mealHandler.CreateMeal)
	apiGroup.Get("/meals", mealHandler.ListMeals)
	apiGroup.Get("/meals/:id", mealHandler.GetMeal)
	apiGroup.Put("/meals/:id", mealHandler.UpdateMeal)
	apiGroup.Delete("/meals/:id", mealHandler.DeleteMeal)

	personHandler := NewPersonHandlerWithService(services.NewPersonServiceWithDB(db))
	apiGroup.Post("/people", personHandler.CreatePerson)
	apiGroup.Get("/people/:id", personHandler.GetPerson)

	signupHandler := NewSignupHandlerWithService(services.NewSignupServiceWithDB(db))
	apiGroup.Post("/signups", signupHandler.CreateSignup)
	apiGroup.Get("/signups", signupHandler.ListSignups)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seedAPIMeal(t *testing.T, db *gorm.DB, maxAttendees *int, tags ...string) *models.Meal {
	t.Helper()
	meal := &models.Meal{
		Date:         time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Title:        "Izgara Sebze",
		Cuisine:      "Akdeniz",
		Tags:         models.MealTags(tags),
		MaxAttendees: maxAttendees,
		Version:      1,
	}
	require.NoError(t, db.Create(meal).Error)
	return meal
}

func seedAPIPerson(t *testing.T, db *gorm.DB, name string, tags ...models.DietaryTag) *models.Person {
	t.Helper()
	person := &models.Person{Name: name, Email: name + "@example.com", DietaryTags: tags}
	require.NoError(t, db.Create(person).Error)
	return person
}

func TestSignupEndpoint_CreateVeIdempotentTekrar(t *testing.T) {
	app, db := newTestApp(t)
	meal := seedAPIMeal(t, db, nil)
	person := seedAPIPerson(t, db, "ayse")

	body := fiber.Map{"mealId": meal.ID, "personId": person.ID, "note": "penceresiz masa"}

	resp := doJSON(t, app, http.MethodPost, "/api/signups", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Signup     models.Signup `json:"signup"`
		WasCreated bool          `json:"wasCreated"`
	}
	decodeBody(t, resp, &created)
	assert.True(t, created.WasCreated)
	assert.NotZero(t, created.Signup.ID)

	// Aynı istek tekrar: 200 ve aynı kayıt.
	resp = doJSON(t, app, http.MethodPost, "/api/signups", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var repeated struct {
		Signup     models.Signup `json:"signup"`
		WasCreated bool          `json:"wasCreated"`
	}
	decodeBody(t, resp, &repeated)
	assert.False(t, repeated.WasCreated)
	assert.Equal(t, created.Signup.ID, repeated.Signup.ID)
}

func TestSignupEndpoint_KuralIhlalleri409(t *testing.T) {
	app, db := newTestApp(t)

	t.Run("kontenjan dolu", func(t *testing.T) {
		meal := seedAPIMeal(t, db, func() *int { v := 1; return &v }())
		p1 := seedAPIPerson(t, db, "birinci")
		p2 := seedAPIPerson(t, db, "ikinci")

		resp := doJSON(t, app, http.MethodPost, "/api/signups", fiber.Map{"mealId": meal.ID, "personId": p1.ID})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodPost, "/api/signups", fiber.Map{"mealId": meal.ID, "personId": p2.ID})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("beslenme uyumsuz", func(t *testing.T) {
		meal := seedAPIMeal(t, db, nil, "MEAT_ONLY")
		vegan := seedAPIPerson(t, db, "vegan", models.DietaryTagVegan)

		resp := doJSON(t, app, http.MethodPost, "/api/signups", fiber.Map{"mealId": meal.ID, "personId": vegan.ID})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestSignupEndpoint_EksikKayitlar(t *testing.T) {
	app, db := newTestApp(t)
	person := seedAPIPerson(t, db, "ayse")

	resp := doJSON(t, app, http.MethodPost, "/api/signups", fiber.Map{"mealId": 9999, "personId": person.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/signups", fiber.Map{"personId": person.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignupEndpoint_Listeleme(t *testing.T) {
	app, db := newTestApp(t)
	meal := seedAPIMeal(t, db, nil)
	person := seedAPIPerson(t, db, "ayse")

	resp := doJSON(t, app, http.MethodPost, "/api/signups", fiber.Map{"mealId": meal.ID, "personId": person.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/signups?personId="+itoa(person.ID)+"&date=2026-03-10&range=week", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Data []models.Signup `json:"data"`
	}
	decodeBody(t, resp, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, meal.ID, list.Data[0].MealID)

	// personId zorunlu.
	resp = doJSON(t, app, http.MethodGet, "/api/signups", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Bilinmeyen kişi 404.
	resp = doJSON(t, app, http.MethodGet, "/api/signups?personId=9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
