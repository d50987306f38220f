package seeders

import (
	"time"

	"sofra.link/configs/configslog"
	"sofra.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDemoData geliştirme ortamı için örnek yemek ve katılımcılar ekler.
// Tablolar boş değilse hiçbir şey yapmaz.
func SeedDemoData(db *gorm.DB) error {
	var mealCount int64
	if err := db.Model(&models.Meal{}).Count(&mealCount).Error; err != nil {
		configslog.Log.Error("Demo seed: meals sayımı başarısız", zap.Error(err))
		return err
	}
	if mealCount > 0 {
		configslog.SLog.Info("Demo verisi zaten mevcut, seed atlanıyor.")
		return nil
	}

	nextNoon := func(days int) time.Time {
		now := time.Now()
		day := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.Local)
		return day.AddDate(0, 0, days)
	}
	limit := func(n int) *int { return &n }

	meals := []models.Meal{
		{Title: "Perşembe Ekip Yemeği", Cuisine: "Turkish", Date: nextNoon(2),
			Tags: models.MealTags{"VEGETARIAN_FRIENDLY", "HALAL"}, MaxAttendees: limit(12), Version: 1},
		{Title: "Ramen Akşamı", Cuisine: "Japanese", Date: nextNoon(3),
			Tags: models.MealTags{"VEGAN_OPTION"}, MaxAttendees: limit(8), Version: 1},
		{Title: "Açık Büfe Kahvaltı", Cuisine: "Turkish", Date: nextNoon(7),
			Tags: models.MealTags{"VEGAN_FRIENDLY", "GLUTEN_FREE_OPTION"}, Version: 1},
	}
	for i := range meals {
		if err := db.Create(&meals[i]).Error; err != nil {
			configslog.Log.Error("Demo seed: yemek oluşturulamadı", zap.String("title", meals[i].Title), zap.Error(err))
			return err
		}
	}

	persons := []models.Person{
		{Name: "Ayşe Demir", Email: "ayse@example.com", DietaryTags: []models.DietaryTag{models.DietaryTagVegan}},
		{Name: "Mehmet Kaya", Email: "mehmet@example.com", DietaryTags: []models.DietaryTag{models.DietaryTagHalal}},
		{Name: "Elif Şahin", Email: "elif@example.com", DietaryTags: []models.DietaryTag{models.DietaryTagNone}},
	}
	for i := range persons {
		if err := db.Create(&persons[i]).Error; err != nil {
			configslog.Log.Error("Demo seed: kişi oluşturulamadı", zap.String("name", persons[i].Name), zap.Error(err))
			return err
		}
	}

	configslog.SLog.Infof("Demo verisi eklendi: %d yemek, %d kişi.", len(meals), len(persons))
	return nil
}
