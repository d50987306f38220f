package services

import (
	"testing"
	"time"

	"sofra.link/configs/configslog"
	"sofra.link/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB bellek-içi sqlite üzerinde taze bir şema açar. ":memory:" her
// bağlantıda ayrı veritabanı verdiğinden havuz tek bağlantıya sabitlenir.
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func createTestPerson(t *testing.T, db *gorm.DB, name string, tags ...models.DietaryTag) *models.Person {
	t.Helper()
	person := &models.Person{
		Name:        name,
		Email:       name + "@example.com",
		DietaryTags: tags,
	}
	require.NoError(t, db.Create(person).Error)
	return person
}

func createTestMeal(t *testing.T, db *gorm.DB, date time.Time, maxAttendees *int, tags ...string) *models.Meal {
	t.Helper()
	meal := &models.Meal{
		Date:         date,
		Title:        "Test Yemeği",
		Cuisine:      "Türk",
		Tags:         models.MealTags(tags),
		MaxAttendees: maxAttendees,
		Version:      1,
	}
	require.NoError(t, db.Create(meal).Error)
	return meal
}

func intPtr(v int) *int { return &v }
