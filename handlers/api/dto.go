// handlers/api istek gövdelerinin doğrulanmış DTO'larını ve çekirdek hata
// sınıflarının HTTP durum kodlarına eşlenmesini üstlenir. Çekirdek servisler
// yalnızca tipli, doğrulanmış değer görür.
package api

import (
	"strconv"
	"time"

	"sofra.link/models"
)

// MealCreateRequest yeni yemek isteği.
type MealCreateRequest struct {
	Title        string     `json:"title"`
	Cuisine      string     `json:"cuisine"`
	Date         *time.Time `json:"date"`
	Tags         []string   `json:"tags"`
	MaxAttendees *int       `json:"maxAttendees"`
}

// MealUpdateRequest kısmi güncelleme isteği; nil alanlar dokunulmaz.
// Version verilmişse iyimser sürüm denetimi için kullanılır.
type MealUpdateRequest struct {
	Date         *time.Time `json:"date"`
	Title        *string    `json:"title"`
	Cuisine      *string    `json:"cuisine"`
	Tags         *[]string  `json:"tags"`
	MaxAttendees *int       `json:"maxAttendees"`
	Version      *uint      `json:"version"`
}

// PersonCreateRequest katılımcı kayıt isteği.
type PersonCreateRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	DietaryTags []string `json:"dietaryTags"`
}

// SignupCreateRequest rezervasyon isteği.
type SignupCreateRequest struct {
	MealID   uint   `json:"mealId"`
	PersonID uint   `json:"personId"`
	Note     string `json:"note"`
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func toDietaryTags(tags []string) []models.DietaryTag {
	converted := make([]models.DietaryTag, 0, len(tags))
	for _, tag := range tags {
		converted = append(converted, models.DietaryTag(tag))
	}
	return converted
}
