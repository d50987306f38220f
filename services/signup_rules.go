package services

import (
	"time"

	"sofra.link/models"
)

// Saf kural yardımcıları: yan etkisiz, I/O'suz. Rezervasyon motoru bunları
// kilidi aldıktan SONRA okuduğu taze veriyle çağırır.

// DayWindow t'nin takvim gününü yarı açık [00:00, +24h) aralığı olarak verir.
// Gün sınırı yerel takvim tarihinden hesaplanır, andan değil.
func DayWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// WeekWindow t'yi içeren Pazartesi-Pazar haftasını yarı açık
// [Pazartesi 00:00, sonraki Pazartesi 00:00) aralığı olarak verir.
func WeekWindow(t time.Time) (start, end time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// time.Weekday Pazar=0; Pazartesi'yi 0'a kaydır.
	offset := (int(day.Weekday()) + 6) % 7
	start = day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// MealHasCapacity kontenjan kuralı: MaxAttendees nil ise sınırsız, aksi halde
// mevcut sayı sınırın altında olmalı.
func MealHasCapacity(meal *models.Meal, currentCount int64) bool {
	if meal.MaxAttendees == nil {
		return true
	}
	return currentCount < int64(*meal.MaxAttendees)
}
