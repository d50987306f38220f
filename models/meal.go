package models

import "time"

// Meal planlanmış bir ekip yemeğini temsil eder.
//
// Version alanı iyimser kilitleme için kullanılır: her başarılı güncellemede
// tam olarak 1 artar ve yazma işlemi CompareAndSwapVersion ile okunan sürüm
// üzerinden koşullu yapılır. Eski sürümle gelen güncellemeler reddedilir.
type Meal struct {
	BaseModel
	Date    time.Time `gorm:"index;not null" json:"date"`
	Title   string    `gorm:"type:varchar(255);not null" json:"title"`
	Cuisine string    `gorm:"type:varchar(100)" json:"cuisine"`

	// Tags serbest metin etiketlerdir; hem listeleme filtresi hem de beslenme
	// uygunluğu sinyali olarak kullanılır (ör. VEGAN_FRIENDLY).
	Tags MealTags `gorm:"serializer:json;type:jsonb" json:"tags"`

	// MaxAttendees nil ise kontenjan sınırsızdır.
	MaxAttendees *int `gorm:"type:integer" json:"maxAttendees"`

	Version uint `gorm:"not null;default:1" json:"version"`
}

// MealTags yemek etiket kümesi.
type MealTags []string

// Contains birebir (büyük/küçük harf duyarlı) etiket kontrolü; listeleme
// filtresiyle aynı semantik.
func (t MealTags) Contains(tag string) bool {
	for _, candidate := range t {
		if candidate == tag {
			return true
		}
	}
	return false
}
