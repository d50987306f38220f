package models

import "strings"

// DietaryTag kapalı sözlükten bir beslenme kısıtı.
type DietaryTag string

const (
	DietaryTagNone       DietaryTag = "NONE" // Kısıt yok, kontrollerde yok sayılır
	DietaryTagVegan      DietaryTag = "VEGAN"
	DietaryTagVegetarian DietaryTag = "VEGETARIAN"
	DietaryTagHalal      DietaryTag = "HALAL"
	DietaryTagKosher     DietaryTag = "KOSHER"
	DietaryTagGlutenFree DietaryTag = "GLUTEN_FREE"
)

// ValidDietaryTags kayıt sırasında girdi doğrulaması için kullanılır.
var ValidDietaryTags = map[DietaryTag]bool{
	DietaryTagNone:       true,
	DietaryTagVegan:      true,
	DietaryTagVegetarian: true,
	DietaryTagHalal:      true,
	DietaryTagKosher:     true,
	DietaryTagGlutenFree: true,
}

// Person yemeklere kayıt olabilen bir katılımcı.
type Person struct {
	BaseModel
	Name        string       `gorm:"type:varchar(150);not null" json:"name"`
	Email       string       `gorm:"type:varchar(255)" json:"email"`
	DietaryTags []DietaryTag `gorm:"serializer:json;type:jsonb" json:"dietaryTags"`
}

// IsDietarilyCompatible kişinin tüm kısıtlayıcı etiketlerinin yemek
// etiketlerince karşılanıp karşılanmadığını söyler (mantıksal VE).
//
// Bir kısıt, yemek etiketlerinden biri ona eşitse (harf duyarsız) ya da
// "KISIT_" önekiyle başlıyorsa karşılanır: VEGAN kısıtını hem "vegan" hem
// "VEGAN_FRIENDLY" etiketi karşılar. Etiketi olmayan bir yemek yalnızca
// kısıtsız kişileri kabul eder.
func (p Person) IsDietarilyCompatible(mealTags MealTags) bool {
	for _, tag := range p.DietaryTags {
		if tag == "" || tag == DietaryTagNone {
			continue
		}
		if !dietaryTagSatisfied(tag, mealTags) {
			return false
		}
	}
	return true
}

// UnsatisfiedDietaryTag karşılanmayan ilk kısıtı döndürür; hata mesajlarında
// hangi kısıtın takıldığını söyleyebilmek için.
func (p Person) UnsatisfiedDietaryTag(mealTags MealTags) (DietaryTag, bool) {
	for _, tag := range p.DietaryTags {
		if tag == "" || tag == DietaryTagNone {
			continue
		}
		if !dietaryTagSatisfied(tag, mealTags) {
			return tag, true
		}
	}
	return "", false
}

func dietaryTagSatisfied(tag DietaryTag, mealTags MealTags) bool {
	prefix := strings.ToUpper(string(tag)) + "_"
	for _, mealTag := range mealTags {
		if mealTag == "" {
			continue
		}
		if strings.EqualFold(mealTag, string(tag)) {
			return true
		}
		if strings.HasPrefix(strings.ToUpper(mealTag), prefix) {
			return true
		}
	}
	return false
}
