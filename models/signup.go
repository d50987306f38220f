package models

import "time"

// Signup bir kişiyi bir yemeğe bağlayan rezervasyon kaydı.
//
// (meal_id, person_id) üzerindeki unique index uygulama seviyesindeki
// idempotans kontrolünün veritabanı tarafındaki güvencesidir: kilidin
// dışında kalan bir yarışta ikinci kayıt denemesi burada takılır.
// Signup oluşturulduktan sonra asla güncellenmez; yemeği silinemediği
// sürece kalıcıdır.
type Signup struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	MealID    uint      `gorm:"not null;index:idx_signup_meal_person,unique" json:"mealId"`
	PersonID  uint      `gorm:"not null;index:idx_signup_meal_person,unique" json:"personId"`
	Note      string    `gorm:"type:varchar(500)" json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	Meal   Meal   `gorm:"foreignKey:MealID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"meal"`
	Person Person `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}
