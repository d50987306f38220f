package services

import (
	"context"
	"testing"
	"time"

	"sofra.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupService_CreateSignup_Basarili(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	person := createTestPerson(t, db, "ayse")
	meal := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), intPtr(10))

	signup, created, err := service.CreateSignup(ctx, meal.ID, person.ID, "bol acılı")
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, signup)
	assert.NotZero(t, signup.ID)
	assert.Equal(t, meal.ID, signup.MealID)
	assert.Equal(t, person.ID, signup.PersonID)
	assert.Equal(t, "bol acılı", signup.Note)
}

func TestSignupService_CreateSignup_Idempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	person := createTestPerson(t, db, "ayse")
	meal := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), intPtr(10))

	first, created, err := service.CreateSignup(ctx, meal.ID, person.ID, "ilk deneme")
	require.NoError(t, err)
	require.True(t, created)

	// Tekrar: mevcut kayıt döner, not güncellenmez, yeni satır yazılmaz.
	second, created, err := service.CreateSignup(ctx, meal.ID, person.ID, "ikinci deneme")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "ilk deneme", second.Note)

	var count int64
	require.NoError(t, db.Model(&models.Signup{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSignupService_CreateSignup_GunlukLimit(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	person := createTestPerson(t, db, "ayse")
	ogle := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), nil)
	aksam := createTestMeal(t, db, time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC), nil)
	ertesiGun := createTestMeal(t, db, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), nil)

	_, _, err := service.CreateSignup(ctx, ogle.ID, person.ID, "")
	require.NoError(t, err)

	// Aynı takvim günündeki ikinci yemek reddedilir.
	_, _, err = service.CreateSignup(ctx, aksam.ID, person.ID, "")
	assert.ErrorIs(t, err, ErrSignupDailyLimit)

	// Ertesi gün serbesttir.
	_, created, err := service.CreateSignup(ctx, ertesiGun.ID, person.ID, "")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestSignupService_CreateSignup_BeslenmeUyumsuzlugu(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	vegan := createTestPerson(t, db, "elif", models.DietaryTagVegan)
	etYemegi := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), nil, "MEAT_ONLY")
	veganDostu := createTestMeal(t, db, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), nil, "VEGAN_FRIENDLY")

	_, _, err := service.CreateSignup(ctx, etYemegi.ID, vegan.ID, "")
	assert.ErrorIs(t, err, ErrSignupDietaryMismatch)

	// Reddedilen deneme iz bırakmaz.
	var count int64
	require.NoError(t, db.Model(&models.Signup{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	_, created, err := service.CreateSignup(ctx, veganDostu.ID, vegan.ID, "")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestSignupService_CreateSignup_KontenjanDolu(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	meal := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), intPtr(2))
	p1 := createTestPerson(t, db, "ayse")
	p2 := createTestPerson(t, db, "mehmet")
	p3 := createTestPerson(t, db, "elif")

	_, _, err := service.CreateSignup(ctx, meal.ID, p1.ID, "")
	require.NoError(t, err)
	_, _, err = service.CreateSignup(ctx, meal.ID, p2.ID, "")
	require.NoError(t, err)

	// Üçüncü deneme kontenjanı aşar.
	_, _, err = service.CreateSignup(ctx, meal.ID, p3.ID, "")
	assert.ErrorIs(t, err, ErrSignupMealFull)

	var count int64
	require.NoError(t, db.Model(&models.Signup{}).Where("meal_id = ?", meal.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// Dolu yemeğe mevcut katılımcının tekrarı yine idempotent döner.
	existing, created, err := service.CreateSignup(ctx, meal.ID, p1.ID, "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.NotNil(t, existing)
}

func TestSignupService_CreateSignup_SinirsizKontenjan(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	meal := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), nil)
	for i := 0; i < 5; i++ {
		person := createTestPerson(t, db, string(rune('a'+i))+"kisi")
		_, created, err := service.CreateSignup(ctx, meal.ID, person.ID, "")
		require.NoError(t, err)
		assert.True(t, created)
	}
}

func TestSignupService_CreateSignup_BulunamayanKayitlar(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	person := createTestPerson(t, db, "ayse")
	meal := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), nil)

	_, _, err := service.CreateSignup(ctx, 9999, person.ID, "")
	assert.ErrorIs(t, err, ErrSignupMealNotFound)

	_, _, err = service.CreateSignup(ctx, meal.ID, 9999, "")
	assert.ErrorIs(t, err, ErrSignupPersonNotFound)

	_, _, err = service.CreateSignup(ctx, 0, person.ID, "")
	assert.ErrorIs(t, err, ErrSignupInvalidInput)
}

func TestSignupService_CreateSignup_UzunNot(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	person := createTestPerson(t, db, "ayse")
	meal := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), nil)

	note := make([]byte, 501)
	for i := range note {
		note[i] = 'x'
	}
	_, _, err := service.CreateSignup(ctx, meal.ID, person.ID, string(note))
	assert.ErrorIs(t, err, ErrSignupInvalidInput)
}

func TestSignupService_ListPersonSignups(t *testing.T) {
	db := newTestDB(t)
	service := NewSignupServiceWithDB(db)
	ctx := context.Background()

	person := createTestPerson(t, db, "ayse")

	// Sal 10 Mart, Çar 11 Mart ve sonraki haftadan Salı 17 Mart.
	sali := createTestMeal(t, db, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), nil)
	carsamba := createTestMeal(t, db, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), nil)
	sonrakiSali := createTestMeal(t, db, time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC), nil)

	for _, meal := range []*models.Meal{sali, carsamba, sonrakiSali} {
		_, _, err := service.CreateSignup(ctx, meal.ID, person.ID, "")
		require.NoError(t, err)
	}

	ref := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	daily, err := service.ListPersonSignups(ctx, person.ID, &ref, SignupRangeDay)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, sali.ID, daily[0].MealID)
	// Yemek ilişkisi yüklenmiş gelir.
	assert.Equal(t, sali.ID, daily[0].Meal.ID)

	weekly, err := service.ListPersonSignups(ctx, person.ID, &ref, SignupRangeWeek)
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	// Yemek tarihine göre artan sırada.
	assert.Equal(t, sali.ID, weekly[0].MealID)
	assert.Equal(t, carsamba.ID, weekly[1].MealID)

	_, err = service.ListPersonSignups(ctx, 9999, &ref, SignupRangeDay)
	assert.ErrorIs(t, err, ErrSignupPersonNotFound)
}
