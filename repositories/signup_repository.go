package repositories

import (
	"context"
	"errors"
	"time"

	"sofra.link/configs/configsdatabase"
	"sofra.link/configs/configslog"
	"sofra.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISignupRepository rezervasyon kayıtları için veritabanı işlemleri.
type ISignupRepository interface {
	// Create yeni rezervasyonu ekler; (meal_id, person_id) unique kısıtına
	// takılırsa ErrDuplicate döndürür.
	Create(ctx context.Context, signup *models.Signup) error
	FindByMealAndPerson(ctx context.Context, mealID, personID uint) (*models.Signup, error)
	// CountByMealID kilitsiz sayım; çağıran yemek satırı kilidini tutuyorsa
	// sayım kilit sahibinin görüşüyle tutarlıdır.
	CountByMealID(ctx context.Context, mealID uint) (int64, error)
	ExistsByPersonInDateRange(ctx context.Context, personID uint, start, end time.Time) (bool, error)
	FindByPersonInDateRange(ctx context.Context, personID uint, start, end time.Time) ([]models.Signup, error)
}

// SignupRepository ISignupRepository arayüzünü uygular.
type SignupRepository struct {
	db *gorm.DB
}

// NewSignupRepository varsayılan bağlantıyla yeni bir SignupRepository oluşturur.
func NewSignupRepository() ISignupRepository {
	return &SignupRepository{db: configsdatabase.GetDB()}
}

// NewSignupRepositoryTx verilen transaction üzerinde çalışan repository.
func NewSignupRepositoryTx(tx *gorm.DB) ISignupRepository {
	return &SignupRepository{db: tx}
}

func (r *SignupRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *SignupRepository) Create(ctx context.Context, signup *models.Signup) error {
	if signup == nil || signup.MealID == 0 || signup.PersonID == 0 {
		return errors.New("geçersiz rezervasyon kaydı (MealID veya PersonID eksik)")
	}
	err := r.getDB(ctx).Omit("Meal", "Person").Create(signup).Error
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		configslog.Log.Error("SignupRepository.Create: DB hatası",
			zap.Uint("mealID", signup.MealID), zap.Uint("personID", signup.PersonID), zap.Error(err))
		return err
	}
	return nil
}

func (r *SignupRepository) FindByMealAndPerson(ctx context.Context, mealID, personID uint) (*models.Signup, error) {
	if mealID == 0 || personID == 0 {
		return nil, ErrNotFound
	}
	var signup models.Signup
	err := r.getDB(ctx).Where("meal_id = ? AND person_id = ?", mealID, personID).First(&signup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SignupRepository.FindByMealAndPerson: DB hatası",
			zap.Uint("mealID", mealID), zap.Uint("personID", personID), zap.Error(err))
		return nil, err
	}
	return &signup, nil
}

func (r *SignupRepository) CountByMealID(ctx context.Context, mealID uint) (int64, error) {
	if mealID == 0 {
		return 0, nil
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Signup{}).Where("meal_id = ?", mealID).Count(&count).Error
	if err != nil {
		configslog.Log.Error("SignupRepository.CountByMealID: DB hatası", zap.Uint("mealID", mealID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// ExistsByPersonInDateRange kişinin yemeği [start, end) aralığına düşen bir
// rezervasyonu var mı? Günlük limit kuralının sorgusu.
func (r *SignupRepository) ExistsByPersonInDateRange(ctx context.Context, personID uint, start, end time.Time) (bool, error) {
	if personID == 0 {
		return false, nil
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Signup{}).
		Joins("JOIN meals ON meals.id = signups.meal_id").
		Where("signups.person_id = ? AND meals.date >= ? AND meals.date < ?", personID, start, end).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("SignupRepository.ExistsByPersonInDateRange: DB hatası",
			zap.Uint("personID", personID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// FindByPersonInDateRange kişinin [start, end) aralığındaki rezervasyonlarını
// yemek bilgisiyle birlikte, yemek tarihine göre sıralı döndürür.
func (r *SignupRepository) FindByPersonInDateRange(ctx context.Context, personID uint, start, end time.Time) ([]models.Signup, error) {
	if personID == 0 {
		return nil, nil
	}
	var signups []models.Signup
	err := r.getDB(ctx).Model(&models.Signup{}).
		Select("signups.*").
		Joins("JOIN meals ON meals.id = signups.meal_id").
		Where("signups.person_id = ? AND meals.date >= ? AND meals.date < ?", personID, start, end).
		Order("meals.date asc").
		Preload("Meal").
		Find(&signups).Error
	if err != nil {
		configslog.Log.Error("SignupRepository.FindByPersonInDateRange: DB hatası",
			zap.Uint("personID", personID), zap.Error(err))
		return nil, err
	}
	return signups, nil
}

var _ ISignupRepository = (*SignupRepository)(nil)
