package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sofra.link/configs/configsdatabase"
	"sofra.link/configs/configslog"
	"sofra.link/models"
	"sofra.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SignupServiceError rezervasyon motorunun özel hataları.
type SignupServiceError string

func (e SignupServiceError) Error() string { return string(e) }

const (
	ErrSignupMealNotFound    SignupServiceError = "yemek bulunamadı"
	ErrSignupPersonNotFound  SignupServiceError = "kişi bulunamadı"
	ErrSignupDailyLimit      SignupServiceError = "kişi aynı gün başka bir yemeğe zaten kayıtlı"
	ErrSignupDietaryMismatch SignupServiceError = "yemek kişinin beslenme kısıtını karşılamıyor"
	ErrSignupMealFull        SignupServiceError = "yemek kontenjanı dolu"
	ErrSignupInvalidInput    SignupServiceError = "geçersiz rezervasyon girdisi"
	ErrSignupFailed          SignupServiceError = "rezervasyon oluşturulamadı"
)

// SignupRange listeleme aralığı: "day" veya "week".
type SignupRange string

const (
	SignupRangeDay  SignupRange = "day"
	SignupRangeWeek SignupRange = "week"
)

// ISignupService rezervasyon işlemleri için arayüz.
type ISignupService interface {
	// CreateSignup tek bir rezervasyon denemesini atomik olarak yürütür.
	// İkinci dönüş değeri kaydın bu çağrıda oluşturulup oluşturulmadığıdır;
	// false ise mevcut kayıt döndürülmüştür (idempotent tekrar).
	CreateSignup(ctx context.Context, mealID, personID uint, note string) (*models.Signup, bool, error)
	ListPersonSignups(ctx context.Context, personID uint, refDate *time.Time, rng SignupRange) ([]models.Signup, error)
}

// SignupService rezervasyon motoru. Tüm invariant'lar tek bir veritabanı
// transaction'ı içinde, yemek satırı kilidi altında doğrulanır.
type SignupService struct {
	signupRepo repositories.ISignupRepository
	personRepo repositories.IPersonRepository
	notifier   INotificationService
	db         *gorm.DB
}

// NewSignupService varsayılan bağımlılıklarla yeni bir SignupService oluşturur.
func NewSignupService() ISignupService {
	return NewSignupServiceWithDB(configsdatabase.GetDB())
}

// NewSignupServiceWithDB verilen bağlantı üzerinde çalışan servis (testler ve
// migration araçları için).
func NewSignupServiceWithDB(db *gorm.DB) ISignupService {
	return &SignupService{
		signupRepo: repositories.NewSignupRepositoryTx(db),
		personRepo: repositories.NewPersonRepositoryTx(db),
		notifier:   NewNotificationService(),
		db:         db,
	}
}

// CreateSignup bir rezervasyon denemesini yürütür.
//
// Akış: kişi okunur, yemek satırı FOR UPDATE ile kilitlenir, idempotans
// kontrolü yapılır, kurallar sırayla (günlük limit, beslenme, kontenjan)
// kilit altındaki taze veriyle değerlendirilir, kayıt yazılır ve commit ile
// kilit bırakılır. Aynı yemeğe eşzamanlı iki deneme bu kilit sayesinde
// serileşir; kontenjan kontrolü ile yazma aynı kritik bölümün içindedir.
// Kilit hiçbir ağ çağrısının veya bildirimin üzerinden tutulmaz.
func (s *SignupService) CreateSignup(ctx context.Context, mealID, personID uint, note string) (*models.Signup, bool, error) {
	if mealID == 0 || personID == 0 {
		return nil, false, fmt.Errorf("%w: mealID ve personID zorunludur", ErrSignupInvalidInput)
	}
	if len(note) > 500 {
		return nil, false, fmt.Errorf("%w: not 500 karakteri aşamaz", ErrSignupInvalidInput)
	}

	var (
		result  *models.Signup
		created bool
		person  *models.Person
		meal    *models.Meal
	)

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)
		mealRepoTx := repositories.NewMealRepositoryTx(tx)
		signupRepoTx := repositories.NewSignupRepositoryTx(tx)
		personRepoTx := repositories.NewPersonRepositoryTx(tx)

		// 1. Kişi var mı?
		var err error
		person, err = personRepoTx.FindByID(txCtx, personID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrSignupPersonNotFound
			}
			return err
		}

		// 2. Yemek satırını kilitle. Kilit commit'e kadar tutulur.
		meal, err = mealRepoTx.FindByIDForUpdate(txCtx, mealID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrSignupMealNotFound
			}
			return err
		}

		// 3. İdempotans: aynı (yemek, kişi) için kayıt varsa onu döndür,
		// kural değerlendirmesi ve yazma yapılmaz. Zaman aşımı + yeniden
		// deneme senaryoları böylece güvenlidir.
		existing, err := signupRepoTx.FindByMealAndPerson(txCtx, mealID, personID)
		if err == nil {
			result = existing
			created = false
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		// 4a. Günlük limit: kişinin aynı takvim gününde başka rezervasyonu
		// olmamalı. Pencere kilit alındıktan sonra okunan tarihten hesaplanır.
		dayStart, dayEnd := DayWindow(meal.Date)
		alreadyBooked, err := signupRepoTx.ExistsByPersonInDateRange(txCtx, personID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if alreadyBooked {
			return ErrSignupDailyLimit
		}

		// 4b. Beslenme uyumu.
		if unsatisfied, bad := person.UnsatisfiedDietaryTag(meal.Tags); bad {
			return fmt.Errorf("%w: %s", ErrSignupDietaryMismatch, unsatisfied)
		}

		// 4c. Kontenjan: sayım kilit altında, taze okunur.
		currentCount, err := signupRepoTx.CountByMealID(txCtx, mealID)
		if err != nil {
			return err
		}
		if !MealHasCapacity(meal, currentCount) {
			return ErrSignupMealFull
		}

		// 5. Kaydı yaz.
		signup := &models.Signup{
			MealID:   mealID,
			PersonID: personID,
			Note:     strings.TrimSpace(note),
		}
		if err := signupRepoTx.Create(txCtx, signup); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				// Unique kısıtı yakaladı: kilidin dışında kalmış bir yarışta
				// aynı kişi için kayıt bu arada oluşmuş. İdempotent durumla
				// eşdeğer say, mevcut satırı okuyup döndür.
				existing, readErr := signupRepoTx.FindByMealAndPerson(txCtx, mealID, personID)
				if readErr != nil {
					return ErrSignupFailed
				}
				result = existing
				created = false
				return nil
			}
			return ErrSignupFailed
		}
		result = signup
		created = true
		return nil
	})

	if txErr != nil {
		var svcErr SignupServiceError
		if !errors.As(txErr, &svcErr) {
			configslog.Log.Error("CreateSignup transaction hatası",
				zap.Uint("mealID", mealID), zap.Uint("personID", personID), zap.Error(txErr))
		}
		return nil, false, txErr
	}

	if created {
		configslog.SLog.Infof("Rezervasyon oluşturuldu: Signup ID %d (Yemek: %d, Kişi: %d)", result.ID, mealID, personID)
		// Bildirim transaction'ın dışında, en-iyi-çaba olarak gönderilir;
		// başarısızlığı kaydı etkilemez.
		s.notifier.SendSignupConfirmation(person.Email, meal.Title)
	}
	return result, created, nil
}

// ListPersonSignups kişinin verilen güne ya da o günü içeren Pazartesi-Pazar
// haftasına düşen rezervasyonlarını döndürür. refDate nil ise bugün kullanılır.
func (s *SignupService) ListPersonSignups(ctx context.Context, personID uint, refDate *time.Time, rng SignupRange) ([]models.Signup, error) {
	exists, err := s.personRepo.Exists(ctx, personID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSignupPersonNotFound
	}

	base := time.Now()
	if refDate != nil {
		base = *refDate
	}

	var start, end time.Time
	if strings.EqualFold(string(rng), string(SignupRangeWeek)) {
		start, end = WeekWindow(base)
	} else {
		start, end = DayWindow(base)
	}
	return s.signupRepo.FindByPersonInDateRange(ctx, personID, start, end)
}

var _ ISignupService = (*SignupService)(nil)
