package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sofra.link/configs/configsdatabase"
	"sofra.link/configs/configslog"
	"sofra.link/models"
	"sofra.link/pkg/queryparams"
	"sofra.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MealServiceError yemek servisi özel hataları.
type MealServiceError string

func (e MealServiceError) Error() string { return string(e) }

const (
	ErrMealNotFound        MealServiceError = "yemek bulunamadı"
	ErrMealTitleRequired   MealServiceError = "yemek başlığı zorunludur"
	ErrMealDateRequired    MealServiceError = "yemek tarihi zorunludur"
	ErrMealInvalidInput    MealServiceError = "geçersiz yemek girdisi"
	ErrMealVersionConflict MealServiceError = "yemek sürümü eski, güncel hali çekip tekrar deneyin"
	ErrMealHasSignups      MealServiceError = "rezervasyonu olan yemek silinemez"
	ErrMealUpdateFailed    MealServiceError = "yemek güncellenemedi"
)

// MealPatch güncellemede yalnızca değiştirilecek alanları taşır; nil alanlar
// dokunulmaz. Version verilmişse kayıtlı sürümle karşılaştırılır ve uyuşmazlık
// herhangi bir alan uygulanmadan Conflict olarak döner.
type MealPatch struct {
	Date         *time.Time
	Title        *string
	Cuisine      *string
	Tags         *models.MealTags
	MaxAttendees *int
	Version      *uint
}

// MealDetails yemek + güncel katılımcı sayısı.
type MealDetails struct {
	Meal          models.Meal `json:"meal"`
	AttendeeCount int64       `json:"attendeeCount"`
}

// IMealService yemek yönetimi için arayüz.
type IMealService interface {
	CreateMeal(ctx context.Context, meal models.Meal) (*models.Meal, error)
	GetMealDetails(ctx context.Context, id uint) (*MealDetails, error)
	ListMeals(ctx context.Context, filters repositories.MealListFilters, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateMeal(ctx context.Context, id uint, patch MealPatch) (*models.Meal, error)
	DeleteMeal(ctx context.Context, id uint) error
}

// MealService IMealService arayüzünü uygular. Güncellemeler iyimser sürüm
// denetimiyle (CAS) yazılır; rezervasyon motorunun satır kilidini almaz.
type MealService struct {
	mealRepo   repositories.IMealRepository
	signupRepo repositories.ISignupRepository
	db         *gorm.DB
}

// NewMealService varsayılan bağımlılıklarla yeni bir MealService oluşturur.
func NewMealService() IMealService {
	return NewMealServiceWithDB(configsdatabase.GetDB())
}

// NewMealServiceWithDB verilen bağlantı üzerinde çalışan servis.
func NewMealServiceWithDB(db *gorm.DB) IMealService {
	return &MealService{
		mealRepo:   repositories.NewMealRepositoryTx(db),
		signupRepo: repositories.NewSignupRepositoryTx(db),
		db:         db,
	}
}

// ValidateMeal oluşturma girdisinin temel doğrulamalarını yapar.
func ValidateMeal(meal models.Meal) error {
	if meal.Title == "" {
		return ErrMealTitleRequired
	}
	if meal.Date.IsZero() {
		return ErrMealDateRequired
	}
	if meal.MaxAttendees != nil && *meal.MaxAttendees < 1 {
		return fmt.Errorf("%w: kontenjan en az 1 olmalı", ErrMealInvalidInput)
	}
	for _, tag := range meal.Tags {
		if tag == "" {
			return fmt.Errorf("%w: boş etiket olamaz", ErrMealInvalidInput)
		}
	}
	return nil
}

// CreateMeal yeni bir yemek oluşturur; sürüm sayacı 1'den başlar.
func (s *MealService) CreateMeal(ctx context.Context, meal models.Meal) (*models.Meal, error) {
	if err := ValidateMeal(meal); err != nil {
		return nil, err
	}
	meal.Version = 1
	if err := s.mealRepo.Create(ctx, &meal); err != nil {
		configslog.Log.Error("CreateMeal repository hatası", zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Yemek oluşturuldu: ID %d, Başlık: %s", meal.ID, meal.Title)
	return &meal, nil
}

// GetMealDetails yemeği ve güncel katılımcı sayısını döndürür.
func (s *MealService) GetMealDetails(ctx context.Context, id uint) (*MealDetails, error) {
	meal, err := s.mealRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	count, err := s.signupRepo.CountByMealID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &MealDetails{Meal: *meal, AttendeeCount: count}, nil
}

// ListMeals filtreli ve sayfalı yemek listesi.
func (s *MealService) ListMeals(ctx context.Context, filters repositories.MealListFilters, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	meals, totalCount, err := s.mealRepo.FindAllPaginated(ctx, filters, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: meals,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateMeal yemeği iyimser sürüm denetimiyle günceller.
//
// 1. Güncel kayıt okunur. 2. patch.Version verilmiş ve kayıtlı sürümden
// farklıysa hiçbir alan uygulanmadan Conflict döner (istemci eski veri
// düzenlediğini ayırt edebilsin). 3. Dolu alanlar çalışma kopyasına uygulanır.
// 4. Yazma, 1. adımda okunan sürüm üzerinden CAS ile yapılır; araya giren bir
// yazar varsa aynı Conflict sınıfı döner. Otomatik tekrar denenmez.
func (s *MealService) UpdateMeal(ctx context.Context, id uint, patch MealPatch) (*models.Meal, error) {
	meal, err := s.mealRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}

	if patch.Version != nil && *patch.Version != meal.Version {
		return nil, ErrMealVersionConflict
	}

	readVersion := meal.Version
	if patch.Date != nil {
		meal.Date = *patch.Date
	}
	if patch.Title != nil {
		meal.Title = *patch.Title
	}
	if patch.Cuisine != nil {
		meal.Cuisine = *patch.Cuisine
	}
	if patch.Tags != nil {
		meal.Tags = *patch.Tags
	}
	if patch.MaxAttendees != nil {
		meal.MaxAttendees = patch.MaxAttendees
	}
	if err := ValidateMeal(*meal); err != nil {
		return nil, err
	}

	if err := s.mealRepo.CompareAndSwapVersion(ctx, meal, readVersion); err != nil {
		switch {
		case errors.Is(err, repositories.ErrVersionConflict):
			// 1. adım ile yazma arasında başka bir yazar commit etmiş.
			return nil, ErrMealVersionConflict
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrMealNotFound
		default:
			configslog.Log.Error("UpdateMeal CAS hatası", zap.Uint("id", id), zap.Error(err))
			return nil, ErrMealUpdateFailed
		}
	}
	configslog.SLog.Infof("Yemek güncellendi: ID %d, yeni sürüm %d", meal.ID, meal.Version)
	return meal, nil
}

// DeleteMeal yemeği siler. Bir veya daha fazla rezervasyonu varsa silme
// doğrulama hatasıyla reddedilir; sıfır rezervasyon kendisi yeterli bir veto
// olduğundan sürüm denetimi yapılmaz.
func (s *MealService) DeleteMeal(ctx context.Context, id uint) error {
	count, err := s.signupRepo.CountByMealID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrMealHasSignups
	}
	if err := s.mealRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMealNotFound
		}
		return err
	}
	configslog.SLog.Infof("Yemek silindi: ID %d", id)
	return nil
}

var _ IMealService = (*MealService)(nil)
