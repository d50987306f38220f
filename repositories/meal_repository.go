package repositories

import (
	"context"
	"errors"
	"time"

	"sofra.link/configs/configsdatabase"
	"sofra.link/configs/configslog"
	"sofra.link/models"
	"sofra.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MealListFilters yemek listesi için opsiyonel filtreler.
type MealListFilters struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Cuisine  string
	Tag      string
}

// IMealRepository yemek kayıtları için veritabanı işlemleri.
type IMealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	FindByID(ctx context.Context, id uint) (*models.Meal, error)
	// FindByIDForUpdate yemek satırını transaction boyunca exclusive kilitler.
	// Aynı yemeğe gelen diğer kilitli okumalar commit'e kadar bekler.
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Meal, error)
	FindAllPaginated(ctx context.Context, filters MealListFilters, params queryparams.ListParams) ([]models.Meal, int64, error)
	// CompareAndSwapVersion yemeği yalnızca saklanan sürüm expectedVersion ile
	// eşleşiyorsa yazar ve sürümü bir artırır; aksi halde ErrVersionConflict.
	CompareAndSwapVersion(ctx context.Context, meal *models.Meal, expectedVersion uint) error
	Delete(ctx context.Context, id uint) error
}

// MealRepository IMealRepository arayüzünü uygular.
type MealRepository struct {
	db *gorm.DB
}

// NewMealRepository varsayılan bağlantıyla yeni bir MealRepository oluşturur.
func NewMealRepository() IMealRepository {
	return &MealRepository{db: configsdatabase.GetDB()}
}

// NewMealRepositoryTx verilen transaction üzerinde çalışan repository.
func NewMealRepositoryTx(tx *gorm.DB) IMealRepository {
	return &MealRepository{db: tx}
}

func (r *MealRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni yemeği kaydeder. Sürüm sayacı 1'den başlar.
func (r *MealRepository) Create(ctx context.Context, meal *models.Meal) error {
	if meal == nil {
		return errors.New("geçersiz yemek kaydı")
	}
	if meal.Version == 0 {
		meal.Version = 1
	}
	return r.getDB(ctx).Create(meal).Error
}

// FindByID kilitsiz okuma.
func (r *MealRepository) FindByID(ctx context.Context, id uint) (*models.Meal, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var meal models.Meal
	err := r.getDB(ctx).First(&meal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MealRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &meal, nil
}

// FindByIDForUpdate SELECT ... FOR UPDATE ile satır kilidi alır. Kilit,
// çağıranın transaction'ı commit/rollback olana kadar tutulur; kilitsiz
// okumalar engellenmez.
func (r *MealRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Meal, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	db := r.getDB(ctx)
	query := db
	// SQLite FOR UPDATE sözdizimini tanımaz; tek yazarlı motor zaten
	// serileştirir. Kilit cümlesi yalnızca postgres'te eklenir.
	if db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var meal models.Meal
	err := query.First(&meal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MealRepository.FindByIDForUpdate: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &meal, nil
}

// FindAllPaginated filtreli ve sayfalı yemek listesi.
func (r *MealRepository) FindAllPaginated(ctx context.Context, filters MealListFilters, params queryparams.ListParams) ([]models.Meal, int64, error) {
	var meals []models.Meal
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Meal{})
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date < ?", *filters.DateTo)
	}
	if filters.Cuisine != "" {
		query = query.Where("LOWER(cuisine) = LOWER(?)", filters.Cuisine)
	}
	if filters.Tag != "" {
		// Etiketler JSON dizisi olarak saklanır; tırnaklı birebir eşleşme
		// aranır. jsonb sütunu LIKE'ı doğrudan kabul etmediğinden metne çevrilir.
		query = query.Where("CAST(tags AS TEXT) LIKE ?", "%\""+filters.Tag+"\"%")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("MealRepository.Count (Paginated): DB hatası", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return meals, 0, nil
	}

	// İzin verilen sıralama sütunları; bilinmeyen alan varsayılana düşer.
	allowedSortColumns := map[string]string{
		"date":          "date",
		"title":         "title",
		"cuisine":       "cuisine",
		"max_attendees": "max_attendees",
	}
	orderColumn, ok := allowedSortColumns[params.SortBy]
	if !ok {
		if params.SortBy != "" {
			configslog.SLog.Warnf("Geçersiz yemek sıralama alanı istendi, varsayılan kullanılıyor: %s", params.SortBy)
		}
		orderColumn = "date"
	}
	query = query.Order(orderColumn + " " + params.OrderBy)

	err := query.Limit(params.PerPage).Offset(params.CalculateOffset()).Find(&meals).Error
	if err != nil {
		configslog.Log.Error("MealRepository.Find (Paginated): DB hatası", zap.Error(err))
		return nil, totalCount, err
	}
	return meals, totalCount, nil
}

// CompareAndSwapVersion koşullu yazma: WHERE id = ? AND version = ?.
// Sıfır satır etkilenirse kayıt ya silinmiş ya da sürüm ilerlemiştir.
func (r *MealRepository) CompareAndSwapVersion(ctx context.Context, meal *models.Meal, expectedVersion uint) error {
	if meal == nil || meal.ID == 0 {
		return errors.New("geçersiz yemek kaydı")
	}
	db := r.getDB(ctx)

	meal.Version = expectedVersion + 1
	result := db.Model(&models.Meal{}).
		Where("id = ? AND version = ?", meal.ID, expectedVersion).
		Select("date", "title", "cuisine", "tags", "max_attendees", "version").
		Updates(meal)
	if result.Error != nil {
		configslog.Log.Error("MealRepository.CompareAndSwapVersion: DB hatası", zap.Uint("id", meal.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Kayıt mı yok, sürüm mü eski? Ayrımı çağırana bırakmamak için bak.
		var exists int64
		if err := db.Model(&models.Meal{}).Where("id = ?", meal.ID).Count(&exists).Error; err == nil && exists == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

// Delete yemeği kalıcı olarak siler. Kayıt yoksa ErrNotFound.
func (r *MealRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Delete(&models.Meal{}, id)
	if result.Error != nil {
		configslog.Log.Error("MealRepository.Delete: DB hatası", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IMealRepository = (*MealRepository)(nil)
