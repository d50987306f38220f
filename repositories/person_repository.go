package repositories

import (
	"context"
	"errors"

	"sofra.link/configs/configsdatabase"
	"sofra.link/configs/configslog"
	"sofra.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IPersonRepository katılımcı kayıtları için veritabanı işlemleri.
type IPersonRepository interface {
	Create(ctx context.Context, person *models.Person) error
	FindByID(ctx context.Context, id uint) (*models.Person, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// PersonRepository IPersonRepository arayüzünü uygular.
type PersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository varsayılan bağlantıyla yeni bir PersonRepository oluşturur.
func NewPersonRepository() IPersonRepository {
	return &PersonRepository{db: configsdatabase.GetDB()}
}

// NewPersonRepositoryTx verilen transaction üzerinde çalışan repository.
func NewPersonRepositoryTx(tx *gorm.DB) IPersonRepository {
	return &PersonRepository{db: tx}
}

func (r *PersonRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	if person == nil {
		return errors.New("geçersiz katılımcı kaydı")
	}
	return r.getDB(ctx).Create(person).Error
}

func (r *PersonRepository) FindByID(ctx context.Context, id uint) (*models.Person, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var person models.Person
	err := r.getDB(ctx).First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PersonRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &person, nil
}

func (r *PersonRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Person{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

var _ IPersonRepository = (*PersonRepository)(nil)
