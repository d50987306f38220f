package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sofra.link/configs/configsdatabase"
	"sofra.link/configs/configslog"
	"sofra.link/models"
	"sofra.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PersonServiceError katılımcı servisi özel hataları.
type PersonServiceError string

func (e PersonServiceError) Error() string { return string(e) }

const (
	ErrPersonNotFound          PersonServiceError = "kişi bulunamadı"
	ErrPersonNameRequired      PersonServiceError = "kişi adı zorunludur"
	ErrPersonInvalidDietaryTag PersonServiceError = "tanınmayan beslenme etiketi"
)

// IPersonService katılımcı işlemleri için arayüz.
type IPersonService interface {
	CreatePerson(ctx context.Context, person models.Person) (*models.Person, error)
	GetPersonByID(ctx context.Context, id uint) (*models.Person, error)
}

// PersonService IPersonService arayüzünü uygular.
type PersonService struct {
	repo repositories.IPersonRepository
}

// NewPersonService varsayılan bağımlılıklarla yeni bir PersonService oluşturur.
func NewPersonService() IPersonService {
	return NewPersonServiceWithDB(configsdatabase.GetDB())
}

// NewPersonServiceWithDB verilen bağlantı üzerinde çalışan servis.
func NewPersonServiceWithDB(db *gorm.DB) IPersonService {
	return &PersonService{repo: repositories.NewPersonRepositoryTx(db)}
}

// CreatePerson yeni bir katılımcı kaydeder. Beslenme etiketleri kapalı
// sözlükten gelmek zorundadır; normalize edilerek (büyük harf) saklanır.
func (s *PersonService) CreatePerson(ctx context.Context, person models.Person) (*models.Person, error) {
	if strings.TrimSpace(person.Name) == "" {
		return nil, ErrPersonNameRequired
	}

	normalized := make([]models.DietaryTag, 0, len(person.DietaryTags))
	for _, tag := range person.DietaryTags {
		upper := models.DietaryTag(strings.ToUpper(strings.TrimSpace(string(tag))))
		if upper == "" {
			continue
		}
		if !models.ValidDietaryTags[upper] {
			return nil, fmt.Errorf("%w: %s", ErrPersonInvalidDietaryTag, tag)
		}
		normalized = append(normalized, upper)
	}
	person.DietaryTags = normalized

	if err := s.repo.Create(ctx, &person); err != nil {
		configslog.Log.Error("CreatePerson repository hatası", zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Kişi kaydedildi: ID %d, Ad: %s", person.ID, person.Name)
	return &person, nil
}

// GetPersonByID kişiyi döndürür.
func (s *PersonService) GetPersonByID(ctx context.Context, id uint) (*models.Person, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

var _ IPersonService = (*PersonService)(nil)
