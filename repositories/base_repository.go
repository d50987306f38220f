package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Repository katmanının ortak sentinel hataları. Servisler bu hataları kendi
// hata türlerine çevirir; handler'lar repository hatası görmez.
var (
	// ErrNotFound aranan kayıt yok.
	ErrNotFound = errors.New("kayıt bulunamadı")
	// ErrDuplicate unique kısıtına takılan insert.
	ErrDuplicate = errors.New("kayıt zaten mevcut")
	// ErrVersionConflict koşullu sürüm güncellemesi sıfır satır etkiledi.
	ErrVersionConflict = errors.New("kayıt sürümü eski")
)

// txContextKey transaction'ın context üzerinden taşınmasında kullanılır.
type txContextKey struct{}

// ContextWithTx verilen transaction'ı context'e koyar; repository'lerin
// getDB yardımcıları önce bunu arar.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// txFromContext context'teki transaction'ı döndürür (varsa).
func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// isDuplicateKeyError sürücüye göre değişen unique ihlali hatalarını tanır.
// TranslateError açıkken gorm.ErrDuplicatedKey gelir; sqlite (testler) ve
// postgres mesajları da yedek olarak kontrol edilir.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
