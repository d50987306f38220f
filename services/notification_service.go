package services

import (
	"sofra.link/configs/configslog"

	"github.com/google/uuid"
)

// INotificationService rezervasyon sonrası bildirimler için arayüz.
// En-iyi-çaba çalışır: transaction'ın dışındadır, başarısızlığı rezervasyonu
// etkilemez ve sonucu beklenmez.
type INotificationService interface {
	SendSignupConfirmation(recipientEmail, mealTitle string)
}

// NotificationService e-posta gönderimini temsil eden log taslağı. Gerçek
// gönderim entegrasyonu bağlandığında arayüz aynı kalır.
type NotificationService struct{}

// NewNotificationService yeni bir NotificationService oluşturur.
func NewNotificationService() INotificationService {
	return &NotificationService{}
}

// SendSignupConfirmation onay bildirimini asenkron gönderir.
func (s *NotificationService) SendSignupConfirmation(recipientEmail, mealTitle string) {
	messageID := uuid.NewString()
	go func() {
		if recipientEmail == "" {
			configslog.SLog.Debugf("Bildirim atlandı (e-posta yok), mesaj %s", messageID)
			return
		}
		configslog.SLog.Infof("Rezervasyon onayı gönderildi (taslak): alıcı %s, yemek %q, mesaj %s",
			recipientEmail, mealTitle, messageID)
	}()
}

var _ INotificationService = (*NotificationService)(nil)
