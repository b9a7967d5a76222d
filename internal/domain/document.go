package domain

import "time"

// Document метаданные файла, загруженного в бакет документов
// Сам файл лежит в object storage, здесь только ссылка на него
type Document struct {
	ID         int64
	EntityType EntityType
	EntityID   int64

	FileName  string
	ObjectKey string // ключ объекта в бакете
	MimeType  string
	SizeBytes int64

	UploadedBy int64
	CreatedAt  time.Time
}

// AccessToken публичный токен доступа к документу
// Позволяет открыть документ по ссылке без аутентификации до истечения срока
type AccessToken struct {
	ID         int64
	Token      string // UUID
	DocumentID int64
	CreatedBy  int64
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// IsExpired returns true if the token is past its expiry
func (t *AccessToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
