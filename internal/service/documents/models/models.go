package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/filestore"
)

// SignUploadRequest запрос на подписанную ссылку загрузки файла
type SignUploadRequest struct {
	EntityType string `json:"entityType"` // booking | invoice | fine | payment
	EntityID   int64  `json:"entityId"`
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	SizeBytes  int64  `json:"sizeBytes"`
}

// SignUploadResponse ответ с подписанной ссылкой загрузки
type SignUploadResponse struct {
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ObjectKey string            `json:"objectKey"`
	ExpiresAt string            `json:"expiresAt"`
}

// CompleteUploadRequest запрос на фиксацию загруженного файла
type CompleteUploadRequest struct {
	EntityType string `json:"entityType"`
	EntityID   int64  `json:"entityId"`
	FileName   string `json:"fileName"`
	ObjectKey  string `json:"objectKey"`
	MimeType   string `json:"mimeType"`
	SizeBytes  int64  `json:"sizeBytes"`
}

// DocumentResponse ответ с метаданными документа
type DocumentResponse struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedBy int64     `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DocumentListResponse ответ со списком документов
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// DownloadURLResponse ответ с подписанной ссылкой скачивания
type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   string `json:"expiresAt"`
}

// ShareLinkResponse ответ с публичной ссылкой на документ
type ShareLinkResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// FromSignedUpload конвертирует данные файлового хранилища в DTO
func FromSignedUpload(u *filestore.SignedUpload) *SignUploadResponse {
	if u == nil {
		return nil
	}

	return &SignUploadResponse{
		UploadURL: u.UploadURL,
		Method:    u.Method,
		Headers:   u.Headers,
		ObjectKey: u.ObjectKey,
		ExpiresAt: u.ExpiresAt.Format(time.RFC3339),
	}
}

// FromDomainDocument конвертирует domain модель в DTO
func FromDomainDocument(d *domain.Document) *DocumentResponse {
	if d == nil {
		return nil
	}

	return &DocumentResponse{
		ID:         d.ID,
		EntityType: string(d.EntityType),
		EntityID:   d.EntityID,
		FileName:   d.FileName,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}

// FromDomainDocumentList конвертирует список domain моделей в DTO
func FromDomainDocumentList(documents []*domain.Document) *DocumentListResponse {
	resp := &DocumentListResponse{
		Documents: make([]DocumentResponse, 0, len(documents)),
	}

	for _, document := range documents {
		if documentResp := FromDomainDocument(document); documentResp != nil {
			resp.Documents = append(resp.Documents, *documentResp)
		}
	}

	return resp
}

// FromDomainAccessToken конвертирует токен доступа в DTO
func FromDomainAccessToken(t *domain.AccessToken) *ShareLinkResponse {
	if t == nil {
		return nil
	}

	return &ShareLinkResponse{
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt.Format(time.RFC3339),
	}
}
