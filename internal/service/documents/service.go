package documents

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/document"
	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

// allowedMimeTypes типы файлов, разрешённые к загрузке
var allowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
}

// Service сервис документов: подписанные загрузки, скачивание и публичные ссылки
type Service struct {
	repo          DocumentRepository
	files         FileStore
	time          TimeProvider
	maxSizeBytes  int64
	shareTokenTTL time.Duration
	log           Logger
}

// NewService создает новый экземпляр сервиса документов
func NewService(repo DocumentRepository, files FileStore, timeProvider TimeProvider, maxSizeBytes int64, shareTokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		repo:          repo,
		files:         files,
		time:          timeProvider,
		maxSizeBytes:  maxSizeBytes,
		shareTokenTTL: shareTokenTTL,
		log:           logger,
	}
}

// SignUpload валидирует файл и выдаёт подписанную ссылку на загрузку в бакет
// Файл кладётся под уникальным ключом, исходное имя сохраняется в метаданных
func (s *Service) SignUpload(ctx context.Context, req *models.SignUploadRequest) (*models.SignUploadResponse, error) {
	if err := s.validateUpload(req.EntityType, req.FileName, req.MimeType, req.SizeBytes); err != nil {
		s.log.Warn("[Documents] SignUpload - validation failed: %v", err)
		return nil, err
	}

	objectKey := fmt.Sprintf("%s/%d/%s%s",
		req.EntityType, req.EntityID, uuid.NewString(), strings.ToLower(path.Ext(req.FileName)))

	signed, err := s.files.SignUpload(objectKey, req.MimeType)
	if err != nil {
		s.log.Error("[Documents] SignUpload - failed to sign upload url: %v", err)
		return nil, fmt.Errorf("%w: SignUpload - failed to sign upload url: %v", ErrInternal, err)
	}

	s.log.Info("[Documents] SignUpload - upload url signed: entity=%s/%d, key=%s",
		req.EntityType, req.EntityID, objectKey)

	return models.FromSignedUpload(signed), nil
}

// CompleteUpload фиксирует загруженный файл в базе
func (s *Service) CompleteUpload(ctx context.Context, userID int64, req *models.CompleteUploadRequest) (*models.DocumentResponse, error) {
	if err := s.validateUpload(req.EntityType, req.FileName, req.MimeType, req.SizeBytes); err != nil {
		s.log.Warn("[Documents] CompleteUpload - validation failed: %v", err)
		return nil, err
	}

	if strings.TrimSpace(req.ObjectKey) == "" {
		return nil, fmt.Errorf("%w: object key is required", ErrInvalidInput)
	}

	document := &domain.Document{
		EntityType: domain.EntityType(req.EntityType),
		EntityID:   req.EntityID,
		FileName:   strings.TrimSpace(req.FileName),
		ObjectKey:  req.ObjectKey,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
		UploadedBy: userID,
	}

	created, err := s.repo.Create(ctx, document)
	if err != nil {
		s.log.Error("[Documents] CompleteUpload - failed to create document: %v", err)
		return nil, fmt.Errorf("%w: CompleteUpload - failed to create document: %v", ErrInternal, err)
	}

	s.log.Info("[Documents] CompleteUpload - document registered: id=%d, entity=%s/%d, file=%s",
		created.ID, created.EntityType, created.EntityID, created.FileName)

	return models.FromDomainDocument(created), nil
}

// List возвращает документы сущности
func (s *Service) List(ctx context.Context, entityType string, entityID int64) (*models.DocumentListResponse, error) {
	et := domain.EntityType(entityType)
	if !domain.IsValidEntityType(et) {
		s.log.Warn("[Documents] List - invalid entity type: %s", entityType)
		return nil, fmt.Errorf("%w: invalid entity type", ErrInvalidInput)
	}

	documents, err := s.repo.List(ctx, et, entityID)
	if err != nil {
		s.log.Error("[Documents] List - failed to list documents for %s/%d: %v", entityType, entityID, err)
		return nil, fmt.Errorf("%w: List - failed to list documents: %v", ErrInternal, err)
	}

	return models.FromDomainDocumentList(documents), nil
}

// DownloadURL выдаёт подписанную ссылку на скачивание документа
func (s *Service) DownloadURL(ctx context.Context, id int64) (*models.DownloadURLResponse, error) {
	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrDocumentNotFound, id)
		}
		s.log.Error("[Documents] DownloadURL - failed to get document %d: %v", id, err)
		return nil, fmt.Errorf("%w: DownloadURL - failed to get document: %v", ErrInternal, err)
	}

	url, expiresAt, err := s.files.SignDownload(document.ObjectKey)
	if err != nil {
		s.log.Error("[Documents] DownloadURL - failed to sign download url for document %d: %v", id, err)
		return nil, fmt.Errorf("%w: DownloadURL - failed to sign download url: %v", ErrInternal, err)
	}

	return &models.DownloadURLResponse{
		DownloadURL: url,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

// Delete удаляет документ: сначала запись, затем объект в бакете
// Ошибка удаления объекта логируется, но не откатывает операцию
func (s *Service) Delete(ctx context.Context, id int64) error {
	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return fmt.Errorf("%w: id=%d", ErrDocumentNotFound, id)
		}
		s.log.Error("[Documents] Delete - failed to get document %d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to get document: %v", ErrInternal, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return fmt.Errorf("%w: id=%d", ErrDocumentNotFound, id)
		}
		s.log.Error("[Documents] Delete - failed to delete document %d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to delete document: %v", ErrInternal, err)
	}

	if err := s.files.Delete(ctx, document.ObjectKey); err != nil {
		s.log.Error("[Documents] Delete - failed to delete object %s: %v", document.ObjectKey, err)
	}

	s.log.Info("[Documents] Delete - document deleted: id=%d, key=%s", id, document.ObjectKey)

	return nil
}

// CreateShareLink создаёт публичный токен доступа к документу
func (s *Service) CreateShareLink(ctx context.Context, documentID int64, userID int64) (*models.ShareLinkResponse, error) {
	if _, err := s.repo.GetByID(ctx, documentID); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrDocumentNotFound, documentID)
		}
		s.log.Error("[Documents] CreateShareLink - failed to get document %d: %v", documentID, err)
		return nil, fmt.Errorf("%w: CreateShareLink - failed to get document: %v", ErrInternal, err)
	}

	token := &domain.AccessToken{
		Token:      uuid.NewString(),
		DocumentID: documentID,
		CreatedBy:  userID,
		ExpiresAt:  s.time.Now().Add(s.shareTokenTTL),
	}

	created, err := s.repo.CreateAccessToken(ctx, token)
	if err != nil {
		s.log.Error("[Documents] CreateShareLink - failed to create access token for document %d: %v", documentID, err)
		return nil, fmt.Errorf("%w: CreateShareLink - failed to create access token: %v", ErrInternal, err)
	}

	s.log.Info("[Documents] CreateShareLink - share link created: document=%d, expires=%s",
		documentID, created.ExpiresAt)

	return models.FromDomainAccessToken(created), nil
}

// ResolveShareToken проверяет публичный токен и выдаёт ссылку на скачивание
// Вызывается без аутентификации
func (s *Service) ResolveShareToken(ctx context.Context, tokenValue string) (*models.DownloadURLResponse, error) {
	token, err := s.repo.GetAccessToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, ErrTokenNotFound
		}
		s.log.Error("[Documents] ResolveShareToken - failed to get access token: %v", err)
		return nil, fmt.Errorf("%w: ResolveShareToken - failed to get access token: %v", ErrInternal, err)
	}

	if token.IsExpired(s.time.Now()) {
		s.log.Warn("[Documents] ResolveShareToken - token expired: document=%d, expired=%s",
			token.DocumentID, token.ExpiresAt)
		return nil, ErrTokenExpired
	}

	document, err := s.repo.GetByID(ctx, token.DocumentID)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrDocumentNotFound, token.DocumentID)
		}
		s.log.Error("[Documents] ResolveShareToken - failed to get document %d: %v", token.DocumentID, err)
		return nil, fmt.Errorf("%w: ResolveShareToken - failed to get document: %v", ErrInternal, err)
	}

	url, expiresAt, err := s.files.SignDownload(document.ObjectKey)
	if err != nil {
		s.log.Error("[Documents] ResolveShareToken - failed to sign download url for document %d: %v", document.ID, err)
		return nil, fmt.Errorf("%w: ResolveShareToken - failed to sign download url: %v", ErrInternal, err)
	}

	return &models.DownloadURLResponse{
		DownloadURL: url,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

func (s *Service) validateUpload(entityType, fileName, mimeType string, sizeBytes int64) error {
	if !domain.IsValidEntityType(domain.EntityType(entityType)) {
		return fmt.Errorf("%w: invalid entity type", ErrInvalidInput)
	}

	name := strings.TrimSpace(fileName)
	if name == "" || len(name) > domain.MaxFileNameLength {
		return fmt.Errorf("%w: invalid file name", ErrInvalidInput)
	}

	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedMimeType, mimeType)
	}

	if sizeBytes <= 0 {
		return fmt.Errorf("%w: invalid file size", ErrInvalidInput)
	}
	if sizeBytes > s.maxSizeBytes {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, sizeBytes)
	}

	return nil
}
