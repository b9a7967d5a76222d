package documents

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/filestore"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/document"
	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{}

func (fixedTime) Now() time.Time {
	return testNow
}

type stubFileStore struct {
	signedKeys  []string
	deletedKeys []string
}

func (s *stubFileStore) SignUpload(objectKey, contentType string) (*filestore.SignedUpload, error) {
	s.signedKeys = append(s.signedKeys, objectKey)
	return &filestore.SignedUpload{
		UploadURL: "https://storage.example.com/upload/" + objectKey,
		Method:    "PUT",
		Headers:   map[string]string{"Content-Type": contentType},
		ObjectKey: objectKey,
		ExpiresAt: testNow.Add(15 * time.Minute),
	}, nil
}

func (s *stubFileStore) SignDownload(objectKey string) (string, time.Time, error) {
	return "https://storage.example.com/download/" + objectKey, testNow.Add(15 * time.Minute), nil
}

func (s *stubFileStore) Delete(ctx context.Context, objectKey string) error {
	s.deletedKeys = append(s.deletedKeys, objectKey)
	return nil
}

type stubDocumentRepo struct {
	document *domain.Document
	token    *domain.AccessToken
	tokenErr error
	deleted  []int64
}

func (s *stubDocumentRepo) Create(ctx context.Context, document *domain.Document) (*domain.Document, error) {
	created := *document
	created.ID = 1
	created.CreatedAt = testNow
	return &created, nil
}

func (s *stubDocumentRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	if s.document == nil {
		return nil, storage.ErrDocumentNotFound
	}
	return s.document, nil
}

func (s *stubDocumentRepo) List(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.Document, error) {
	return nil, nil
}

func (s *stubDocumentRepo) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubDocumentRepo) CreateAccessToken(ctx context.Context, token *domain.AccessToken) (*domain.AccessToken, error) {
	saved := *token
	saved.ID = 1
	saved.CreatedAt = testNow
	return &saved, nil
}

func (s *stubDocumentRepo) GetAccessToken(ctx context.Context, tokenValue string) (*domain.AccessToken, error) {
	if s.tokenErr != nil {
		return nil, s.tokenErr
	}
	return s.token, nil
}

const maxUploadSize = 10 << 20

func newService(repo *stubDocumentRepo, files *stubFileStore) *Service {
	return NewService(repo, files, fixedTime{}, maxUploadSize, 72*time.Hour, nopLogger{})
}

func TestSignUpload_BuildsUniqueObjectKey(t *testing.T) {
	files := &stubFileStore{}
	svc := newService(&stubDocumentRepo{}, files)

	resp, err := svc.SignUpload(context.Background(), &models.SignUploadRequest{
		EntityType: "booking",
		EntityID:   7,
		FileName:   "Contract.PDF",
		MimeType:   "application/pdf",
		SizeBytes:  1024,
	})

	require.NoError(t, err)
	assert.Equal(t, "PUT", resp.Method)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, "booking/7/"))
	assert.True(t, strings.HasSuffix(resp.ObjectKey, ".pdf"))

	require.Len(t, files.signedKeys, 1)
}

func TestSignUpload_UnsupportedMimeType(t *testing.T) {
	svc := newService(&stubDocumentRepo{}, &stubFileStore{})

	_, err := svc.SignUpload(context.Background(), &models.SignUploadRequest{
		EntityType: "booking",
		EntityID:   7,
		FileName:   "archive.zip",
		MimeType:   "application/zip",
		SizeBytes:  1024,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMimeType)
}

func TestSignUpload_FileTooLarge(t *testing.T) {
	svc := newService(&stubDocumentRepo{}, &stubFileStore{})

	_, err := svc.SignUpload(context.Background(), &models.SignUploadRequest{
		EntityType: "booking",
		EntityID:   7,
		FileName:   "scan.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  maxUploadSize + 1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSignUpload_InvalidEntityType(t *testing.T) {
	svc := newService(&stubDocumentRepo{}, &stubFileStore{})

	_, err := svc.SignUpload(context.Background(), &models.SignUploadRequest{
		EntityType: "vehicle",
		EntityID:   7,
		FileName:   "scan.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  1024,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_RemovesRowThenObject(t *testing.T) {
	repo := &stubDocumentRepo{
		document: &domain.Document{ID: 5, ObjectKey: "booking/7/abc.pdf"},
	}
	files := &stubFileStore{}
	svc := newService(repo, files)

	err := svc.Delete(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []int64{5}, repo.deleted)
	assert.Equal(t, []string{"booking/7/abc.pdf"}, files.deletedKeys)
}

func TestCreateShareLink_UsesConfiguredTTL(t *testing.T) {
	repo := &stubDocumentRepo{
		document: &domain.Document{ID: 5, ObjectKey: "booking/7/abc.pdf"},
	}
	svc := newService(repo, &stubFileStore{})

	resp, err := svc.CreateShareLink(context.Background(), 5, 1)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, testNow.Add(72*time.Hour).Format(time.RFC3339), resp.ExpiresAt)
}

func TestResolveShareToken_Valid(t *testing.T) {
	repo := &stubDocumentRepo{
		document: &domain.Document{ID: 5, ObjectKey: "booking/7/abc.pdf"},
		token: &domain.AccessToken{
			Token:      "tok",
			DocumentID: 5,
			ExpiresAt:  testNow.Add(time.Hour),
		},
	}
	svc := newService(repo, &stubFileStore{})

	resp, err := svc.ResolveShareToken(context.Background(), "tok")

	require.NoError(t, err)
	assert.Contains(t, resp.DownloadURL, "booking/7/abc.pdf")
}

func TestResolveShareToken_Expired(t *testing.T) {
	repo := &stubDocumentRepo{
		token: &domain.AccessToken{
			Token:      "tok",
			DocumentID: 5,
			ExpiresAt:  testNow.Add(-time.Hour),
		},
	}
	svc := newService(repo, &stubFileStore{})

	_, err := svc.ResolveShareToken(context.Background(), "tok")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestResolveShareToken_NotFound(t *testing.T) {
	repo := &stubDocumentRepo{tokenErr: storage.ErrTokenNotFound}
	svc := newService(repo, &stubFileStore{})

	_, err := svc.ResolveShareToken(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
