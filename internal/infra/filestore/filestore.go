package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// SignedUpload параметры подписанной загрузки файла в бакет
type SignedUpload struct {
	UploadURL string
	Method    string
	Headers   map[string]string
	ObjectKey string
	ExpiresAt time.Time
}

// Config настройки файлового хранилища
type Config struct {
	Bucket          string
	SignerEmail     string
	SignerKeyPEM    string // PEM приватный ключ сервисного аккаунта (с \n)
	CredentialsFile string // путь к service account JSON (для клиента удаления)
	URLTTL          time.Duration
}

type serviceAccountJSON struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// FileStore обёртка над бакетом Google Cloud Storage
// Выдаёт подписанные V4 ссылки на загрузку/скачивание и удаляет объекты
type FileStore struct {
	bucket     string
	signerID   string
	privateKey []byte
	urlTTL     time.Duration
	clientOpts []option.ClientOption
}

// New создает файловое хранилище
// Подписант берётся из конфигурации, либо из credentials JSON файла
func New(cfg Config) (*FileStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrNotConfigured)
	}

	fs := &FileStore{
		bucket: cfg.Bucket,
		urlTTL: cfg.URLTTL,
	}

	if cfg.SignerEmail != "" && cfg.SignerKeyPEM != "" {
		fs.signerID = cfg.SignerEmail
		fs.privateKey = normalizePrivateKey(cfg.SignerKeyPEM)
	} else if cfg.CredentialsFile != "" {
		raw, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: read credentials file: %v", ErrNotConfigured, err)
		}

		var key serviceAccountJSON
		if err := json.Unmarshal(raw, &key); err != nil {
			return nil, fmt.Errorf("%w: invalid credentials file: %v", ErrNotConfigured, err)
		}
		if key.ClientEmail == "" || key.PrivateKey == "" {
			return nil, fmt.Errorf("%w: credentials file missing client_email or private_key", ErrNotConfigured)
		}

		fs.signerID = key.ClientEmail
		fs.privateKey = normalizePrivateKey(key.PrivateKey)
		fs.clientOpts = append(fs.clientOpts, option.WithCredentialsJSON(raw))
	} else {
		return nil, fmt.Errorf("%w: signer credentials are required", ErrNotConfigured)
	}

	return fs, nil
}

// SignUpload выдаёт подписанную ссылку на загрузку объекта (PUT)
func (f *FileStore) SignUpload(objectKey, contentType string) (*SignedUpload, error) {
	expires := time.Now().Add(f.urlTTL)

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         http.MethodPut,
		Expires:        expires,
		ContentType:    contentType,
		GoogleAccessID: f.signerID,
		PrivateKey:     f.privateKey,
	}

	signedURL, err := storage.SignedURL(f.bucket, objectKey, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: upload %s: %v", ErrSignURL, objectKey, err)
	}

	return &SignedUpload{
		UploadURL: signedURL,
		Method:    opts.Method,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
		ObjectKey: objectKey,
		ExpiresAt: expires,
	}, nil
}

// SignDownload выдаёт подписанную ссылку на скачивание объекта (GET)
func (f *FileStore) SignDownload(objectKey string) (string, time.Time, error) {
	expires := time.Now().Add(f.urlTTL)

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         http.MethodGet,
		Expires:        expires,
		GoogleAccessID: f.signerID,
		PrivateKey:     f.privateKey,
	}

	signedURL, err := storage.SignedURL(f.bucket, objectKey, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: download %s: %v", ErrSignURL, objectKey, err)
	}

	return signedURL, expires, nil
}

// Delete удаляет объект из бакета
func (f *FileStore) Delete(ctx context.Context, objectKey string) error {
	client, err := storage.NewClient(ctx, f.clientOpts...)
	if err != nil {
		return fmt.Errorf("%w: create client: %v", ErrObjectDelete, err)
	}
	defer client.Close()

	if err := client.Bucket(f.bucket).Object(objectKey).Delete(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrObjectDelete, objectKey, err)
	}

	return nil
}

func normalizePrivateKey(key string) []byte {
	return []byte(strings.ReplaceAll(key, "\\n", "\n"))
}
