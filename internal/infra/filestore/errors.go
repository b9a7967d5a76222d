package filestore

import "errors"

var (
	// ErrNotConfigured возвращается, когда бакет или подписант не настроены
	ErrNotConfigured = errors.New("filestore: storage is not configured")

	// ErrSignURL возвращается при ошибке подписания ссылки
	ErrSignURL = errors.New("filestore: failed to sign URL")

	// ErrObjectDelete возвращается при ошибке удаления объекта из бакета
	ErrObjectDelete = errors.New("filestore: failed to delete object")
)
