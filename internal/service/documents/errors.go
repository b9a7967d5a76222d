package documents

import "errors"

var (
	// ErrDocumentNotFound возвращается, когда документ не найден
	ErrDocumentNotFound = errors.New("document not found")

	// ErrTokenNotFound возвращается, когда токен доступа не найден
	ErrTokenNotFound = errors.New("access token not found")

	// ErrTokenExpired возвращается, когда срок действия токена истёк
	ErrTokenExpired = errors.New("access token expired")

	// ErrFileTooLarge возвращается при превышении лимита размера файла
	ErrFileTooLarge = errors.New("file is too large")

	// ErrUnsupportedMimeType возвращается для неподдерживаемого типа файла
	ErrUnsupportedMimeType = errors.New("unsupported mime type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
