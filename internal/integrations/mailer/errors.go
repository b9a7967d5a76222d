package mailer

import "errors"

var (
	// ErrDispatchFailed возвращается, когда вебхук отклонил отправку письма
	ErrDispatchFailed = errors.New("mailer client: dispatch failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса автоматизации
	ErrInvalidResponse = errors.New("mailer client: invalid response")
)
