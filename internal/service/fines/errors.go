package fines

import "errors"

var (
	// ErrFineNotFound возвращается, когда штраф не найден
	ErrFineNotFound = errors.New("fine not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
