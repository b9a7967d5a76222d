package merge_names

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("merge_names: invalid input data")

	// ErrMergeFailed возвращается, когда транзакция объединения не прошла
	ErrMergeFailed = errors.New("merge_names: merge transaction failed")
)
