package fine

import "errors"

var (
	// ErrFineNotFound возвращается, когда штраф не найден
	ErrFineNotFound = errors.New("fine.repository: fine not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("fine.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("fine.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("fine.repository: failed to scan row")
)
