package detect_duplicates

import "errors"

var (
	// ErrListRecords возвращается, когда не удалось собрать записи имён
	ErrListRecords = errors.New("detect_duplicates: failed to list name records")
)
