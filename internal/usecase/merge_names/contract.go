package merge_names

import "context"

// BookingRenamer переименовывает клиентов в бронированиях
type BookingRenamer interface {
	RenameClient(ctx context.Context, fromNames []string, toName string) (int64, error)
}

// InvoiceRenamer переименовывает контрагентов в клиентских счетах
type InvoiceRenamer interface {
	RenameCounterparty(ctx context.Context, fromNames []string, toName string) (int64, error)
}

// FineRenamer переименовывает водителей в штрафах
type FineRenamer interface {
	RenameDriver(ctx context.Context, fromNames []string, toName string) (int64, error)
}

// TxManager интерфейс менеджера транзакций
// Все три таблицы переименовываются атомарно
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
