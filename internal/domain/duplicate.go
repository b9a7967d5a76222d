package domain

// NameSource откуда пришла запись имени (для утилиты поиска дубликатов)
type NameSource string

const (
	NameSourceBooking NameSource = "booking"
	NameSourceInvoice NameSource = "invoice"
)

// NameRecord пара (имя, email), агрегированная из бронирований и счетов
type NameRecord struct {
	Name   string
	Email  string
	Source NameSource
	Count  int // сколько записей с этим написанием
}

// DuplicateReason причина объединения записей в группу кандидатов
type DuplicateReason string

const (
	DuplicateReasonEmail       DuplicateReason = "same_email"
	DuplicateReasonSimilarName DuplicateReason = "similar_name"
)

// DuplicateGroup группа кандидатов на объединение
// Решение об объединении принимает оператор вручную
type DuplicateGroup struct {
	Records []NameRecord
	Reason  DuplicateReason
	Score   float64 // максимальный score пары в группе (1.0 для групп по email)
}

// MergeResult результат объединения дубликатов по таблицам
type MergeResult struct {
	CanonicalName   string
	BookingsUpdated int64
	InvoicesUpdated int64
	FinesUpdated    int64
}

// TotalUpdated возвращает общее число обновлённых строк
func (r *MergeResult) TotalUpdated() int64 {
	return r.BookingsUpdated + r.InvoicesUpdated + r.FinesUpdated
}
