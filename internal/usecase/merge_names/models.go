package merge_names

import "github.com/m04kA/SMC-RentalService/internal/domain"

// MergeRequest запрос на объединение написаний имени
type MergeRequest struct {
	CanonicalName string   `json:"canonicalName"`
	Variants      []string `json:"variants"`
}

// MergeResponse итог объединения по таблицам
type MergeResponse struct {
	CanonicalName   string `json:"canonicalName"`
	BookingsUpdated int64  `json:"bookingsUpdated"`
	InvoicesUpdated int64  `json:"invoicesUpdated"`
	FinesUpdated    int64  `json:"finesUpdated"`
	TotalUpdated    int64  `json:"totalUpdated"`
}

// FromDomainResult конвертирует результат объединения в DTO
func FromDomainResult(result *domain.MergeResult) *MergeResponse {
	if result == nil {
		return nil
	}

	return &MergeResponse{
		CanonicalName:   result.CanonicalName,
		BookingsUpdated: result.BookingsUpdated,
		InvoicesUpdated: result.InvoicesUpdated,
		FinesUpdated:    result.FinesUpdated,
		TotalUpdated:    result.TotalUpdated(),
	}
}
