package detect_duplicates

import "github.com/m04kA/SMC-RentalService/internal/domain"

// NameRecordResponse запись имени в группе дубликатов
type NameRecordResponse struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Source string `json:"source"` // booking | invoice
	Count  int    `json:"count"`
}

// DuplicateGroupResponse группа кандидатов на объединение
type DuplicateGroupResponse struct {
	Records []NameRecordResponse `json:"records"`
	Reason  string               `json:"reason"` // same_email | similar_name
	Score   float64              `json:"score"`
}

// DuplicatesResponse ответ со списком групп дубликатов
type DuplicatesResponse struct {
	Groups []DuplicateGroupResponse `json:"groups"`
}

// FromDomainGroups конвертирует группы в DTO
func FromDomainGroups(groups []domain.DuplicateGroup) *DuplicatesResponse {
	resp := &DuplicatesResponse{
		Groups: make([]DuplicateGroupResponse, 0, len(groups)),
	}

	for _, group := range groups {
		groupResp := DuplicateGroupResponse{
			Reason:  string(group.Reason),
			Score:   group.Score,
			Records: make([]NameRecordResponse, 0, len(group.Records)),
		}

		for _, record := range group.Records {
			groupResp.Records = append(groupResp.Records, NameRecordResponse{
				Name:   record.Name,
				Email:  record.Email,
				Source: string(record.Source),
				Count:  record.Count,
			})
		}

		resp.Groups = append(resp.Groups, groupResp)
	}

	return resp
}
