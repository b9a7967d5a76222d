package detect_duplicates

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// SimilarityThreshold минимальный score пары имён для попадания в группу
const SimilarityThreshold = 0.7

// BuildGroups группирует записи имён в кандидаты на объединение
// Сначала точные совпадения email, затем похожие имена с разными email
func BuildGroups(records []domain.NameRecord) []domain.DuplicateGroup {
	var groups []domain.DuplicateGroup

	grouped := make([]bool, len(records))

	// Группы по email: одинаковый email с разными написаниями имени
	byEmail := make(map[string][]int)
	for i, record := range records {
		email := strings.ToLower(strings.TrimSpace(record.Email))
		if email == "" {
			continue
		}
		byEmail[email] = append(byEmail[email], i)
	}

	emails := make([]string, 0, len(byEmail))
	for email := range byEmail {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	for _, email := range emails {
		indexes := byEmail[email]
		if len(indexes) < 2 || !hasDistinctNames(records, indexes) {
			continue
		}

		group := domain.DuplicateGroup{
			Reason: domain.DuplicateReasonEmail,
			Score:  1.0,
		}
		for _, i := range indexes {
			group.Records = append(group.Records, records[i])
			grouped[i] = true
		}
		groups = append(groups, group)
	}

	// Группы по похожим именам среди оставшихся записей
	for i := 0; i < len(records); i++ {
		if grouped[i] {
			continue
		}

		group := domain.DuplicateGroup{
			Reason:  domain.DuplicateReasonSimilarName,
			Records: []domain.NameRecord{records[i]},
		}

		emailI := strings.ToLower(strings.TrimSpace(records[i].Email))

		for j := i + 1; j < len(records); j++ {
			if grouped[j] {
				continue
			}

			// Общий email означает одного клиента из разных источников,
			// а не дубликат имени
			if emailI != "" && emailI == strings.ToLower(strings.TrimSpace(records[j].Email)) {
				continue
			}

			score := NameSimilarity(records[i].Name, records[j].Name)
			if score < SimilarityThreshold {
				continue
			}

			group.Records = append(group.Records, records[j])
			grouped[j] = true
			if score > group.Score {
				group.Score = score
			}
		}

		if len(group.Records) > 1 {
			grouped[i] = true
			groups = append(groups, group)
		}
	}

	return groups
}

// NameSimilarity возвращает score похожести двух имён в диапазоне [0, 1]
// Точное совпадение (без учёта регистра) даёт 1.0, вхождение одного имени
// в другое 0.85, иначе доля общих токенов. Перестановка слов считается
// точным совпадением: "Иванов Иван" и "Иван Иванов" это один человек
func NameSimilarity(a, b string) float64 {
	na := normalizeName(a)
	nb := normalizeName(b)

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}

	tokensA := strings.Fields(na)
	tokensB := strings.Fields(nb)

	if sameTokenSet(tokensA, tokensB) {
		return 1.0
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.85
	}

	common := 0
	setA := make(map[string]struct{}, len(tokensA))
	for _, token := range tokensA {
		setA[token] = struct{}{}
	}
	for _, token := range tokensB {
		if _, ok := setA[token]; ok {
			common++
		}
	}

	return 2.0 * float64(common) / float64(len(tokensA)+len(tokensB))
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}

func sameTokenSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	sortedA := append([]string(nil), a...)
	sortedB := append([]string(nil), b...)
	sort.Strings(sortedA)
	sort.Strings(sortedB)

	for i := range sortedA {
		if sortedA[i] != sortedB[i] {
			return false
		}
	}
	return true
}

func hasDistinctNames(records []domain.NameRecord, indexes []int) bool {
	first := normalizeName(records[indexes[0]].Name)
	for _, i := range indexes[1:] {
		if normalizeName(records[i].Name) != first {
			return true
		}
	}
	return false
}
