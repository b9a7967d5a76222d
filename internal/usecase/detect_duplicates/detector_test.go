package detect_duplicates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func TestNameSimilarity_ExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("Иван Иванов", "иван иванов"))
}

func TestNameSimilarity_ReorderedTokens(t *testing.T) {
	// Перестановка слов это один и тот же человек
	assert.Equal(t, 1.0, NameSimilarity("Иванов Иван", "Иван Иванов"))
}

func TestNameSimilarity_Containment(t *testing.T) {
	assert.Equal(t, 0.85, NameSimilarity("Иван Иванов", "Иван"))
}

func TestNameSimilarity_CommonTokens(t *testing.T) {
	// 2 общих токена из 5 суммарных: 2*2/5 = 0.8
	assert.InDelta(t, 0.8, NameSimilarity("Иван Петрович Сидоров", "Иван Сидоров"), 0.001)
}

func TestNameSimilarity_Unrelated(t *testing.T) {
	score := NameSimilarity("Иван Иванов", "Пётр Петров")
	assert.Less(t, score, SimilarityThreshold)
}

func TestNameSimilarity_ExtraWhitespace(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("  Иван   Иванов ", "Иван Иванов"))
}

func TestNameSimilarity_Empty(t *testing.T) {
	assert.Equal(t, 0.0, NameSimilarity("", "Иван"))
}

func TestBuildGroups_SameEmailDifferentNames(t *testing.T) {
	records := []domain.NameRecord{
		{Name: "Иван Иванов", Email: "ivan@example.com", Source: domain.NameSourceBooking, Count: 3},
		{Name: "И. Иванов", Email: "IVAN@example.com", Source: domain.NameSourceInvoice, Count: 1},
	}

	groups := BuildGroups(records)

	require.Len(t, groups, 1)
	assert.Equal(t, domain.DuplicateReasonEmail, groups[0].Reason)
	assert.Equal(t, 1.0, groups[0].Score)
	assert.Len(t, groups[0].Records, 2)
}

func TestBuildGroups_SameEmailSameName_NotAGroup(t *testing.T) {
	records := []domain.NameRecord{
		{Name: "Иван Иванов", Email: "ivan@example.com", Source: domain.NameSourceBooking},
		{Name: "иван иванов", Email: "ivan@example.com", Source: domain.NameSourceInvoice},
	}

	groups := BuildGroups(records)

	assert.Empty(t, groups)
}

func TestBuildGroups_SameEmailPairSkipped_DifferentEmailStillGrouped(t *testing.T) {
	records := []domain.NameRecord{
		{Name: "Иван Иванов", Email: "ivan@example.com", Source: domain.NameSourceBooking},
		{Name: "иван иванов", Email: "ivan@example.com", Source: domain.NameSourceInvoice},
		{Name: "Иванов Иван", Email: "other@example.com", Source: domain.NameSourceBooking},
	}

	groups := BuildGroups(records)

	// Пара с общим email не группируется по имени, запись с другим
	// email группируется
	require.Len(t, groups, 1)
	assert.Equal(t, domain.DuplicateReasonSimilarName, groups[0].Reason)
	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, "ivan@example.com", groups[0].Records[0].Email)
	assert.Equal(t, "other@example.com", groups[0].Records[1].Email)
}

func TestBuildGroups_SimilarNames(t *testing.T) {
	records := []domain.NameRecord{
		{Name: "Иванов Иван", Email: "a@example.com", Source: domain.NameSourceBooking},
		{Name: "Иван Иванов", Email: "b@example.com", Source: domain.NameSourceBooking},
		{Name: "Пётр Петров", Email: "c@example.com", Source: domain.NameSourceBooking},
	}

	groups := BuildGroups(records)

	require.Len(t, groups, 1)
	assert.Equal(t, domain.DuplicateReasonSimilarName, groups[0].Reason)
	assert.Equal(t, 1.0, groups[0].Score)
	assert.Len(t, groups[0].Records, 2)
}

func TestBuildGroups_BelowThreshold_NotGrouped(t *testing.T) {
	records := []domain.NameRecord{
		{Name: "Иван Иванов", Email: "a@example.com", Source: domain.NameSourceBooking},
		{Name: "Иван Петров", Email: "b@example.com", Source: domain.NameSourceBooking},
	}

	// 1 общий токен из 4 суммарных: 0.5 < 0.7
	groups := BuildGroups(records)

	assert.Empty(t, groups)
}

func TestBuildGroups_EmailGroupExcludedFromNamePass(t *testing.T) {
	records := []domain.NameRecord{
		{Name: "Иван Иванов", Email: "ivan@example.com", Source: domain.NameSourceBooking},
		{Name: "Иванов Иван", Email: "ivan@example.com", Source: domain.NameSourceInvoice},
	}

	groups := BuildGroups(records)

	// Одна группа по email, повторной группы по имени нет
	require.Len(t, groups, 1)
	assert.Equal(t, domain.DuplicateReasonEmail, groups[0].Reason)
}

func TestBuildGroups_EmptyEmailIgnoredInEmailPass(t *testing.T) {
	records := []domain.NameRecord{
		{Name: "Иван Иванов", Email: "", Source: domain.NameSourceBooking},
		{Name: "Пётр Петров", Email: "", Source: domain.NameSourceInvoice},
	}

	groups := BuildGroups(records)

	assert.Empty(t, groups)
}
