package merge_names

import (
	"fmt"
	"strings"
)

// validate проверяет запрос и возвращает очищенный список вариантов
// Каноническое имя исключается из вариантов: переименовывать его в себя не нужно
func validate(req *MergeRequest) (string, []string, error) {
	canonical := strings.TrimSpace(req.CanonicalName)
	if canonical == "" {
		return "", nil, fmt.Errorf("%w: canonical name is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(req.Variants))
	variants := make([]string, 0, len(req.Variants))
	for _, variant := range req.Variants {
		name := strings.TrimSpace(variant)
		if name == "" || name == canonical {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		variants = append(variants, name)
	}

	if len(variants) == 0 {
		return "", nil, fmt.Errorf("%w: at least one variant is required", ErrInvalidInput)
	}

	return canonical, variants, nil
}
