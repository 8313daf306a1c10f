package onboarding

import (
	"sort"
	"strings"
)

// parseOrderBy は "-field" 形式の並び順指定を分解します。
func parseOrderBy(orderBy string) (field string, desc bool) {
	trimmed := strings.TrimSpace(orderBy)
	if strings.HasPrefix(trimmed, "-") {
		return trimmed[1:], true
	}
	return trimmed, false
}

// sortByKey は field が sortable と一致する場合のみ key で安定ソートします。
// ISO-8601 文字列は辞書順が時系列順と一致します。
func sortByKey[T any](list []T, orderBy, sortable string, key func(T) string) {
	field, desc := parseOrderBy(orderBy)
	if field != sortable {
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return key(list[i]) > key(list[j])
		}
		return key(list[i]) < key(list[j])
	})
}
