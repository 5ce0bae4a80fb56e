package filter

import "bench-dashboard/internal/benchmark"

// Entity is one framework configuration as listed in the selection table.
type Entity struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Language    string            `json:"language"`
	Categories  map[string]string `json:"categories"`
}

func entityKey(r benchmark.Row) string {
	key := r.Name + "\x00" + r.DisplayName + "\x00" + r.Language
	for _, c := range benchmark.FilterCategories {
		key += "\x00" + r.Category(c)
	}
	return key
}

// Entities lists the distinct entities of rows in first-seen order. Two rows
// are the same entity when name, display name, language and every category match.
func Entities(rows []benchmark.Row) []Entity {
	seen := make(map[string]bool)
	var out []Entity
	for _, r := range rows {
		key := entityKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true

		cats := make(map[string]string, len(benchmark.FilterCategories))
		for _, c := range benchmark.FilterCategories {
			cats[string(c)] = r.Category(c)
		}
		out = append(out, Entity{
			ID:          r.Name,
			DisplayName: r.DisplayName,
			Language:    r.Language,
			Categories:  cats,
		})
	}
	return out
}
