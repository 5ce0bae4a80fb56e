package benchmark

// Store holds the enriched dataset. It is built once and never mutated;
// every accessor hands out copies.
type Store struct {
	rows []Row
}

func NewStore(rows []Row) *Store {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return &Store{rows: cp}
}

func (s *Store) Rows() []Row {
	cp := make([]Row, len(s.rows))
	copy(cp, s.rows)
	return cp
}

func (s *Store) Len() int {
	return len(s.rows)
}

// Languages lists distinct languages in first-seen order.
func (s *Store) Languages() []string {
	return s.CategoryValues(CategoryLanguage)
}

// CategoryValues lists the distinct values of a category in first-seen order.
func (s *Store) CategoryValues(c Category) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range s.rows {
		v := r.Category(c)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// Levels lists the distinct levels measured for a scenario.
func (s *Store) Levels(scenario Scenario) []float64 {
	seen := make(map[float64]bool)
	var levels []float64
	for _, r := range s.rows {
		if r.Scenario != scenario || seen[r.Level] {
			continue
		}
		seen[r.Level] = true
		levels = append(levels, r.Level)
	}
	return levels
}

func (s *Store) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range s.rows {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		names = append(names, r.Name)
	}
	return names
}

// DisplayNames maps each name to the display name of its first row.
func (s *Store) DisplayNames() map[string]string {
	out := make(map[string]string)
	for _, r := range s.rows {
		if _, ok := out[r.Name]; !ok {
			out[r.Name] = r.DisplayName
		}
	}
	return out
}
