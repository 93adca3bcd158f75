package output

// Table collects rows whose column sets may differ. Columns are the union of
// all row columns in order of first appearance; rows whose key column repeats
// an earlier row are dropped.
type Table struct {
	key     string
	columns []string
	known   map[string]bool
	rows    []map[string]string
	seen    map[string]bool
	dropped int
}

func NewTable(key string) *Table {
	return &Table{
		key:   key,
		known: map[string]bool{},
		seen:  map[string]bool{},
	}
}

// Add appends a row given as ordered (column, value) pairs. It reports
// false when the row was a duplicate and got dropped.
func (t *Table) Add(fields [][2]string) bool {
	row := make(map[string]string, len(fields))
	for _, f := range fields {
		row[f[0]] = f[1]
	}

	k := row[t.key]
	if t.seen[k] {
		t.dropped++
		return false
	}
	t.seen[k] = true

	for _, f := range fields {
		if !t.known[f[0]] {
			t.known[f[0]] = true
			t.columns = append(t.columns, f[0])
		}
	}
	t.rows = append(t.rows, row)
	return true
}

func (t *Table) Len() int     { return len(t.rows) }
func (t *Table) Dropped() int { return t.dropped }
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Records returns the rows aligned to Columns; absent cells are "".
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		rec := make([]string, len(t.columns))
		for i, c := range t.columns {
			rec[i] = row[c]
		}
		out = append(out, rec)
	}
	return out
}
