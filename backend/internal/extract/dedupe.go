package extract

// Dedupe keeps one record per username. A later duplicate replaces the
// earlier record's contents but the key keeps the slot where it first
// appeared, like rebuilding an insertion-ordered map.
func Dedupe(records []UserRecord) []UserRecord {
	if len(records) == 0 {
		return nil
	}

	index := make(map[string]int, len(records))
	out := make([]UserRecord, 0, len(records))

	for _, rec := range records {
		if i, seen := index[rec.Username]; seen {
			out[i] = rec
			continue
		}
		index[rec.Username] = len(out)
		out = append(out, rec)
	}

	return out
}
