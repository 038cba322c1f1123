package meta

// Merge builds the unique-by-name property list of one declaration.
//
// Failed results and records without a name or type are skipped. A record
// whose name was seen before replaces the earlier one entirely but keeps the
// earlier position.
func Merge(results []Result[Settings]) []Property {
	index := make(map[string]int)
	out := make([]Property, 0, len(results))

	for _, r := range results {
		if !r.OK() {
			continue
		}
		p := r.Value.Property()
		if !p.Valid() {
			continue
		}
		if i, ok := index[p.Name]; ok {
			out[i] = p
			continue
		}
		index[p.Name] = len(out)
		out = append(out, p)
	}

	return out
}
