package structmap

// resolveKey finds the raw value for a field in the source mapping.
//
// An explicit tag key pins the lookup: it is tried alone and a miss is a
// KeyNotFound carrying that key. Otherwise the derived snake_case name is
// tried first, then its alternate-cased form (camelCase by default). The
// fallback exists because the same struct type is routinely populated from
// sources with different key-casing conventions; no further guessing is
// done, and when both forms are present the snake_case form wins.
//
// The resolved key is returned alongside the value for diagnostics and
// debug logging.
func (d *Decoder) resolveKey(f *field, source map[string]any) (any, string, error) {
	if f.key != "" {
		raw, ok := source[f.key]
		if !ok {
			return nil, "", newKeyNotFoundError(f)
		}
		return raw, f.key, nil
	}

	if raw, ok := source[f.snakeName]; ok {
		return raw, f.snakeName, nil
	}

	alt := d.keyCase(f.snakeName)
	if raw, ok := source[alt]; ok {
		return raw, alt, nil
	}

	return nil, "", newKeyNotFoundError(f)
}
