package artifact

import (
	"strings"
)

// extract.go
// Defensive field access for the schemaless discovery payload. Every accessor
// takes a list of candidate dot-paths and returns the first non-null match,
// mirroring how upstream generators move fields around between versions.

// StringAt returns the first string found at any of the candidate paths.
func (d Discovery) StringAt(paths ...string) (string, bool) {
	for _, path := range paths {
		if v, ok := d.valueAt(path); ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// NumberAt returns the first numeric value found at any of the candidate
// paths. JSON decoding yields float64, but ints show up from in-process
// callers, so both are handled.
func (d Discovery) NumberAt(paths ...string) (float64, bool) {
	for _, path := range paths {
		v, ok := d.valueAt(path)
		if !ok {
			continue
		}
		switch num := v.(type) {
		case float64:
			return num, true
		case float32:
			return float64(num), true
		case int:
			return float64(num), true
		case int64:
			return float64(num), true
		}
	}
	return 0, false
}

// StringsAt returns the first string slice found at any of the candidate paths.
func (d Discovery) StringsAt(paths ...string) ([]string, bool) {
	for _, path := range paths {
		v, ok := d.valueAt(path)
		if !ok {
			continue
		}
		switch list := v.(type) {
		case []string:
			if len(list) > 0 {
				return list, true
			}
		case []interface{}:
			out := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out, true
			}
		}
	}
	return nil, false
}

// valueAt traverses one dot-separated path through nested maps.
func (d Discovery) valueAt(path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var current interface{} = map[string]interface{}(d)
	for _, part := range parts {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// NormalizeFraction maps a percentage given on the 0–100 scale into 0–1.
// Only values above 2 are treated as percent form: a value in (1, 2] is a
// fractional claim above unity, and rescaling it would hide the conservation
// violation from the limit checks.
func NormalizeFraction(v float64) float64 {
	if v > 2.0 {
		return v / 100.0
	}
	return v
}

// Title returns the artifact's display title across known field spellings.
func (d Discovery) Title() string {
	s, _ := d.StringAt("title", "name", "discovery.title")
	return s
}

// Description returns the free-text body of the claim.
func (d Discovery) Description() string {
	s, _ := d.StringAt("description", "summary", "abstract", "discovery.description")
	return s
}

// Domain returns the scientific domain tag (e.g. "solar", "wind", "battery").
func (d Discovery) Domain() string {
	s, _ := d.StringAt("domain", "category", "field", "discovery.domain")
	return s
}

// Claims returns the enumerated quantitative/qualitative claims, if any.
func (d Discovery) Claims() []string {
	list, _ := d.StringsAt("claims", "key_claims", "discovery.claims")
	return list
}

// Materials returns the materials list, if declared.
func (d Discovery) Materials() []string {
	list, _ := d.StringsAt("materials", "components", "discovery.materials")
	return list
}

// Technology returns the technology/architecture label, if declared.
func (d Discovery) Technology() string {
	s, _ := d.StringAt("technology", "architecture", "tech", "discovery.technology")
	return s
}

// ContextText concatenates every free-text hint used for domain and
// architecture keyword detection.
func (d Discovery) ContextText() string {
	var parts []string
	if t := d.Title(); t != "" {
		parts = append(parts, t)
	}
	if desc := d.Description(); desc != "" {
		parts = append(parts, desc)
	}
	if dom := d.Domain(); dom != "" {
		parts = append(parts, dom)
	}
	if tech := d.Technology(); tech != "" {
		parts = append(parts, tech)
	}
	parts = append(parts, d.Claims()...)
	return strings.ToLower(strings.Join(parts, " "))
}

// ContainsKeyword reports whether any of the keywords appears in the
// artifact's combined context text.
func (d Discovery) ContainsKeyword(keywords ...string) bool {
	text := d.ContextText()
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
