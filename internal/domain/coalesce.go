package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IntOrDefault dereferences p, or returns fallback when p is nil.
func IntOrDefault(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}
