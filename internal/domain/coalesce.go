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

// StatusPtr returns a pointer to s, or nil when s is empty.
func StatusPtr(s RecordStatus) *RecordStatus {
	if s == "" {
		return nil
	}
	return &s
}
