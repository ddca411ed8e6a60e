package recipe

import "strings"

const minCompleteLength = 100

var stepMarkers = []string{"1.", "2.", "3.", "4.", "5."}

// IsComplete 檢查回應是否像一份完整的食譜，只作為記錄用途
func IsComplete(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < minCompleteLength || !strings.Contains(t, "#") {
		return false
	}

	lower := strings.ToLower(t)
	if !strings.Contains(lower, "## ingredients") || !strings.Contains(lower, "## instructions") {
		return false
	}

	hasStep := false
	for _, m := range stepMarkers {
		if strings.Contains(t, m) {
			hasStep = true
			break
		}
	}
	if !hasStep {
		return false
	}

	if strings.HasSuffix(t, "...") || strings.HasSuffix(t, "…") {
		return false
	}

	// 最後一行是標題代表被截斷
	lastLine := t
	if i := strings.LastIndex(t, "\n"); i >= 0 {
		lastLine = strings.TrimSpace(t[i+1:])
	}
	return !strings.HasPrefix(lastLine, "#")
}
