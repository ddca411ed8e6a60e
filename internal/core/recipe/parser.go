package recipe

import (
	"strings"
)

// state 解析狀態
type state int

const (
	stateNone state = iota
	stateTitle
	stateIngredients
	stateInstructions
)

// lineKind 單行的分類結果
type lineKind int

const (
	kindText lineKind = iota
	kindTitle
	kindLegacyTitle
	kindIngredientsHeader
	kindInstructionsHeader
	kindOtherHeader
)

var sectionNames = map[string]bool{
	"ingredients":  true,
	"instructions": true,
	"tips":         true,
	"directions":   true,
	"steps":        true,
}

// isTitleLine 以 "# " 開頭、不是段落名稱、長度大於 5 且含空白
func isTitleLine(line string) bool {
	if !strings.HasPrefix(line, "# ") {
		return false
	}
	text := titleText(line)
	if sectionNames[strings.ToLower(text)] {
		return false
	}
	return len(text) > 5 && strings.Contains(text, " ")
}

// titleText 去掉標題前後的 # 與 *
func titleText(line string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimLeft(line, "#"), "* "))
}

func isIngredientsHeader(lower string) bool {
	return strings.HasPrefix(lower, "## ingredients") || strings.HasPrefix(lower, "ingredients:")
}

func isInstructionsHeader(lower string) bool {
	return strings.HasPrefix(lower, "## instructions") ||
		strings.HasPrefix(lower, "## directions") ||
		strings.HasPrefix(lower, "## steps") ||
		strings.HasPrefix(lower, "instructions:")
}

// isOtherSectionHeader 其他二級標題，例如 Tips
func isOtherSectionHeader(lower string) bool {
	return strings.HasPrefix(lower, "## ") && !isIngredientsHeader(lower) && !isInstructionsHeader(lower)
}

// legacyTitle 解析 "Title: [name]" 格式
func legacyTitle(line string) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(line), "title:") {
		return "", false
	}
	title := strings.TrimSpace(line[len("title:"):])
	if strings.HasPrefix(title, "[") && strings.HasSuffix(title, "]") && len(title) >= 2 {
		title = strings.TrimSpace(title[1 : len(title)-1])
	}
	return title, true
}

// headerContent 段落標題行冒號後的內容
func headerContent(line string) string {
	i := strings.Index(line, ":")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(line[i+1:])
}

// splitIngredients 去掉項目符號後以逗號或分號拆開，略過佔位用的 [..]
func splitIngredients(line string) []string {
	text := strings.TrimSpace(line)
	for _, bullet := range []string{"-", "*", "•"} {
		if strings.HasPrefix(text, bullet) {
			text = strings.TrimSpace(text[len(bullet):])
			break
		}
	}

	parts := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "[") || strings.HasSuffix(part, "]") {
			continue
		}
		out = append(out, part)
	}
	return out
}

func classify(line string, titleSet bool) lineKind {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "title:"):
		return kindLegacyTitle
	case isIngredientsHeader(lower):
		return kindIngredientsHeader
	case isInstructionsHeader(lower):
		return kindInstructionsHeader
	case isOtherSectionHeader(lower):
		return kindOtherHeader
	case !titleSet && isTitleLine(line):
		return kindTitle
	}
	return kindText
}

// transition 狀態轉移，內容行與 Title: 行維持目前狀態
func transition(s state, k lineKind) state {
	switch k {
	case kindTitle:
		return stateTitle
	case kindIngredientsHeader:
		return stateIngredients
	case kindInstructionsHeader:
		return stateInstructions
	case kindOtherHeader:
		return stateNone
	}
	return s
}

// Parse 將提供者回傳的文字解析為食譜，不會回傳錯誤
func Parse(raw string, originalIngredients []string, providerID string) GeneratedRecipe {
	if strings.TrimSpace(raw) == "" {
		r := ErrorRecipe(parseErrorMessage)
		r.MarkdownContent = raw
		r.AIModelUsed = providerID
		return r
	}

	var (
		s            = stateNone
		title        string
		titleSet     bool
		ingredients  []string
		instructions []string
	)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		kind := classify(line, titleSet)
		s = transition(s, kind)

		switch kind {
		case kindTitle:
			title = titleText(line)
			titleSet = true
		case kindLegacyTitle:
			if t, ok := legacyTitle(line); ok && t != "" {
				title = t
				titleSet = true
			}
		case kindIngredientsHeader:
			if content := headerContent(line); content != "" {
				ingredients = append(ingredients, splitIngredients(content)...)
			}
		case kindInstructionsHeader:
			if content := headerContent(line); content != "" {
				instructions = append(instructions, content)
			}
		case kindText:
			switch s {
			case stateIngredients:
				ingredients = append(ingredients, splitIngredients(line)...)
			case stateInstructions:
				instructions = append(instructions, line)
			}
		}
	}

	if title == "" {
		title = DefaultTitle
	}
	if len(ingredients) == 0 {
		ingredients = append([]string{}, originalIngredients...)
	}
	text := strings.Join(instructions, "\n")
	if text == "" {
		text = MissingInstructions
	}

	return GeneratedRecipe{
		Title:           title,
		Ingredients:     ingredients,
		Instructions:    text,
		MarkdownContent: raw,
		AIModelUsed:     providerID,
	}
}

// ExtractTitle 取第一個符合標題規則的行，規則與 Parse 相同
func ExtractTitle(markdown string) (string, bool) {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if isTitleLine(line) {
			return titleText(line), true
		}
	}
	return "", false
}
