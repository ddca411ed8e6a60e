package validator

import "encoding/json"

// Source 驗證結果來源
type Source string

const (
	SourceTypoCorrection Source = "typo_correction"
	SourceExact          Source = "exact"
	SourceFuzzyMatch     Source = "fuzzy_match"
	SourceExternal       Source = "external_search"
	SourceNone           Source = "none"
)

// Outcome 驗證結果的種類，只有本套件內的型別能實作
type Outcome interface {
	Source() Source
	isOutcome()
}

// TypoCorrection 命中拼字修正表
type TypoCorrection struct {
	Corrected string
}

// ExactMatch 為食材表成員
type ExactMatch struct {
	Name string
}

// FuzzyMatch 相似度達門檻，Score 為 0–100
type FuzzyMatch struct {
	Corrected   string
	Score       int
	Suggestions []string
}

// ExternalMatch 外部食品資料庫認定為食材
type ExternalMatch struct {
	Name       string
	Indicators float64
}

// NoMatch 無法辨識，附上最接近的候選
type NoMatch struct {
	Suggestions []string
}

func (TypoCorrection) Source() Source { return SourceTypoCorrection }
func (ExactMatch) Source() Source     { return SourceExact }
func (FuzzyMatch) Source() Source     { return SourceFuzzyMatch }
func (ExternalMatch) Source() Source  { return SourceExternal }
func (NoMatch) Source() Source        { return SourceNone }

func (TypoCorrection) isOutcome() {}
func (ExactMatch) isOutcome()     {}
func (FuzzyMatch) isOutcome()     {}
func (ExternalMatch) isOutcome()  {}
func (NoMatch) isOutcome()        {}

// Confidence 外部比對的信心值
func (m ExternalMatch) Confidence() float64 {
	c := 0.8 + m.Indicators*0.05
	if c > 0.95 {
		return 0.95
	}
	return c
}

// Result 單一食材的驗證結果
type Result struct {
	Original string
	Outcome  Outcome
}

// IsValid 是否為可接受的食材
func (r Result) IsValid() bool {
	switch r.Outcome.(type) {
	case TypoCorrection, ExactMatch, FuzzyMatch, ExternalMatch:
		return true
	}
	return false
}

// Corrected 修正後名稱，無效時為 nil
func (r Result) Corrected() *string {
	var s string
	switch o := r.Outcome.(type) {
	case TypoCorrection:
		s = o.Corrected
	case ExactMatch:
		s = o.Name
	case FuzzyMatch:
		s = o.Corrected
	case ExternalMatch:
		s = o.Name
	default:
		return nil
	}
	return &s
}

// Confidence 信心值 [0,1]
func (r Result) Confidence() float64 {
	switch o := r.Outcome.(type) {
	case TypoCorrection:
		return 0.95
	case ExactMatch:
		return 1.0
	case FuzzyMatch:
		return float64(o.Score) / 100.0
	case ExternalMatch:
		return o.Confidence()
	}
	return 0
}

// Suggestions 其他候選，最多三個
func (r Result) Suggestions() []string {
	var s []string
	switch o := r.Outcome.(type) {
	case FuzzyMatch:
		s = o.Suggestions
	case NoMatch:
		s = o.Suggestions
	}
	if s == nil {
		return []string{}
	}
	return s
}

// Source 結果來源
func (r Result) Source() Source {
	if r.Outcome == nil {
		return SourceNone
	}
	return r.Outcome.Source()
}

type resultJSON struct {
	Original    string   `json:"original"`
	IsValid     bool     `json:"is_valid"`
	Corrected   *string  `json:"corrected"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
	Source      Source   `json:"source"`
}

// MarshalJSON 輸出 API 使用的扁平結構
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Original:    r.Original,
		IsValid:     r.IsValid(),
		Corrected:   r.Corrected(),
		Confidence:  r.Confidence(),
		Suggestions: r.Suggestions(),
		Source:      r.Source(),
	})
}
