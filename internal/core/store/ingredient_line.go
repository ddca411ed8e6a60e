package store

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// IngredientLine 從一行食材拆出的數量、單位與名稱
type IngredientLine struct {
	Quantity    *float64
	Unit        string
	Name        string
	Preparation string
}

var units = map[string]string{
	"cup": "cup", "cups": "cup", "c": "cup",
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsp": "tbsp", "tbs": "tbsp",
	"teaspoon": "tsp", "teaspoons": "tsp", "tsp": "tsp",
	"gram": "g", "grams": "g", "g": "g",
	"kilogram": "kg", "kilograms": "kg", "kg": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"piece": "piece", "pieces": "piece",
	"clove": "clove", "cloves": "clove",
	"slice": "slice", "slices": "slice",
	"can": "can", "cans": "can",
	"pinch": "pinch", "dash": "dash",
	"bunch": "bunch", "handful": "handful",
}

var unicodeFractions = map[rune]float64{
	'½': 0.5, '⅓': 1.0 / 3, '⅔': 2.0 / 3, '¼': 0.25, '¾': 0.75, '⅛': 0.125,
}

// ParseIngredientLine 盡力拆出開頭的 <數量> <單位>，數量無法解析時整行都當作名稱
func ParseIngredientLine(line string) IngredientLine {
	text := strings.ToLower(strings.TrimSpace(line))
	text = strings.TrimLeft(text, "-*• ")

	var out IngredientLine
	if name, prep, ok := strings.Cut(text, ","); ok {
		text = strings.TrimSpace(name)
		out.Preparation = strings.TrimSpace(prep)
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return out
	}

	qty, ok := parseQuantity(fields[0])
	if !ok {
		out.Name = strings.Join(fields, " ")
		return out
	}
	fields = fields[1:]

	// 「1 1/2 cups」
	if len(fields) > 0 {
		if frac, ok := parseQuantity(fields[0]); ok && frac < 1 {
			qty += frac
			fields = fields[1:]
		}
	}
	out.Quantity = &qty

	if len(fields) > 1 {
		if unit, ok := units[strings.TrimSuffix(fields[0], ".")]; ok {
			out.Unit = unit
			fields = fields[1:]
			if fields[0] == "of" && len(fields) > 1 {
				fields = fields[1:]
			}
		}
	}

	out.Name = strings.Join(fields, " ")
	if out.Name == "" {
		// 只有數字，保留原文
		out.Quantity = nil
		out.Unit = ""
		out.Name = text
	}
	return out
}

func parseQuantity(tok string) (float64, bool) {
	if utf8.RuneCountInString(tok) == 1 {
		r, _ := utf8.DecodeRuneInString(tok)
		if v, ok := unicodeFractions[r]; ok {
			return v, true
		}
	}

	if tok == "" || tok[0] < '0' || tok[0] > '9' {
		return 0, false
	}

	if num, den, ok := strings.Cut(tok, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
