// Package catalog 提供不可變的食材參考表，啟動時建立一次後以參照注入各服務。
package catalog

import (
	"strings"
	"sync"
)

// Category 一個分類及其食材
type Category struct {
	Name  string
	Items []string
}

// Entry 食材與其所屬分類
type Entry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Catalog 唯讀食材表，建立後不再變動，可安全地被多個 goroutine 共用
type Catalog struct {
	entries    []Entry
	index      map[string]int
	typos      map[string]string
	categories []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default 回傳內建食材表
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(defaultCategories, defaultTypos)
	})
	return defaultCatalog
}

// New 建立食材表。名稱一律轉小寫，重複出現的食材保留第一個分類；
// 與食材表成員同名的拼字修正會被忽略，確保完全相符永遠優先。
func New(categories []Category, typos map[string]string) *Catalog {
	c := &Catalog{
		index: make(map[string]int),
		typos: make(map[string]string, len(typos)),
	}

	for _, cat := range categories {
		c.categories = append(c.categories, cat.Name)
		for _, item := range cat.Items {
			name := normalize(item)
			if name == "" {
				continue
			}
			if _, exists := c.index[name]; exists {
				continue
			}
			c.index[name] = len(c.entries)
			c.entries = append(c.entries, Entry{Name: name, Category: cat.Name})
		}
	}

	for from, to := range typos {
		key := normalize(from)
		if key == "" || c.Contains(key) {
			continue
		}
		c.typos[key] = normalize(to)
	}

	return c
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Len 食材數量
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries 依分類順序回傳所有食材（副本）
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names 依分類順序回傳所有食材名稱
func (c *Catalog) Names() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Name
	}
	return out
}

// Categories 分類名稱
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Contains 是否為食材表成員
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[normalize(name)]
	return ok
}

// CategoryOf 查詢食材分類
func (c *Catalog) CategoryOf(name string) (string, bool) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return "", false
	}
	return c.entries[i].Category, true
}

// Correction 查詢拼字修正
func (c *Catalog) Correction(name string) (string, bool) {
	to, ok := c.typos[normalize(name)]
	return to, ok
}

// Typos 拼字修正表（副本）
func (c *Catalog) Typos() map[string]string {
	out := make(map[string]string, len(c.typos))
	for k, v := range c.typos {
		out[k] = v
	}
	return out
}
