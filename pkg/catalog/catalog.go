package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// Category はカテゴリ名とそのトピック一覧なのだ。
type Category struct {
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

// Catalog はトピックとリアクションの静的な分類表です。
// 生成後は読み取り専用で、複数のゴルーチンから同時に参照しても安全なのだ。
type Catalog struct {
	categories []Category
	reactions  []string
}

type catalogFile struct {
	Categories []Category `json:"categories"`
	Reactions  []string   `json:"reactions"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default は組み込みのカタログを返します。
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogJSON)
		if err != nil {
			panic(fmt.Sprintf("組み込みカタログが不正なのだ: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load は指定されたJSONファイルからカタログを読み込むのだ。
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("カタログファイルの読み込みに失敗したのだ: %w", err)
	}
	return Parse(data)
}

// Parse はJSONバイト列からカタログを構築し、空でないことを検証します。
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("カタログのデコードに失敗したのだ: %w", err)
	}
	return New(f.Categories, f.Reactions)
}

// New はカテゴリとリアクションからカタログを生成します。
// 空白のみの要素は取り除き、結果が空になるカテゴリは捨てるのだ。
func New(categories []Category, reactions []string) (*Catalog, error) {
	c := &Catalog{}
	for _, cat := range categories {
		topics := compact(cat.Topics)
		if len(topics) == 0 {
			continue
		}
		c.categories = append(c.categories, Category{Name: strings.TrimSpace(cat.Name), Topics: topics})
	}
	c.reactions = compact(reactions)

	if len(c.categories) == 0 {
		return nil, errors.New("カタログにトピックを持つカテゴリが1つもないのだ")
	}
	if len(c.reactions) == 0 {
		return nil, errors.New("カタログにリアクションが1つもないのだ")
	}
	return c, nil
}

// Categories はカテゴリ一覧のコピーを返すのだ。
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Topics: append([]string(nil), cat.Topics...)}
	}
	return out
}

// Reactions はリアクション一覧のコピーを返すのだ。
func (c *Catalog) Reactions() []string {
	return append([]string(nil), c.reactions...)
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
