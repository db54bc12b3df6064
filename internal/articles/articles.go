// Package articles holds the curated daily reading list.
package articles

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed reading_list.yaml
var defaultList []byte

type Article struct {
	Title       string `yaml:"title" json:"title"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description" json:"description"`
}

// List is an ordered, non-empty reading list.
type List struct {
	entries []Article
}

// Default returns the built-in reading list.
func Default() *List {
	l, err := parse(defaultList)
	if err != nil {
		panic(fmt.Sprintf("articles: embedded reading list: %v", err))
	}
	return l
}

// Load reads a YAML reading list from path. An empty path yields Default.
func Load(path string) (*List, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reading list: %w", err)
	}
	l, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func parse(data []byte) (*List, error) {
	var entries []Article
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse reading list: %w", err)
	}
	for i, a := range entries {
		if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.URL) == "" {
			return nil, fmt.Errorf("entry %d: title and url are required", i)
		}
	}
	if len(entries) == 0 {
		return nil, errors.New("reading list is empty")
	}
	return &List{entries: entries}, nil
}

func (l *List) Len() int { return len(l.entries) }

// Daily rotates through the list by day of year, so every caller on the
// same day gets the same article.
func (l *List) Daily(day time.Time) Article {
	return l.entries[day.YearDay()%len(l.entries)]
}

func (l *List) Random() Article {
	return l.entries[rand.IntN(len(l.entries))]
}

// Format renders an article as a chat message block.
func Format(a Article) string {
	return fmt.Sprintf(":book: *Daily Read (10-15 min):*\n<%s|%s>\n_%s_", a.URL, a.Title, a.Description)
}
