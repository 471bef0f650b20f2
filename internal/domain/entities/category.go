package entities

import (
	"fmt"
	"strings"
)

// Category is a reaction button: an emoji and its fixed name
type Category struct {
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

// DefaultCategories is the fixed, ordered set of reactions used for pivoting
var DefaultCategories = []Category{
	{Emoji: "👍", Name: "Thumbs Up"},
	{Emoji: "❤️", Name: "Heart"},
	{Emoji: "😂", Name: "Laugh"},
	{Emoji: "👏", Name: "Clap"},
	{Emoji: "😮", Name: "Surprised"},
	{Emoji: "🤔", Name: "Thinking"},
	{Emoji: "✋", Name: "Raise Hand"},
	{Emoji: "👎", Name: "Thumbs Down"},
}

// CategoryNames returns the names in order
func CategoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// FindCategory looks up a category by name
func FindCategory(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// ParseCategories parses "emoji:Name" pairs separated by commas.
// A pair without an emoji ("Name") is accepted.
func ParseCategories(value string) ([]Category, error) {
	var categories []Category
	seen := make(map[string]bool)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var c Category
		if emoji, name, ok := strings.Cut(part, ":"); ok {
			c = Category{Emoji: strings.TrimSpace(emoji), Name: strings.TrimSpace(name)}
		} else {
			c = Category{Name: part}
		}
		if c.Name == "" {
			return nil, fmt.Errorf("category %q has no name", part)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate category %q", c.Name)
		}
		seen[c.Name] = true
		categories = append(categories, c)
	}
	return categories, nil
}
