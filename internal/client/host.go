package client

import "strings"

// MaxSuggestions is the number of suggestions shown at once.
const MaxSuggestions = 6

// QuickLink is a static navigation shortcut shown next to the search box.
type QuickLink struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
	Badge string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// HostConfig is the display-only configuration a host passes alongside a
// session. None of it is indexed.
type HostConfig struct {
	QuickLinks  []QuickLink `yaml:"quicklinks" json:"quicklinks"`
	Suggestions []string    `yaml:"suggestions" json:"suggestions"`
}

// FilterSuggestions returns up to MaxSuggestions entries containing query,
// case-insensitively. A blank query returns the first entries unfiltered.
func FilterSuggestions(query string, suggestions []string) []string {
	if strings.TrimSpace(query) == "" {
		return head(suggestions, MaxSuggestions)
	}
	lower := strings.ToLower(query)
	out := make([]string, 0, MaxSuggestions)
	for _, s := range suggestions {
		if strings.Contains(strings.ToLower(s), lower) {
			out = append(out, s)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) < n {
		n = len(s)
	}
	out := make([]string, n)
	copy(out, s[:n])
	return out
}
