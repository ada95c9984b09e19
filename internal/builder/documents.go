package builder

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/wiqnnc/wiki/internal/content"
	"github.com/wiqnnc/wiki/internal/search"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s, collapses runs of other characters into one hyphen and
// trims hyphens from both ends: "Machine Learning!" becomes "machine-learning".
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// Keywords stringifies values, dropping empty strings, zero numbers, false
// and nil.
func Keywords(values ...any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch v := v.(type) {
		case nil:
		case string:
			if v != "" {
				out = append(out, v)
			}
		case []string:
			out = append(out, Keywords(toAny(v)...)...)
		case bool:
			if v {
				out = append(out, "true")
			}
		case int:
			if v != 0 {
				out = append(out, strconv.Itoa(v))
			}
		case int64:
			if v != 0 {
				out = append(out, strconv.FormatInt(v, 10))
			}
		case float64:
			if v != 0 && !math.IsNaN(v) {
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			}
		case fmt.Stringer:
			if s := v.String(); s != "" {
				out = append(out, s)
			}
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// Documents maps the content collections onto search documents. The order is
// fixed so repeated builds produce identical indexes.
func Documents(data *content.Data) []search.Document {
	docs := make([]search.Document, 0, 16)
	id := data.Identity

	docs = append(docs, search.Document{
		ID:          "identity",
		Type:        search.TypeIdentity,
		Title:       id.FullName,
		Description: fmt.Sprintf("%s · %s · Born %s", id.Location, id.Pronouns, id.BirthDate),
		Route:       "/bio",
		Badges:      []string{"Bio"},
		Keywords:    Keywords(id.PreferredName, id.Motto, id.Location, id.Pronouns),
	})

	docs = append(docs, search.Document{
		ID:          "motto",
		Type:        search.TypeMotto,
		Title:       id.Motto,
		Description: data.About.Headline,
		Route:       "/",
		Badges:      []string{"Quote"},
		Keywords:    Keywords(id.FullName, id.Location, "motto"),
	})

	for i, paragraph := range data.About.Paragraphs {
		docs = append(docs, search.Document{
			ID:          "about-" + strconv.Itoa(i),
			Type:        search.TypeAbout,
			Title:       data.About.Headline,
			Description: paragraph,
			Route:       "/bio",
			Badges:      []string{"About"},
			Keywords:    Keywords(data.About.IdentityFocus),
		})
	}

	for _, field := range data.Fields {
		docs = append(docs, search.Document{
			ID:          "field-" + Slug(field),
			Type:        search.TypeField,
			Title:       field,
			Description: "Area of focus: " + field,
			Route:       "/projects",
			Badges:      []string{"Focus"},
			Keywords:    Keywords(field, "interest"),
		})
	}

	for _, l := range data.Languages {
		docs = append(docs, search.Document{
			ID:          "language-" + strings.ToLower(l.Language),
			Type:        search.TypeLanguage,
			Title:       l.Language + " · " + l.Proficiency,
			Description: l.Notes,
			Route:       "/bio",
			Badges:      []string{"Language"},
			Keywords:    Keywords(l.Language, l.Proficiency, l.Notes),
		})
	}

	for _, e := range data.Education {
		docs = append(docs, search.Document{
			ID:          "education-" + e.Years,
			Type:        search.TypeEducation,
			Title:       e.Institution,
			Description: e.Stage + " · " + e.Years,
			Route:       "/bio",
			Badges:      []string{"Education"},
			Keywords:    Keywords(e.Stage, e.Notes, e.Years),
		})
	}

	for _, a := range data.Awards {
		docs = append(docs, search.Document{
			ID:          fmt.Sprintf("award-%d-%s-%s", a.Year, a.Field, a.Title),
			Type:        search.TypeAward,
			Title:       a.Title + " · " + a.Field,
			Description: fmt.Sprintf("%s (%d)", a.Detail, a.Year),
			Route:       "/awards",
			Badges:      []string{"Award"},
			Keywords:    Keywords(a.Field, a.Detail, a.Year),
		})
	}

	for _, r := range data.Repositories {
		description := r.Summary
		if description == "" {
			description = "GitHub repo " + r.Repo
		}
		docs = append(docs, search.Document{
			ID:          "repo-" + r.Slug,
			Type:        search.TypeRepository,
			Title:       r.Name,
			Description: description,
			Route:       "/repos#" + r.Slug,
			Badges:      []string{"Repo"},
			Keywords:    Keywords(r.Repo, r.Topics),
		})
	}

	for _, v := range data.Videos {
		docs = append(docs, search.Document{
			ID:          "video-" + v.Slug,
			Type:        search.TypeMedia,
			Title:       v.Title,
			Description: "YouTube ID " + v.VideoID,
			Route:       "/media",
			Badges:      []string{"Video"},
			Keywords:    Keywords(v.Platform, v.VideoID),
		})
	}

	p := data.Presence
	docs = append(docs, search.Document{
		ID:          "presence-github",
		Type:        search.TypePresence,
		Title:       "GitHub · @" + p.GitHub.Handle,
		Description: p.GitHub.URL,
		Route:       "/repos",
		Badges:      []string{"Presence"},
		Keywords:    Keywords("GitHub", p.GitHub.Handle),
	})
	for _, account := range p.Instagram {
		docs = append(docs, search.Document{
			ID:          "presence-instagram-" + account.Handle,
			Type:        search.TypePresence,
			Title:       "Instagram · @" + account.Handle,
			Description: account.URL,
			Route:       "/media",
			Badges:      []string{"Presence"},
			Keywords:    Keywords("Instagram", account.Handle),
		})
	}
	docs = append(docs, search.Document{
		ID:          "presence-youtube",
		Type:        search.TypePresence,
		Title:       "YouTube · " + p.YouTube.Handle,
		Description: p.YouTube.URL,
		Route:       "/media",
		Badges:      []string{"Presence"},
		Keywords:    Keywords("YouTube", p.YouTube.Handle),
	})

	return docs
}
