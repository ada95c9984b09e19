//go:build ignore

// Package main generates a synthetic data directory for profiling builds.
// Usage: go run scripts/generate-test-corpus.go -repos 2000 -output testdata/bench/data
//
// The single-object collections are copied from -base; repositories, awards
// and videos are generated.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numRepos  = flag.Int("repos", 1000, "Number of repositories to generate")
	numAwards = flag.Int("awards", 200, "Number of awards to generate")
	numVideos = flag.Int("videos", 200, "Number of videos to generate")
	baseDir   = flag.String("base", "internal/content/testdata/valid", "Directory holding the fixed collections")
	outputDir = flag.String("output", "testdata/bench/data", "Output data directory")
	seed      = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var fixed = []string{
	"identity.json", "about.json", "languages.json", "education.json",
	"fields.json", "presence.json", "footer.json",
}

var (
	adjectives = []string{"fast", "tiny", "lazy", "async", "quantum", "static", "neural", "sparse", "vector", "offline"}
	nouns      = []string{"engine", "parser", "tracer", "cache", "compiler", "router", "notebook", "renderer", "solver", "index"}
	topics     = []string{"graphics", "physics", "search", "web", "compilers", "music", "robotics", "math", "games", "data"}
	stacks     = []string{"Go", "Rust", "TypeScript", "Python", "C++", "Zig", "Haskell"}
	fields     = []string{"Physics", "Mathematics", "Informatics", "Chemistry", "Astronomy"}
	medals     = []string{"Gold Medal", "Silver Medal", "Bronze Medal", "Honourable Mention"}
)

type repository struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Repo        string   `json:"repo"`
	Summary     string   `json:"summary"`
	Stack       []string `json:"stack"`
	Topics      []string `json:"topics"`
	Stars       *int     `json:"stars"`
	LastUpdated *string  `json:"lastUpdated"`
	PreviewURL  *string  `json:"previewUrl"`
}

type award struct {
	Year   int    `json:"year"`
	Field  string `json:"field"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type video struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
	VideoID  string `json:"videoId"`
	URL      string `json:"url"`
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
		os.Exit(1)
	}

	for _, name := range fixed {
		raw, err := os.ReadFile(filepath.Join(*baseDir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", name, err)
			os.Exit(1)
		}
		if err := os.WriteFile(filepath.Join(*outputDir, name), raw, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	collections := map[string]any{
		"repositories.json": generateRepos(rng, *numRepos),
		"awards.json":       generateAwards(rng, *numAwards),
		"videos.json":       generateVideos(rng, *numVideos),
	}
	for name, v := range collections {
		if err := writeJSON(filepath.Join(*outputDir, name), v); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generated %d repositories, %d awards, %d videos in %s\n",
		*numRepos, *numAwards, *numVideos, *outputDir)
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func pickN(rng *rand.Rand, pool []string, n int) []string {
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

func generateRepos(rng *rand.Rand, n int) []repository {
	repos := make([]repository, 0, n)
	for i := 0; i < n; i++ {
		adj, noun := pick(rng, adjectives), pick(rng, nouns)
		slug := fmt.Sprintf("%s-%s-%d", adj, noun, i)
		r := repository{
			Slug:    slug,
			Name:    strings.Title(adj) + " " + strings.Title(noun), //nolint:staticcheck // ASCII words only
			Repo:    "ada/" + slug,
			Summary: fmt.Sprintf("A %s %s for %s", adj, noun, pick(rng, topics)),
			Stack:   pickN(rng, stacks, 1+rng.Intn(2)),
			Topics:  pickN(rng, topics, 1+rng.Intn(3)),
		}
		if rng.Intn(4) > 0 {
			stars := rng.Intn(5000)
			updated := fmt.Sprintf("20%02d-%02d-%02d", 15+rng.Intn(12), 1+rng.Intn(12), 1+rng.Intn(28))
			r.Stars, r.LastUpdated = &stars, &updated
		}
		repos = append(repos, r)
	}
	return repos
}

func generateAwards(rng *rand.Rand, n int) []award {
	awards := make([]award, 0, n)
	// Award ids are built from year, field and title; distinct years keep them unique.
	for i := 0; i < n; i++ {
		awards = append(awards, award{
			Year:   2025 - i,
			Field:  pick(rng, fields),
			Title:  pick(rng, medals),
			Detail: fmt.Sprintf("Olympiad round %d", i),
		})
	}
	return awards
}

func generateVideos(rng *rand.Rand, n int) []video {
	videos := make([]video, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("vid%08d", rng.Intn(100000000))
		videos = append(videos, video{
			Slug:     fmt.Sprintf("%s-%d", pick(rng, nouns), i),
			Title:    fmt.Sprintf("Building a %s %s", pick(rng, adjectives), pick(rng, nouns)),
			Platform: "YouTube",
			VideoID:  id,
			URL:      "https://youtube.com/watch?v=" + id,
		})
	}
	return videos
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}
