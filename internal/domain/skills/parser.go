package skills

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Match is a dictionary skill detected in a text.
type Match struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Category string `json:"category"`
	Required bool   `json:"required"`
	Count    int    `json:"count"`

	first int
}

type pattern struct {
	entry   Entry
	slug    string
	trusted *regexp.Regexp
	guarded *regexp.Regexp
}

// Parser matches a dictionary against free text. It is safe for concurrent use.
type Parser struct {
	patterns []pattern
	bySlug   map[string]int
}

var optionalMarkers = []string{
	"souhaite", "apprecie", "un plus", "un atout", "serait un", "idealement",
	"optionnel", "nice to have", "is a plus", "would be a plus", "bonus", "eventuellement",
}

var (
	defaultOnce   sync.Once
	defaultParser *Parser
)

// Default returns a parser over the built-in dictionary, compiled once.
func Default() *Parser {
	defaultOnce.Do(func() {
		defaultParser = NewParser(dictionary)
	})
	return defaultParser
}

func NewParser(entries []Entry) *Parser {
	p := &Parser{bySlug: make(map[string]int, len(entries)*2)}
	for _, e := range entries {
		trusted := make([]string, 0, len(e.Aliases)+1)
		var guarded []string
		if len(e.Context) > 0 {
			guarded = append(guarded, Fold(e.Name))
		} else {
			trusted = append(trusted, Fold(e.Name))
		}
		for _, a := range e.Aliases {
			trusted = append(trusted, Fold(a))
		}
		pt := pattern{entry: e, slug: Slugify(e.Name), trusted: compileTerms(trusted), guarded: compileTerms(guarded)}
		idx := len(p.patterns)
		p.patterns = append(p.patterns, pt)
		p.bySlug[pt.slug] = idx
		for _, a := range e.Aliases {
			if s := Slugify(a); s != "" {
				if _, taken := p.bySlug[s]; !taken {
					p.bySlug[s] = idx
				}
			}
		}
	}
	return p
}

// compileTerms builds one alternation with custom word boundaries so terms
// like "c++", "c#" and "node.js" match as whole tokens.
func compileTerms(terms []string) *regexp.Regexp {
	if len(terms) == 0 {
		return nil
	}
	// longest first so "spring boot" wins over "spring"
	sort.Slice(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		q := regexp.QuoteMeta(strings.TrimSpace(t))
		quoted = append(quoted, strings.ReplaceAll(q, " ", `\s+`))
	}
	return regexp.MustCompile(`(?:^|[^a-z0-9+#.])(` + strings.Join(quoted, "|") + `)(?:$|[^a-z0-9+#])`)
}

// Extract returns the skills found in text ordered by first occurrence.
func (p *Parser) Extract(text string) []Match {
	folded := Fold(text)
	if strings.TrimSpace(folded) == "" {
		return nil
	}
	var out []Match
	for _, pt := range p.patterns {
		m := Match{Name: pt.entry.Name, Slug: pt.slug, Category: pt.entry.Category, first: -1}
		scan(pt.trusted, folded, &m)
		if pt.guarded != nil && containsAny(folded, pt.entry.Context) {
			scan(pt.guarded, folded, &m)
		}
		if m.Count > 0 {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].first < out[j].first })
	return out
}

// ExtractNames is Extract reduced to canonical names.
func (p *Parser) ExtractNames(text string) []string {
	matches := p.Extract(text)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
	}
	return names
}

// Canonical resolves a user supplied skill ("golang", "Postgres") to its
// dictionary entry.
func (p *Parser) Canonical(name string) (Entry, bool) {
	idx, ok := p.bySlug[Slugify(name)]
	if !ok {
		return Entry{}, false
	}
	return p.patterns[idx].entry, true
}

func scan(re *regexp.Regexp, text string, m *Match) {
	if re == nil {
		return
	}
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2], loc[3]
		if elided(text, start, end) {
			continue
		}
		m.Count++
		if m.first < 0 || start < m.first {
			m.first = start
		}
		if !m.Required && !containsAny(sentenceAround(text, start, end), optionalMarkers) {
			m.Required = true
		}
	}
}

// elided rejects single letters glued to an apostrophe or an ampersand:
// "c'est", "l'r", "r&d".
func elided(text string, start, end int) bool {
	if end-start != 1 {
		return false
	}
	if end < len(text) && (text[end] == '\'' || text[end] == '&') {
		return true
	}
	return start > 0 && text[start-1] == '\''
}

func sentenceAround(text string, start, end int) string {
	lo := start
	for lo > 0 && !isSentenceBreak(text, lo-1) {
		lo--
	}
	hi := end
	for hi < len(text) && !isSentenceBreak(text, hi) {
		hi++
	}
	return text[lo:hi]
}

func isSentenceBreak(text string, i int) bool {
	switch text[i] {
	case '\n', '!', '?', ';':
		return true
	case '.':
		return i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\n'
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
