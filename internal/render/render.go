package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/gurkanindibay/portfolio/web"
)

// maxTags is how many topic tags a card shows.
const maxTags = 5

// FallbackLanguageColor is used for languages missing from languageColors.
const FallbackLanguageColor = "#8b949e"

var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#2b7489",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"C++":        "#f34b7d",
	"C#":         "#178600",
	"Go":         "#00ADD8",
	"Rust":       "#dea584",
	"Ruby":       "#701516",
	"PHP":        "#4F5D95",
	"Swift":      "#ffac45",
	"Kotlin":     "#F18E33",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Shell":      "#89e051",
}

// LanguageColor returns the swatch colour for a language.
func LanguageColor(language string) string {
	if color, ok := languageColors[language]; ok {
		return color
	}
	return FallbackLanguageColor
}

// FormatRepoName turns "my-cool-app" into "My Cool App".
func FormatRepoName(name string) string {
	words := strings.Split(name, "-")
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

// card is the view of one project. Every string in it is escaped by
// html/template except LanguageColor, which only comes from languageColors.
type card struct {
	Title         string
	Description   string
	Featured      bool
	Language      string
	LanguageColor template.CSS
	Stars         int
	Forks         int
	Tags          []string
	URL           string
	Homepage      string
}

func newCard(p *models.Project) card {
	c := card{
		Title:       FormatRepoName(p.Name),
		Description: p.Description,
		Featured:    p.IsFeatured,
		Stars:       p.Stars,
		Forks:       p.Forks,
		URL:         p.URL,
	}

	if p.Language != nil && *p.Language != "" {
		c.Language = *p.Language
		c.LanguageColor = template.CSS(LanguageColor(c.Language))
	}

	tags := p.Tags()
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	c.Tags = tags

	if p.HasHomepage() {
		c.Homepage = *p.Homepage
	}

	return c
}

// PageData is the input of the full page template.
type PageData struct {
	Title        string
	Username     string
	Theme        models.Theme
	ThemeIcon    string
	Filters      []models.FilterEntry
	ActiveFilter string
	Grid         template.HTML
	// Grids holds one pre-rendered grid per filter for the static build.
	Grids     map[string]template.HTML
	Year      int
	AssetBase string
	Mode      string
}

const (
	ModeServer = "server"
	ModeStatic = "static"
)

type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("portfolio").ParseFS(web.Templates(), "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Templates exposes the parsed set so gin can render "page" and "not_found".
func (r *Renderer) Templates() *template.Template {
	return r.tmpl
}

// ProjectGrid renders one card per project in order, or the empty-state
// placeholder when there are none.
func (r *Renderer) ProjectGrid(projects []*models.Project) (template.HTML, error) {
	cards := make([]card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, newCard(p))
	}
	return r.fragment("grid", cards)
}

// ErrorPlaceholder renders the message shown instead of the grid when the
// repositories could not be fetched.
func (r *Renderer) ErrorPlaceholder(err error) (template.HTML, error) {
	message := "Unknown error"
	if err != nil {
		message = err.Error()
	}
	return r.fragment("error", message)
}

// Page writes the complete document.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

func (r *Renderer) fragment(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	// The buffer was produced by html/template and is already escaped.
	return template.HTML(buf.String()), nil
}
