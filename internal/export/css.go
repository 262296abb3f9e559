// Package export renders derived token sets for consumption outside the
// pipeline: CSS custom properties and JSON.
package export

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/chromata/chromata/internal/colour"
)

//go:embed *.tmpl
var templates embed.FS

// DefaultDarkSelector is used when the caller does not scope the dark
// block to a class selector.
const DefaultDarkSelector = "@media (prefers-color-scheme: dark)"

// declaration is one custom-property line in a CSS block.
type declaration struct {
	Name  string
	Value string
}

type cssData struct {
	Light         []declaration
	Dark          []declaration
	UseMediaQuery bool
	DarkSelector  string
}

// CSS renders the token pair as two blocks of eight custom-property
// declarations: one default block and one scoped to darkSelector. Passing
// an empty or "@media"-style selector emits a prefers-color-scheme media
// query; anything else (e.g. ".dark") is used as a plain selector.
func CSS(themes colour.Themes, darkSelector string) (string, error) {
	tmplContent, err := templates.ReadFile("tokens.css.tmpl")
	if err != nil {
		return "", fmt.Errorf("read css template: %w", err)
	}

	tmpl, err := template.New("tokens.css").Parse(string(tmplContent))
	if err != nil {
		return "", fmt.Errorf("parse css template: %w", err)
	}

	data := cssData{
		Light:         declarations(themes.Light),
		Dark:          declarations(themes.Dark),
		UseMediaQuery: darkSelector == "" || strings.HasPrefix(darkSelector, "@media"),
		DarkSelector:  darkSelector,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render css template: %w", err)
	}
	return buf.String(), nil
}

// JSON renders the token pair as indented JSON.
func JSON(themes colour.Themes) (string, error) {
	out, err := json.MarshalIndent(themes, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode tokens: %w", err)
	}
	return string(out) + "\n", nil
}

// declarations maps a token set to CSS declarations in canonical token
// order, with camelCase names converted to kebab-case.
func declarations(set colour.TokenSet) []declaration {
	names := colour.TokenNames()
	values := set.Values()

	decls := make([]declaration, len(names))
	for i, name := range names {
		decls[i] = declaration{Name: kebabCase(name), Value: values[i]}
	}
	return decls
}

// kebabCase converts a camelCase token name to kebab-case (mutedText →
// muted-text).
func kebabCase(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
