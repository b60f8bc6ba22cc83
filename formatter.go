package hcprofile

import (
	"strings"
	"unicode/utf8"
)

// Unavailable is rendered for fields the language model did not return.
const Unavailable = "Information not available"

// Downloaded document metadata.
const (
	DocumentFileName = "professional_profile.txt"
	DocumentMIMEType = "text/plain"
)

// textReplacer turns literal "\n" escapes into line breaks and indents bullets.
var textReplacer = strings.NewReplacer(`\n`, "\n", "• ", "  • ")

// FormatProfile renders a profile as a plain-text document.
// Every field gets an underlined heading; question/answer sections are
// written as "Q:"/"A:" pairs in their original order.
func FormatProfile(p *Profile) string {
	parts := make([]string, 0, len(Fields)*3)
	for _, f := range Fields {
		parts = append(parts, f.Title+"\n"+strings.Repeat("=", utf8.RuneCountInString(f.Title))+"\n")

		sec := p.Section(f.Key)
		switch {
		case sec == nil:
			parts = append(parts, Unavailable)
		case sec.Kind == SectionPairs:
			for _, qa := range sec.Pairs {
				parts = append(parts, "Q: "+qa.Question+"\nA: "+qa.Answer+"\n")
			}
		default:
			parts = append(parts, textReplacer.Replace(sec.Text))
		}

		parts = append(parts, "\n\n")
	}
	return strings.Join(parts, "\n")
}
