package intelligence

import (
	"regexp"
	"strings"
)

// Bullet is the marker used for itemized lines.
const Bullet = "•"

// ws matches the same characters strings.TrimSpace removes.
const ws = `[\s\v\x{85}\p{Z}]`

var (
	// A hyphen starting the text or preceded by whitespace opens an item.
	// Consecutive hyphens collapse into one item; hyphens inside words
	// ("PME-PMI") are kept.
	inlineItemRe = regexp.MustCompile(`(?:^|` + ws + `+)-(?:` + ws + `*-)*` + ws + `*`)

	// A label colon followed by a capital letter or bullet.
	labelRe = regexp.MustCompile(`:` + ws + `*([\p{Lu}•])`)

	trailingSpaceRe = regexp.MustCompile(`[ \t\f\v\x{85}\p{Zs}]+\n`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
)

// maxFormatPasses bounds the fixed-point iteration in FormatResponse.
const maxFormatPasses = 4

// FormatResponse reshapes raw model text into bulleted, paragraph-broken
// output. Text containing the refusal message is replaced by the refusal
// alone. The result never contains three consecutive line breaks and
// FormatResponse(FormatResponse(x)) == FormatResponse(x).
func FormatResponse(raw, refusal string) string {
	if refusal != "" && strings.Contains(raw, refusal) {
		return refusal
	}

	text := raw
	for i := 0; i < maxFormatPasses; i++ {
		next := formatPass(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func formatPass(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = inlineItemRe.ReplaceAllString(text, "\n"+Bullet+" ")
	text = labelRe.ReplaceAllString(text, ":\n\n$1")

	text = trailingSpaceRe.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
