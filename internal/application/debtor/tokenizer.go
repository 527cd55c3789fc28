package debtor

import "strings"

// headerToken is discarded wherever it appears; exports from spreadsheets
// tend to carry their column header along.
const headerToken = "vat"

// Tokenize splits a bulk-upload blob into candidate VAT identifiers.
// Records are newline-separated (CR/LF or LF); each record may itself be
// comma- or semicolon-delimited; surrounding quotes are stripped; the "vat"
// header token (case-insensitive) is dropped; exact duplicates are removed
// preserving first-seen order. Tokens are NOT validated here — that is the
// enrichment service's job, so bad identifiers surface in the import report.
func Tokenize(blob string) []string {
	var tokens []string
	seen := make(map[string]struct{})

	for _, line := range strings.Split(strings.ReplaceAll(blob, "\r\n", "\n"), "\n") {
		for _, tok := range splitRecord(line) {
			tok = strings.Trim(strings.TrimSpace(tok), `"'`)
			tok = strings.TrimSpace(tok)
			if tok == "" || strings.EqualFold(tok, headerToken) {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func splitRecord(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';'
	})
}
