package voice

import (
	"strconv"
	"strings"

	"restopos/internal/models"
)

var quantityWords = map[string]int{
	"one": 1, "a": 1, "an": 1,
	"two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// ParseTranscript is the heuristic fallback parser. It splits the
// transcript on "and"/commas, pulls a leading quantity out of each fragment
// and fuzzy-matches the rest against catalog product names.
func ParseTranscript(transcript string, catalog map[string]*models.Product) ParseResult {
	var result ParseResult

	for _, fragment := range splitFragments(transcript) {
		qty, rest := extractQuantity(fragment)
		product := matchProduct(rest, catalog)
		if product == nil {
			result.Unmatched = append(result.Unmatched, strings.TrimSpace(fragment))
			continue
		}
		result.Items = append(result.Items, models.OrderLineItem{ProductID: product.ID, Quantity: qty})
	}

	return result
}

func splitFragments(transcript string) []string {
	normalized := strings.NewReplacer(",", " and ", ";", " and ", " plus ", " and ").Replace(transcript)
	parts := strings.Split(normalized, " and ")

	var fragments []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			fragments = append(fragments, s)
		}
	}
	return fragments
}

// extractQuantity strips a leading numeral or number word; the default
// quantity is one.
func extractQuantity(fragment string) (int, string) {
	words := strings.Fields(fragment)
	if len(words) == 0 {
		return 1, fragment
	}

	head := normalize(words[0])
	if n, err := strconv.Atoi(head); err == nil && n > 0 {
		return n, strings.Join(words[1:], " ")
	}
	if n, ok := quantityWords[head]; ok {
		return n, strings.Join(words[1:], " ")
	}
	return 1, fragment
}

// matchProduct finds the catalog product whose name best matches the
// phrase: exact normalized match, then containment either way, then token
// overlap covering at least half the product name. Equal scores resolve to
// the lowest product ID so repeated transcripts draft the same product; no
// match above the threshold means no product.
func matchProduct(phrase string, catalog map[string]*models.Product) *models.Product {
	needle := normalize(phrase)
	if needle == "" {
		return nil
	}

	var best *models.Product
	var bestScore float64

	for _, product := range catalog {
		score := matchScore(needle, normalize(product.Name))
		switch {
		case score > bestScore:
			best = product
			bestScore = score
		case score == bestScore && best != nil && product.ID < best.ID:
			best = product
		}
	}

	if bestScore < 0.5 {
		return nil
	}
	return best
}

func matchScore(needle, name string) float64 {
	if needle == name {
		return 1
	}
	if strings.Contains(needle, name) || strings.Contains(name, needle) {
		return 0.9
	}

	nameTokens := strings.Fields(name)
	if len(nameTokens) == 0 {
		return 0
	}
	needleTokens := make(map[string]bool)
	for _, t := range strings.Fields(needle) {
		needleTokens[t] = true
	}

	matched := 0
	for _, t := range nameTokens {
		if needleTokens[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(nameTokens))
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		case r >= 'а' && r <= 'я', r == 'ё':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
