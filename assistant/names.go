package assistant

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/utils"
)

const maxSuggestions = 5

// Tried in order against the original text; group 1 is the name.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:customer|client|account)\s+(?:named\s+|called\s+)?["']?([A-Za-z0-9][\w&'.\- ]*)`),
	regexp.MustCompile(`(?i)\b(?:for|from)\s+["']?([A-Za-z0-9][\w&'.\- ]*)`),
	regexp.MustCompile(`\b(?i:did|does|has)\s+([A-Z][\w&'.\-]*(?:\s+[A-Z][\w&'.\-]*)*)\s+(?i:order|place|make|spend|pay|generate|bring)`),
}

var storePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:store|retailer|brand|restaurant|establishment)\s+(?:named\s+|called\s+)?["']?([A-Za-z0-9][\w&'.\- ]*)`),
	regexp.MustCompile(`(?i)\b(?:at|from)\s+["']?([A-Za-z0-9][\w&'.\- ]*)`),
	regexp.MustCompile(`(?i)\b(?:sales|sold)\b.*?\b(?:for|of)\s+["']?([A-Za-z0-9][\w&'.\- ]*)`),
}

// A name ends where a date or connector phrase begins.
var nameStopRe = regexp.MustCompile(`(?i)\s+(?:in|during|between|on|since|over|this|last|previous|from|to|through|until|for|by|per|and|with|who|that|which|were|was|are|is)\b`)

var dateTokens = map[string]bool{
	"today": true, "yesterday": true, "week": true, "month": true, "year": true,
	"ytd": true, "mtd": true, "so": true, "far": true, "the": true,
}

var genericNameWords = map[string]bool{
	"all": true, "each": true, "every": true, "any": true, "the": true, "our": true, "my": true,
	"store": true, "stores": true, "customer": true, "customers": true, "client": true, "clients": true,
	"retailer": true, "retailers": true, "brand": true, "brands": true, "restaurant": true, "restaurants": true,
	"order": true, "orders": true, "month": true, "months": true, "week": true, "weeks": true,
	"year": true, "day": true, "days": true, "total": true, "revenue": true, "sales": true,
	"everyone": true, "them": true, "me": true, "us": true, "it": true, "state": true, "states": true,
	"last": true, "this": true, "today": true, "yesterday": true, "period": true,
}

var numericRe = regexp.MustCompile(`^[\d\s/.,\-]+$`)

// ExtractCustomerName pulls a customer name out of free text, or "" when none is present.
func ExtractCustomerName(text string) string {
	return extractName(text, namePatterns)
}

// ExtractStoreName pulls a retailer name out of free text.
func ExtractStoreName(text string) string {
	return extractName(text, storePatterns)
}

func extractName(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if name := cleanName(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

// cleanName cuts connector phrases, strips trailing month/year tokens and rejects names that
// are only a month, a number or generic words.
func cleanName(raw string) string {
	name := raw
	if loc := nameStopRe.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}
	name = strings.Trim(name, ` "'?!.,;:`)

	words := strings.Fields(name)
	for len(words) > 0 {
		last := strings.ToLower(strings.Trim(words[len(words)-1], ".,?!"))
		if _, isMonth := utils.LookupMonth(last); isMonth || dateTokens[last] || numericRe.MatchString(last) {
			words = words[:len(words)-1]
			continue
		}
		break
	}
	name = strings.Trim(strings.Join(words, " "), ` "'?!.,;:`)

	if name == "" || numericRe.MatchString(name) {
		return ""
	}
	if _, isMonth := utils.LookupMonth(strings.ToLower(name)); isMonth {
		return ""
	}
	generic := true
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if !genericNameWords[strings.Trim(w, ".,?!'")] {
			generic = false
			break
		}
	}
	if generic {
		return ""
	}
	return name
}

// CustomerNames returns the distinct customer names of orders, sorted.
func CustomerNames(orders []models.Order) []string {
	return distinct(orders, func(o models.Order) string { return o.CustomerName })
}

// RetailerNames returns the distinct establishments of orders, sorted.
func RetailerNames(orders []models.Order) []string {
	return distinct(orders, func(o models.Order) string { return o.Establishment })
}

func distinct(orders []models.Order, key func(models.Order) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range orders {
		k := key(o)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SuggestNames ranks candidates by resemblance to query. Fuzzy matches come first, then
// names sharing a word or word prefix. At most maxSuggestions are returned.
func SuggestNames(query string, candidates []string) []string {
	type scored struct {
		name  string
		score int
	}
	qWords := strings.Fields(utils.NormalizeName(query))

	var ranked []scored
	for _, c := range candidates {
		score := 0
		if utils.MatchCustomerName(query, c) {
			score = 100
		} else {
			cWords := strings.Fields(utils.NormalizeName(c))
			for _, qw := range qWords {
				for _, cw := range cWords {
					if len(qw) >= 3 && len(cw) >= 3 && (strings.HasPrefix(cw, qw[:3]) || strings.HasPrefix(qw, cw[:3])) {
						score++
						break
					}
				}
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{c, score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	out := make([]string, 0, maxSuggestions)
	for _, r := range ranked {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, r.name)
	}
	return out
}

var (
	stateZipRe   = regexp.MustCompile(`\b([A-Z]{2})\s+\d{5}(?:-\d{4})?\b`)
	stateTrailRe = regexp.MustCompile(`,\s*([A-Za-z]{2})\s*$`)
)

// StateFromAddress reads the two-letter state from a US street address, or "Unknown".
func StateFromAddress(address string) string {
	if m := stateZipRe.FindAllStringSubmatch(address, -1); len(m) > 0 {
		return m[len(m)-1][1]
	}
	if m := stateTrailRe.FindStringSubmatch(strings.TrimSpace(address)); m != nil {
		return strings.ToUpper(m[1])
	}
	return "Unknown"
}
