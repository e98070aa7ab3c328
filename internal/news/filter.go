package news

import (
	"strings"

	"github.com/woningspotters/woningspotters-api/internal/models"
)

// primaryKeywords must appear for an article to count as housing news.
var primaryKeywords = []string{
	"woning", "woningen", "woningmarkt", "woningbouw", "woningnood", "woningtekort", "wooncrisis",
	"huis", "huizen", "huizenprijs", "huizenprijzen", "huizenmarkt",
	"hypotheek", "hypotheken", "hypotheekrente",
	"koopwoning", "koopwoningen", "huurwoning", "huurwoningen",
	"koophuis", "huurhuis",
	"makelaar", "makelaars", "nvm", "funda",
	"nieuwbouw", "nieuwbouwwoning", "nieuwbouwwoningen",
	"appartement", "appartementen",
	"vastgoed", "vastgoedmarkt",
	"starterswoning", "starterswoningen",
	"koopmarkt", "huurmarkt",
	"woningcorporatie", "woningcorporaties",
	"bouwproject", "bouwprojecten",
	"overdrachtsbelasting",
	"huurtoeslag",
	"sociale huur", "vrije sector",
	"woz-waarde", "woz waarde",
	"energielabel",
	"nhg", "nationale hypotheek garantie",
}

// secondaryKeywords only qualify an article when two or more are present.
var secondaryKeywords = []string{
	"kopen", "verkopen", "verhuren", "huren",
	"starter", "starters", "doorstromer", "doorstromers",
	"bouwvergunning", "bouwvergunningen",
	"isolatie", "verduurzaming", "verduurzamen",
	"rente", "rentetarief",
	"bouwen", "verbouwen",
	"verhuizen",
}

// exclusionKeywords reject an article unless two primary keywords back it up.
var exclusionKeywords = []string{
	"beurs", "aandelen", "crypto", "bitcoin",
	"auto", "vliegtuig", "trein",
	"restaurant", "hotel",
	"voetbal", "sport", "wedstrijd",
	"oorlog", "militair",
	"film", "muziek", "concert",
}

var categoryRules = []struct {
	category models.NewsCategory
	terms    []string
}{
	{models.CategoryHypotheek, []string{"hypotheek", "rente", "lening", "nhg"}},
	{models.CategoryNieuwbouw, []string{"nieuwbouw", "bouw", "woningbouw", "project"}},
	{models.CategoryRegelgeving, []string{"wet", "regel", "belasting", "subsidie", "overheid", "minister"}},
	{models.CategoryTips, []string{"tip", "advies", "hoe", "stappenplan"}},
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}

// IsHousingRelated applies the keyword rules to a title and description.
// Matching is case-insensitive substring matching.
func IsHousingRelated(title, description string) bool {
	text := strings.ToLower(title + " " + description)

	primary := countMatches(text, primaryKeywords)
	if primary == 0 && countMatches(text, secondaryKeywords) < 2 {
		return false
	}
	if countMatches(text, exclusionKeywords) > 0 && primary < 2 {
		return false
	}
	return true
}

// Categorize returns the first category whose terms occur in the text.
func Categorize(title, description string) models.NewsCategory {
	text := strings.ToLower(title + " " + description)
	for _, rule := range categoryRules {
		if countMatches(text, rule.terms) > 0 {
			return rule.category
		}
	}
	return models.CategoryMarktanalyse
}
