package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Card container selectors, in fallback order. The site renames these
// classes regularly; the chain is the survival strategy.
var cardContainerSelectors = []string{
	`[class*="ProjectCover-root"]`,
	`[class*="ProjectCoverNeue"]`,
	`div[class*="Cover"]`,
}

// ListingCards extracts ranked cards from one listing page, numbering
// them from startPos. Entries without a gallery link are skipped;
// skipped reports how many. A page where no container selector matches
// yields no cards and no skips.
func ListingCards(html, baseURL string, startPos int) (cards []*Card, skipped int) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, 0
	}

	var sel *goquery.Selection
	for _, s := range cardContainerSelectors {
		sel = doc.Find(s)
		if sel.Length() > 0 {
			break
		}
	}
	if sel == nil || sel.Length() == 0 {
		return nil, 0
	}

	pos := startPos
	sel.Each(func(_ int, s *goquery.Selection) {
		card, err := ParseCard(s, pos, baseURL)
		if err != nil {
			skipped++
			return
		}
		cards = append(cards, card)
		pos++
	})
	return cards, skipped
}
