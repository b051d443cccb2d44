package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/bcosta-dev/betledger/pkg/models"
)

// Selectors for the vendor's settled-bets export markup. One element per
// settled wager, with the field sub-elements below it.
const (
	betItemSel           = ".myb-SettledBetItem"
	marketDescriptionSel = ".myb-BetParticipant_MarketDescription"
	subHeaderTextSel     = ".myb-SettledBetItemHeader_SubHeaderText"
	participantSpanSel   = ".myb-BetParticipant_ParticipantSpan"
	stakeSel             = ".myb-SettledBetItemHeader_Text"
	oddsSel              = ".myb-BetParticipant_HeaderOdds"
	homeTeamSel          = ".myb-BetParticipant_Team1Name"
	awayTeamSel          = ".myb-BetParticipant_Team2Name"
	indicatorSel         = ".myb-WinLossIndicator"
	returnAmountSel      = ".myb-SettledBetItemFooter_BetInformationText"
	stateLabelSel        = ".myb-SettledBetItem_BetStateLabel"
)

// DefaultMarketKeyword filters bet items to the minutes-market family the
// ledger tracks. Case-insensitive substring match on the market description.
const DefaultMarketKeyword = "minutos"

// intervalPattern matches a minute window such as "00:00 - 09:59" or
// "0:00-9:59" inside the selection text.
var intervalPattern = regexp.MustCompile(`\d{1,2}:\d{2}\s*-\s*\d{1,2}:\d{2}`)

var spaceRun = regexp.MustCompile(`\s+`)

// SkipReason explains why a bet item did not become a record.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipMarket     SkipReason = "not a minutes market"
	SkipIncomplete SkipReason = "missing required fields"
)

// ImportStats summarizes one parse pass for user feedback.
type ImportStats struct {
	Found          int // bet items present in the document
	Parsed         int // records that passed the acceptance gate
	SkippedMarket  int // wagers outside the minutes-market family
	SkippedInvalid int // items that failed the acceptance gate
}

type Parser struct {
	logger *log.Logger

	// Keyword overrides DefaultMarketKeyword when the vendor export uses a
	// different market-family label.
	Keyword string
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger:  logger,
		Keyword: DefaultMarketKeyword,
	}
}

// ParseSettledBets extracts minutes-market bet records from a full
// settled-bets HTML document. importDate (YYYY-MM-DD) is the date the user
// assigns to the batch; it is stored on each record and participates in the
// record id.
//
// A document that cannot be read at all is fatal and returns an error with
// an empty result. A document with no bet items is not an error. Individual
// items that are malformed or out of scope are skipped and counted, never
// fatal.
func (p *Parser) ParseSettledBets(htmlDoc []byte, importDate string) ([]*models.BetRecord, ImportStats, error) {
	var stats ImportStats

	if len(bytes.TrimSpace(htmlDoc)) == 0 {
		return nil, stats, fmt.Errorf("empty document")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlDoc))
	if err != nil {
		return nil, stats, fmt.Errorf("error parsing document: %w", err)
	}

	items := doc.Find(betItemSel)
	stats.Found = items.Length()
	p.logger.Debug("settled bet items found", "count", stats.Found)

	var records []*models.BetRecord
	items.Each(func(i int, item *goquery.Selection) {
		record, skip := p.extractItem(item, importDate)
		if skip != SkipNone {
			if skip == SkipMarket {
				stats.SkippedMarket++
			} else {
				stats.SkippedInvalid++
			}
			p.logger.Debug("bet item skipped", "item", i+1, "reason", skip)
			return
		}
		stats.Parsed++
		records = append(records, record)
	})

	if stats.Parsed == 0 {
		p.logger.Info("no eligible minutes-market bets in document", "items", stats.Found)
	}
	return records, stats, nil
}

// extractItem turns one bet-item element into a record, or a SkipReason.
// Extraction is defensively field-by-field: vendor markup varies across bet
// types, so missing fields fall back to sentinels and only the acceptance
// gate (stake, odd, home team, minute window) rejects the item.
func (p *Parser) extractItem(item *goquery.Selection, importDate string) (*models.BetRecord, SkipReason) {
	market := strings.TrimSpace(item.Find(marketDescriptionSel).First().Text())
	if !strings.Contains(strings.ToLower(market), strings.ToLower(p.Keyword)) {
		return nil, SkipMarket
	}

	minutes := models.MinutesNotFound
	selection := models.SelectionNotFound
	if sub := item.Find(subHeaderTextSel).First(); sub.Length() > 0 {
		selection = strings.TrimSpace(sub.Text())
		if m := intervalPattern.FindString(selection); m != "" {
			minutes = spaceRun.ReplaceAllString(m, "")
		}
	} else if span := item.Find(participantSpanSel).First(); span.Length() > 0 {
		// Some bet types omit the sub-header; the participant span carries
		// the window there.
		if m := intervalPattern.FindString(strings.TrimSpace(span.Text())); m != "" {
			minutes = spaceRun.ReplaceAllString(m, "")
		}
	}

	stake := models.ParseAmount(item.Find(stakeSel).First().Text())

	homeTeam := models.HomeTeamNotFound
	if el := item.Find(homeTeamSel).First(); el.Length() > 0 {
		homeTeam = strings.TrimSpace(el.Text())
	}
	awayTeam := models.AwayTeamNotFound
	if el := item.Find(awayTeamSel).First(); el.Length() > 0 {
		awayTeam = strings.TrimSpace(el.Text())
	}

	odd := models.ParseDecimal(item.Find(oddsSel).First().Text())
	returned := models.ParseAmount(item.Find(returnAmountSel).First().Text())
	status, profit := classify(item, stake, returned)

	if stake <= 0 || odd <= 0 || homeTeam == models.HomeTeamNotFound || minutes == models.MinutesNotFound {
		p.logger.Debug("incomplete bet item",
			"stake", stake, "odd", odd, "home", homeTeam, "minutes", minutes)
		return nil, SkipIncomplete
	}

	return &models.BetRecord{
		ID:            models.ImportID(importDate, homeTeam, awayTeam, minutes, selection, stake),
		Date:          importDate,
		Championship:  models.ChampionshipNotFound,
		HomeTeam:      homeTeam,
		AwayTeam:      awayTeam,
		Market:        market,
		MarketMinutes: minutes,
		Stake:         stake,
		Odd:           odd,
		Status:        status,
		Profit:        profit,
		Selection:     selection,
	}, SkipNone
}

// classify resolves the settlement status and profit of a bet item from its
// win/loss indicator element. When the indicator is absent or carries an
// unknown class it falls back to the localized state label text. Anything
// still unresolved stays pending with zero profit.
func classify(item *goquery.Selection, stake, returned float64) (models.Status, float64) {
	indicator := item.Find(indicatorSel).First()
	if indicator.Length() > 0 {
		switch {
		case indicator.HasClass("myb-WinLossIndicator-won"):
			return models.StatusWon, returned - stake
		case indicator.HasClass("myb-WinLossIndicator-lost"):
			return models.StatusLost, -stake
		case indicator.HasClass("myb-WinLossIndicator-void"):
			return models.StatusVoid, 0
		case indicator.HasClass("myb-WinLossIndicator-cashout"):
			// Cashout settles at the negotiated value; profit can be
			// negative when the return is below the stake.
			return models.StatusCashedOut, returned - stake
		}
	}

	label := strings.ToLower(strings.TrimSpace(item.Find(stateLabelSel).First().Text()))
	switch {
	case strings.Contains(label, "ganha"):
		return models.StatusWon, returned - stake
	case strings.Contains(label, "perdida"):
		return models.StatusLost, -stake
	case strings.Contains(label, "devolvida"):
		return models.StatusVoid, 0
	case strings.Contains(label, "encerrada"):
		return models.StatusCashedOut, returned - stake
	}
	return models.StatusPending, 0
}
