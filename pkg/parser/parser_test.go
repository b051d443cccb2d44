package parser

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bcosta-dev/betledger/pkg/models"
)

const wonItem = `
<div class="myb-SettledBetItem">
  <div class="myb-SettledBetItemHeader_Text">R$ 100,00</div>
  <div class="myb-SettledBetItemHeader_SubHeaderText">00:00 - 09:59 Mais de 0.5</div>
  <div class="myb-BetParticipant_MarketDescription">10 Minutos - Escanteios</div>
  <div class="myb-BetParticipant_HeaderOdds">1,85</div>
  <div class="myb-BetParticipant_Team1Name">Flamengo</div>
  <div class="myb-BetParticipant_Team2Name">Palmeiras</div>
  <div class="myb-WinLossIndicator myb-WinLossIndicator-won"></div>
  <div class="myb-SettledBetItemFooter_BetInformationText">Retorno: R$ 185,00</div>
</div>`

const otherMarketItem = `
<div class="myb-SettledBetItem">
  <div class="myb-SettledBetItemHeader_Text">R$ 50,00</div>
  <div class="myb-SettledBetItemHeader_SubHeaderText">Empate</div>
  <div class="myb-BetParticipant_MarketDescription">Resultado Final</div>
  <div class="myb-BetParticipant_HeaderOdds">3,20</div>
  <div class="myb-BetParticipant_Team1Name">Santos</div>
  <div class="myb-BetParticipant_Team2Name">Corinthians</div>
  <div class="myb-WinLossIndicator myb-WinLossIndicator-lost"></div>
</div>`

const zeroStakeItem = `
<div class="myb-SettledBetItem">
  <div class="myb-SettledBetItemHeader_Text">R$ 0,00</div>
  <div class="myb-SettledBetItemHeader_SubHeaderText">10:00 - 19:59 Mais de 1.5</div>
  <div class="myb-BetParticipant_MarketDescription">10 Minutos - Escanteios</div>
  <div class="myb-BetParticipant_HeaderOdds">2,00</div>
  <div class="myb-BetParticipant_Team1Name">Cruzeiro</div>
  <div class="myb-BetParticipant_Team2Name">Atlético</div>
  <div class="myb-WinLossIndicator myb-WinLossIndicator-lost"></div>
</div>`

func doc(items ...string) []byte {
	body := ""
	for _, it := range items {
		body += it
	}
	return []byte("<html><body>" + body + "</body></html>")
}

func newTestParser() *Parser {
	return New(log.New(io.Discard))
}

func TestParseSettledBets(t *testing.T) {
	p := newTestParser()

	records, stats, err := p.ParseSettledBets(doc(wonItem, otherMarketItem, zeroStakeItem), "2024-03-01")
	if err != nil {
		t.Fatalf("ParseSettledBets failed: %v", err)
	}

	if stats.Found != 3 || stats.Parsed != 1 || stats.SkippedMarket != 1 || stats.SkippedInvalid != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.Date != "2024-03-01" {
		t.Errorf("date = %q", r.Date)
	}
	if r.HomeTeam != "Flamengo" || r.AwayTeam != "Palmeiras" {
		t.Errorf("teams = %q x %q", r.HomeTeam, r.AwayTeam)
	}
	if r.Market != "10 Minutos - Escanteios" {
		t.Errorf("market = %q", r.Market)
	}
	if r.MarketMinutes != "00:00-09:59" {
		t.Errorf("marketMinutes = %q", r.MarketMinutes)
	}
	if r.Stake != 100 {
		t.Errorf("stake = %v", r.Stake)
	}
	if r.Odd != 1.85 {
		t.Errorf("odd = %v", r.Odd)
	}
	if r.Status != models.StatusWon {
		t.Errorf("status = %q", r.Status)
	}
	if r.Profit != 85 {
		t.Errorf("profit = %v, want 85", r.Profit)
	}
	if r.Selection != "00:00 - 09:59 Mais de 0.5" {
		t.Errorf("selection = %q", r.Selection)
	}
	if r.Championship != models.ChampionshipNotFound {
		t.Errorf("championship = %q, want placeholder", r.Championship)
	}
}

func TestParseDeterministicIDs(t *testing.T) {
	p := newTestParser()
	input := doc(wonItem)

	first, _, err := p.ParseSettledBets(input, "2024-03-01")
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, _, err := p.ParseSettledBets(input, "2024-03-01")
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 record per parse, got %d and %d", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Errorf("ids differ across parses: %q vs %q", first[0].ID, second[0].ID)
	}
}

func TestParseEmptyDocumentIsFatal(t *testing.T) {
	p := newTestParser()
	if _, _, err := p.ParseSettledBets([]byte("   \n"), "2024-03-01"); err == nil {
		t.Error("expected error for empty document")
	}
}

func TestParseNoBetItems(t *testing.T) {
	p := newTestParser()
	records, stats, err := p.ParseSettledBets([]byte("<html><body><p>nada aqui</p></body></html>"), "2024-03-01")
	if err != nil {
		t.Fatalf("expected no error for item-less document, got %v", err)
	}
	if len(records) != 0 || stats.Found != 0 {
		t.Errorf("expected empty result, got %d records, stats %+v", len(records), stats)
	}
}

func TestClassifyLabelFallback(t *testing.T) {
	item := `
<div class="myb-SettledBetItem">
  <div class="myb-SettledBetItemHeader_Text">R$ 100,00</div>
  <div class="myb-SettledBetItemHeader_SubHeaderText">20:00 - 29:59 Mais de 0.5</div>
  <div class="myb-BetParticipant_MarketDescription">10 Minutos - Escanteios</div>
  <div class="myb-BetParticipant_HeaderOdds">1,66</div>
  <div class="myb-BetParticipant_Team1Name">Bahia</div>
  <div class="myb-BetParticipant_Team2Name">Vitória</div>
  <div class="myb-SettledBetItem_BetStateLabel">Perdida</div>
</div>`

	p := newTestParser()
	records, _, err := p.ParseSettledBets(doc(item), "2024-03-01")
	if err != nil {
		t.Fatalf("ParseSettledBets failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Status != models.StatusLost {
		t.Errorf("status = %q, want lost via label fallback", records[0].Status)
	}
	if records[0].Profit != -100 {
		t.Errorf("profit = %v, want -100", records[0].Profit)
	}
}

func TestClassifyCashoutCanBeNegative(t *testing.T) {
	item := `
<div class="myb-SettledBetItem">
  <div class="myb-SettledBetItemHeader_Text">R$ 100,00</div>
  <div class="myb-SettledBetItemHeader_SubHeaderText">30:00 - 39:59 Mais de 0.5</div>
  <div class="myb-BetParticipant_MarketDescription">10 Minutos - Escanteios</div>
  <div class="myb-BetParticipant_HeaderOdds">2,10</div>
  <div class="myb-BetParticipant_Team1Name">Botafogo</div>
  <div class="myb-BetParticipant_Team2Name">Fluminense</div>
  <div class="myb-WinLossIndicator myb-WinLossIndicator-cashout"></div>
  <div class="myb-SettledBetItemFooter_BetInformationText">R$ 80,00</div>
</div>`

	p := newTestParser()
	records, _, err := p.ParseSettledBets(doc(item), "2024-03-01")
	if err != nil {
		t.Fatalf("ParseSettledBets failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Status != models.StatusCashedOut {
		t.Errorf("status = %q", records[0].Status)
	}
	if records[0].Profit != -20 {
		t.Errorf("profit = %v, want -20", records[0].Profit)
	}
}

func TestIntervalFallbackToParticipantSpan(t *testing.T) {
	item := `
<div class="myb-SettledBetItem">
  <div class="myb-SettledBetItemHeader_Text">R$ 100,00</div>
  <div class="myb-BetParticipant_ParticipantSpan">40:00 - 49:59 Mais de 0.5</div>
  <div class="myb-BetParticipant_MarketDescription">10 Minutos - Escanteios</div>
  <div class="myb-BetParticipant_HeaderOdds">1,90</div>
  <div class="myb-BetParticipant_Team1Name">Sport</div>
  <div class="myb-BetParticipant_Team2Name">Náutico</div>
  <div class="myb-WinLossIndicator myb-WinLossIndicator-void"></div>
</div>`

	p := newTestParser()
	records, _, err := p.ParseSettledBets(doc(item), "2024-03-01")
	if err != nil {
		t.Fatalf("ParseSettledBets failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].MarketMinutes != "40:00-49:59" {
		t.Errorf("marketMinutes = %q, want span fallback", records[0].MarketMinutes)
	}
	if records[0].Status != models.StatusVoid || records[0].Profit != 0 {
		t.Errorf("void bet: status=%q profit=%v", records[0].Status, records[0].Profit)
	}
}

func TestMissingIntervalFailsGate(t *testing.T) {
	item := `
<div class="myb-SettledBetItem">
  <div class="myb-SettledBetItemHeader_Text">R$ 100,00</div>
  <div class="myb-SettledBetItemHeader_SubHeaderText">Mais de 0.5 Escanteios</div>
  <div class="myb-BetParticipant_MarketDescription">Minutos - Escanteios</div>
  <div class="myb-BetParticipant_HeaderOdds">1,90</div>
  <div class="myb-BetParticipant_Team1Name">Goiás</div>
  <div class="myb-BetParticipant_Team2Name">Vila Nova</div>
  <div class="myb-WinLossIndicator myb-WinLossIndicator-won"></div>
</div>`

	p := newTestParser()
	records, stats, err := p.ParseSettledBets(doc(item), "2024-03-01")
	if err != nil {
		t.Fatalf("ParseSettledBets failed: %v", err)
	}
	if len(records) != 0 || stats.SkippedInvalid != 1 {
		t.Errorf("expected gate rejection, got %d records, stats %+v", len(records), stats)
	}
}
