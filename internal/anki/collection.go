package anki

import (
	"strconv"

	"github.com/flashdeck/flashdeck/internal/models"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Typed representations of the JSON blobs Anki stores in the col table.
// Keeping them as structs keeps the mapping between native fields and the
// foreign columns auditable instead of ad hoc string formatting.

const (
	// basicModelID identifies the single "Basic" note type written on export.
	basicModelID int64 = 1000000000001

	// deckIDBase spaces generated deck ids far apart so they never collide
	// with the default deck (id 1) or with each other.
	deckIDBase int64 = 1000000000000

	// fieldSeparator joins front and back inside a note's flds column.
	fieldSeparator = "\x1f"
)

type deckEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Mod       int64  `json:"mod"`
	USN       int    `json:"usn"`
	LrnToday  [2]int `json:"lrnToday"`
	RevToday  [2]int `json:"revToday"`
	NewToday  [2]int `json:"newToday"`
	TimeToday [2]int `json:"timeToday"`
	Collapsed bool   `json:"collapsed"`
	Desc      string `json:"desc"`
	Dyn       int    `json:"dyn"`
	Conf      int    `json:"conf"`
	ExtendNew int    `json:"extendNew"`
	ExtendRev int    `json:"extendRev"`
}

type modelField struct {
	Name   string `json:"name"`
	Ord    int    `json:"ord"`
	Sticky bool   `json:"sticky"`
	RTL    bool   `json:"rtl"`
	Font   string `json:"font"`
	Size   int    `json:"size"`
	Media  []any  `json:"media"`
}

type modelTemplate struct {
	Name  string  `json:"name"`
	Ord   int     `json:"ord"`
	Qfmt  string  `json:"qfmt"`
	Afmt  string  `json:"afmt"`
	DID   *int64  `json:"did"`
	Bqfmt string  `json:"bqfmt"`
	Bafmt string  `json:"bafmt"`
}

type noteModel struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      int             `json:"type"`
	Mod       int64           `json:"mod"`
	USN       int             `json:"usn"`
	SortField int             `json:"sortf"`
	DeckID    int64           `json:"did"`
	Templates []modelTemplate `json:"tmpls"`
	Fields    []modelField    `json:"flds"`
	CSS       string          `json:"css"`
	LatexPre  string          `json:"latexPre"`
	LatexPost string          `json:"latexPost"`
	LatexSVG  bool            `json:"latexsvg"`
	Req       [][]any         `json:"req"`
}

type lapseConfig struct {
	LeechFails  int    `json:"leechFails"`
	MinInterval int    `json:"minInt"`
	Delays      []int  `json:"delays"`
	LeechAction int    `json:"leechAction"`
	Mult        float64 `json:"mult"`
}

type revConfig struct {
	PerDay     int     `json:"perDay"`
	Fuzz       float64 `json:"fuzz"`
	IvlFct     float64 `json:"ivlFct"`
	MaxIvl     int     `json:"maxIvl"`
	Ease4      float64 `json:"ease4"`
	Bury       bool    `json:"bury"`
	HardFactor float64 `json:"hardFactor"`
}

type newConfig struct {
	PerDay        int   `json:"perDay"`
	Delays        []int `json:"delays"`
	Separate      bool  `json:"separate"`
	Ints          []int `json:"ints"`
	InitialFactor int   `json:"initialFactor"`
	Bury          bool  `json:"bury"`
	Order         int   `json:"order"`
}

type deckConfig struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	ReplayQ  bool        `json:"replayq"`
	Lapse    lapseConfig `json:"lapse"`
	Rev      revConfig   `json:"rev"`
	New      newConfig   `json:"new"`
	MaxTaken int         `json:"maxTaken"`
	Timer    int         `json:"timer"`
	Autoplay bool        `json:"autoplay"`
	Mod      int64       `json:"mod"`
	USN      int         `json:"usn"`
}

// exportDeckID returns the deterministic, collision-free id for the i-th
// exported deck. Deck id 1 is always the foreign default deck.
func exportDeckID(i int) int64 {
	return (int64(i)+2)*deckIDBase + 1
}

// buildDeckEntries maps the selection onto the col table's decks JSON:
// the mandatory default deck plus one entry per exported deck.
func buildDeckEntries(decks []models.Deck, now int64) map[string]deckEntry {
	entries := make(map[string]deckEntry, len(decks)+1)
	entries["1"] = newDeckEntry(1, "Default", "", now)
	for i, deck := range decks {
		id := exportDeckID(i)
		entries[formatID(id)] = newDeckEntry(id, deck.Name, deck.Description, now)
	}
	return entries
}

func newDeckEntry(id int64, name, desc string, now int64) deckEntry {
	return deckEntry{
		ID:        id,
		Name:      name,
		Mod:       now,
		USN:       -1,
		Desc:      desc,
		Conf:      1,
		ExtendNew: 10,
		ExtendRev: 50,
	}
}

// buildNoteModels returns the single Basic front/back note type.
func buildNoteModels(now int64) map[string]noteModel {
	return map[string]noteModel{
		formatID(basicModelID): {
			ID:     basicModelID,
			Name:   "Basic",
			Mod:    now,
			USN:    -1,
			DeckID: 1,
			Templates: []modelTemplate{{
				Name: "Card 1",
				Qfmt: "{{Front}}",
				Afmt: "{{FrontSide}}<hr id=answer>{{Back}}",
			}},
			Fields: []modelField{
				{Name: "Front", Ord: 0, Font: "Arial", Size: 20, Media: []any{}},
				{Name: "Back", Ord: 1, Font: "Arial", Size: 20, Media: []any{}},
			},
			CSS: ".card { font-family: arial; font-size: 20px; text-align: center; color: black; background-color: white; }",
			Req: [][]any{{0, "all", []any{0}}},
		},
	}
}

// buildDeckConfigs returns the default per-deck configuration profile.
func buildDeckConfigs() map[string]deckConfig {
	return map[string]deckConfig{
		"1": {
			ID:      1,
			Name:    "Default",
			ReplayQ: true,
			Lapse: lapseConfig{
				LeechFails:  8,
				MinInterval: 1,
				Delays:      []int{10},
			},
			Rev: revConfig{
				PerDay:     200,
				Fuzz:       0.05,
				IvlFct:     1,
				MaxIvl:     36500,
				Ease4:      1.3,
				HardFactor: 1.2,
			},
			New: newConfig{
				PerDay:        20,
				Delays:        []int{1, 10},
				Separate:      true,
				Ints:          []int{1, 4, 7},
				InitialFactor: 2500,
				Order:         1,
			},
			MaxTaken: 60,
			Autoplay: true,
		},
	}
}
