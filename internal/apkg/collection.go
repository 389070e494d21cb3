package apkg

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// defaultDeckID is the built-in "Default" deck every collection carries.
const defaultDeckID = 1

const (
	latexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
		"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n" +
		"\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"
	latexPost = "\\end{document}"
)

var fieldRefRe = regexp.MustCompile(`{{([^#^/}][^}]*)}}`)

type colConf struct {
	ActiveDecks   []int64 `json:"activeDecks"`
	CurDeck       int64   `json:"curDeck"`
	NewSpread     int     `json:"newSpread"`
	CollapseTime  int     `json:"collapseTime"`
	TimeLim       int     `json:"timeLim"`
	EstTimes      bool    `json:"estTimes"`
	DueCounts     bool    `json:"dueCounts"`
	CurModel      *string `json:"curModel"`
	NextPos       int     `json:"nextPos"`
	SortType      string  `json:"sortType"`
	SortBackwards bool    `json:"sortBackwards"`
	AddToCur      bool    `json:"addToCur"`
}

type fieldJSON struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Font   string   `json:"font"`
	Media  []string `json:"media"`
	RTL    bool     `json:"rtl"`
	Size   int      `json:"size"`
	Sticky bool     `json:"sticky"`
}

type templateJSON struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	QFmt  string `json:"qfmt"`
	AFmt  string `json:"afmt"`
	BQFmt string `json:"bqfmt"`
	BAFmt string `json:"bafmt"`
	DID   *int64 `json:"did"`
}

type modelJSON struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Type      int            `json:"type"`
	Mod       int64          `json:"mod"`
	USN       int            `json:"usn"`
	SortF     int            `json:"sortf"`
	DID       int64          `json:"did"`
	Tmpls     []templateJSON `json:"tmpls"`
	Flds      []fieldJSON    `json:"flds"`
	CSS       string         `json:"css"`
	LatexPre  string         `json:"latexPre"`
	LatexPost string         `json:"latexPost"`
	Tags      []string       `json:"tags"`
	Vers      []int          `json:"vers"`
	Req       [][]any        `json:"req"`
}

type deckJSON struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Desc             string `json:"desc"`
	Mod              int64  `json:"mod"`
	USN              int    `json:"usn"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	Conf             int64  `json:"conf"`
	Dyn              int    `json:"dyn"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
}

type newConf struct {
	Bury          bool  `json:"bury"`
	Delays        []int `json:"delays"`
	InitialFactor int   `json:"initialFactor"`
	Ints          []int `json:"ints"`
	Order         int   `json:"order"`
	PerDay        int   `json:"perDay"`
	Separate      bool  `json:"separate"`
}

type lapseConf struct {
	Delays      []int   `json:"delays"`
	LeechAction int     `json:"leechAction"`
	LeechFails  int     `json:"leechFails"`
	MinInt      int     `json:"minInt"`
	Mult        float64 `json:"mult"`
}

type revConf struct {
	Bury     bool    `json:"bury"`
	Ease4    float64 `json:"ease4"`
	Fuzz     float64 `json:"fuzz"`
	IvlFct   float64 `json:"ivlFct"`
	MaxIvl   int     `json:"maxIvl"`
	MinSpace int     `json:"minSpace"`
	PerDay   int     `json:"perDay"`
}

type deckConfJSON struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Mod      int64     `json:"mod"`
	USN      int       `json:"usn"`
	MaxTaken int       `json:"maxTaken"`
	Autoplay bool      `json:"autoplay"`
	Timer    int       `json:"timer"`
	Replayq  bool      `json:"replayq"`
	New      newConf   `json:"new"`
	Lapse    lapseConf `json:"lapse"`
	Rev      revConf   `json:"rev"`
}

// collectionJSON holds the JSON columns of the col row.
type collectionJSON struct {
	Conf   string
	Models string
	Decks  string
	DConf  string
	Tags   string
}

func buildCollectionJSON(decks []*Deck, models []*Model, modSec int64) (collectionJSON, error) {
	curDeck := int64(defaultDeckID)
	if len(decks) > 0 {
		curDeck = decks[0].ID
	}
	conf := colConf{
		ActiveDecks:  []int64{curDeck},
		CurDeck:      curDeck,
		CollapseTime: 1200,
		EstTimes:     true,
		DueCounts:    true,
		NextPos:      1,
		SortType:     "noteFld",
		AddToCur:     true,
	}

	modelMap := make(map[string]modelJSON, len(models))
	for _, m := range models {
		modelMap[strconv.FormatInt(m.ID, 10)] = modelToJSON(m, curDeck, modSec)
	}

	deckMap := map[string]deckJSON{
		strconv.Itoa(defaultDeckID): newDeckJSON(defaultDeckID, "Default", "", 0),
	}
	for _, d := range decks {
		deckMap[strconv.FormatInt(d.ID, 10)] = newDeckJSON(d.ID, d.Name, d.Description, modSec)
	}

	dconf := map[string]deckConfJSON{
		"1": {
			ID:       1,
			Name:     "Default",
			MaxTaken: 60,
			Autoplay: true,
			Replayq:  true,
			New: newConf{
				Bury: true, Delays: []int{1, 10}, InitialFactor: 2500,
				Ints: []int{1, 4, 7}, Order: 1, PerDay: 20, Separate: true,
			},
			Lapse: lapseConf{Delays: []int{10}, LeechAction: 0, LeechFails: 8, MinInt: 1},
			Rev: revConf{
				Bury: true, Ease4: 1.3, Fuzz: 0.05, IvlFct: 1, MaxIvl: 36500, MinSpace: 1, PerDay: 100,
			},
		},
	}

	var out collectionJSON
	for _, enc := range []struct {
		dst *string
		v   any
	}{
		{&out.Conf, conf},
		{&out.Models, modelMap},
		{&out.Decks, deckMap},
		{&out.DConf, dconf},
		{&out.Tags, map[string]int{}},
	} {
		b, err := json.Marshal(enc.v)
		if err != nil {
			return collectionJSON{}, err
		}
		*enc.dst = string(b)
	}
	return out, nil
}

func modelToJSON(m *Model, did, modSec int64) modelJSON {
	flds := make([]fieldJSON, len(m.Fields))
	for i, name := range m.Fields {
		flds[i] = fieldJSON{Name: name, Ord: i, Font: "Arial", Media: []string{}, Size: 20}
	}
	tmpls := make([]templateJSON, len(m.Templates))
	req := make([][]any, 0, len(m.Templates))
	for i, t := range m.Templates {
		tmpls[i] = templateJSON{Name: t.Name, Ord: i, QFmt: t.QFmt, AFmt: t.AFmt}
		req = append(req, []any{i, "all", requiredFields(m.Fields, t.QFmt)})
	}
	return modelJSON{
		ID:        m.ID,
		Name:      m.Name,
		Mod:       modSec,
		USN:       -1,
		DID:       did,
		Tmpls:     tmpls,
		Flds:      flds,
		CSS:       m.CSS,
		LatexPre:  latexPre,
		LatexPost: latexPost,
		Tags:      []string{},
		Vers:      []int{},
		Req:       req,
	}
}

// requiredFields returns the ordinals of the fields a question template
// references.
func requiredFields(fields []string, qfmt string) []int {
	ords := make(map[string]int, len(fields))
	for i, f := range fields {
		ords[f] = i
	}
	out := []int{}
	seen := make(map[int]struct{})
	for _, m := range fieldRefRe.FindAllStringSubmatch(qfmt, -1) {
		i, ok := ords[m[1]]
		if !ok {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}

func newDeckJSON(id int64, name, desc string, modSec int64) deckJSON {
	return deckJSON{
		ID:        id,
		Name:      name,
		Desc:      desc,
		Mod:       modSec,
		USN:       -1,
		Conf:      1,
		ExtendNew: 10,
		ExtendRev: 50,
	}
}
