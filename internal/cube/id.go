package cube

// ID names a cubie by the faces it shows when solved.
type ID string

const (
	ULB ID = "ULB"
	UB  ID = "UB"
	URB ID = "URB"
	UL  ID = "UL"
	UC  ID = "U"
	UR  ID = "UR"
	ULF ID = "ULF"
	UF  ID = "UF"
	URF ID = "URF"
	LB  ID = "LB"
	BC  ID = "B"
	RB  ID = "RB"
	LC  ID = "L"
	RC  ID = "R"
	LF  ID = "LF"
	FC  ID = "F"
	RF  ID = "RF"
	DLB ID = "DLB"
	DB  ID = "DB"
	DRB ID = "DRB"
	DL  ID = "DL"
	DC  ID = "D"
	DR  ID = "DR"
	DLF ID = "DLF"
	DF  ID = "DF"
	DRF ID = "DRF"
)

// IDs lists all cubie ids in reference order: top layer back to front,
// then the middle layer, then the bottom layer.
var IDs = [26]ID{
	ULB, UB, URB, UL, UC, UR, ULF, UF, URF,
	LB, BC, RB, LC, RC, LF, FC, RF,
	DLB, DB, DRB, DL, DC, DR, DLF, DF, DRF,
}

var idIndex = func() map[ID]int {
	m := make(map[ID]int, len(IDs))
	for i, id := range IDs {
		m[id] = i
	}
	return m
}()

// Index returns the reference ordinal of id, or -1 if id is unknown.
func (id ID) Index() int {
	if i, ok := idIndex[id]; ok {
		return i
	}
	return -1
}

// Known reports whether id belongs to the 26-id alphabet.
func (id ID) Known() bool {
	_, ok := idIndex[id]
	return ok
}

// Kind classifies a cubie by sticker count.
type Kind int

const (
	Center Kind = 1
	Edge   Kind = 2
	Corner Kind = 3
)

func (k Kind) String() string {
	switch k {
	case Center:
		return "center"
	case Edge:
		return "edge"
	case Corner:
		return "corner"
	default:
		return "unknown"
	}
}

// Kind returns the piece kind encoded by the id.
func (id ID) Kind() Kind {
	return Kind(len(id))
}
