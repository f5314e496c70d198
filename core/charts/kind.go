package charts

import "strings"

type Kind uint8

const (
	KindUnknown Kind = iota
	KindBar
	KindWell
	KindRadar
)

var kindNames = map[Kind]string{
	KindBar:   "bar",
	KindWell:  "well",
	KindRadar: "radar",
}

func ParseKind(raw string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bar":
		return KindBar, true
	case "well":
		return KindWell, true
	case "radar":
		return KindRadar, true
	default:
		return KindUnknown, false
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}
