// Package model contains domain models passed between layers.
package model

// Medal is the podium outcome of one participation entry.
type Medal string

// Medal values present in the dataset.
const (
	Gold    Medal = "Gold"
	Silver  Medal = "Silver"
	Bronze  Medal = "Bronze"
	NoMedal Medal = "No medal"
)

// PodiumMedals lists the medal types in podium order.
var PodiumMedals = []Medal{Gold, Silver, Bronze}

// Won reports whether m is anything other than NoMedal. Values outside the
// four known medals count as won.
func (m Medal) Won() bool { return m != NoMedal }

// Record is one athlete-event participation row.
type Record struct {
	Name    string `json:"name" yaml:"name"`
	Sex     string `json:"sex" yaml:"sex"`
	Country string `json:"country" yaml:"country"`
	Sport   string `json:"sport" yaml:"sport"`
	Event   string `json:"event" yaml:"event"`
	Year    int    `json:"year" yaml:"year"`
	Medal   Medal  `json:"medal" yaml:"medal"`
}

// Medalled returns the records whose medal was won, preserving order.
func Medalled(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Medal.Won() {
			out = append(out, r)
		}
	}
	return out
}
