package renderer

import (
	"github.com/etnz/cardfolio"
)

// Healing is the report of the saved IDs that did not match the catalog exactly.
type Healing struct {
	DryRun     bool            `json:"dryRun,omitempty"`
	Rebound    int             `json:"rebound"`
	Unresolved int             `json:"unresolved"`
	Rows       []ResolutionRow `json:"rows"`
}

// ResolutionRow is a single non exact entry.
type ResolutionRow struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Method   string `json:"method"`
	Quantity int    `json:"quantity"`
}

// NewHealing creates the healing report. dryRun tells that the healed
// portfolio was not saved.
func NewHealing(h cardfolio.Healing, dryRun bool) *Healing {
	r := &Healing{DryRun: dryRun}
	for _, res := range h.Resolutions {
		if res.Method == cardfolio.Unresolved {
			r.Unresolved++
		} else {
			r.Rebound++
		}
		r.Rows = append(r.Rows, ResolutionRow{
			From:     cell(res.From),
			To:       cell(res.To),
			Method:   res.Method.String(),
			Quantity: res.Quantity,
		})
	}
	return r
}
