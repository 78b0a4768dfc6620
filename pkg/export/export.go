// Package export writes a solved project as JSON or as an XLSX workbook.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

// Document is everything one solve run produced.
type Document struct {
	Project      string               `json:"project"`
	SpecVersion  string               `json:"spec_version"`
	GeneratedAt  string               `json:"generated_at"`
	Site         layout.Site          `json:"site"`
	Config       layout.Config        `json:"config"`
	Arrangements []layout.Arrangement `json:"arrangements"`
	Failures     layout.Tally         `json:"failures"`
	Truncated    bool                 `json:"truncated,omitempty"`
	// Reserves lines up with Arrangements when present.
	Reserves []layout.Reserve `json:"reserves,omitempty"`
}

// NewDocument collects a result for export. reserves may be nil.
func NewDocument(p *spec.Project, site layout.Site, cfg layout.Config, res *layout.Result, reserves []layout.Reserve) (*Document, error) {
	if reserves != nil && len(reserves) != len(res.Arrangements) {
		return nil, fmt.Errorf("export: %d reserves for %d arrangements", len(reserves), len(res.Arrangements))
	}
	d := &Document{
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Site:         site,
		Config:       cfg,
		Arrangements: res.Arrangements,
		Failures:     res.Tally,
		Truncated:    res.Truncated,
		Reserves:     reserves,
	}
	if p != nil {
		d.Project = p.Name
		d.SpecVersion = p.SpecVersion
	}
	return d, nil
}

// reserve returns the reserve for arrangement i, if computed.
func (d *Document) reserve(i int) (layout.Reserve, bool) {
	if i >= len(d.Reserves) {
		return layout.Reserve{}, false
	}
	return d.Reserves[i], true
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, d *Document) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
