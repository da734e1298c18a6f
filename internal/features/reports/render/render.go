// Package render writes reports as plain text, CSV or JSON.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"order-manager/internal/features/reports/domain"
)

// Format selects a Renderer.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Renderer serializes a report.
type Renderer interface {
	ContentType() string
	Render(w io.Writer, r domain.Report) error
}

var renderers = map[Format]Renderer{
	FormatText: textRenderer{},
	FormatCSV:  csvRenderer{},
	FormatJSON: jsonRenderer{},
}

// For returns the renderer of format. An empty format means text.
func For(format Format) (Renderer, error) {
	if format == "" {
		format = FormatText
	}
	r, ok := renderers[Format(strings.ToLower(string(format)))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFormat, format)
	}
	return r, nil
}

type textRenderer struct{}

func (textRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (textRenderer) Render(w io.Writer, r domain.Report) error {
	if _, err := fmt.Fprintln(w, r.Title()); err != nil {
		return err
	}
	for _, line := range r.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type csvRenderer struct{}

func (csvRenderer) ContentType() string { return "text/csv; charset=utf-8" }

func (csvRenderer) Render(w io.Writer, r domain.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header()); err != nil {
		return err
	}
	if err := cw.WriteAll(r.Rows()); err != nil {
		return err
	}
	return cw.Error()
}

type jsonRenderer struct{}

func (jsonRenderer) ContentType() string { return "application/json" }

func (jsonRenderer) Render(w io.Writer, r domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
