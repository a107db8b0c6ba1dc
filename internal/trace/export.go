package trace

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"github.com/ambientai/feen-go/internal/resonator"
)

// ExportData is the JSON export layout for one run.
type ExportData struct {
	Label      string               `json:"label"`
	Dt         float64              `json:"dt"`
	Steps      int                  `json:"steps"`
	Resonator  resonator.Config     `json:"resonator"`
	Excitation resonator.Excitation `json:"excitation"`
	DeltaV     float64              `json:"delta_v"`
	Times      []float64            `json:"times"`
	States     []resonator.State    `json:"states"`
}

// ExportJSON writes the full trace with its metadata as indented JSON.
func ExportJSON(path string, meta RunMetadata, rec *Recorder) error {
	data := ExportData{
		Label:      meta.Label,
		Dt:         meta.Dt,
		Steps:      rec.Len(),
		Resonator:  meta.Resonator,
		Excitation: meta.Excitation,
		DeltaV:     meta.DeltaV,
		Times:      rec.Times,
		States:     rec.States,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes the state series as t,x,v,energy,phase rows.
func WriteCSV(w io.Writer, rec *Recorder) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"t", "x", "v", "energy", "phase"}); err != nil {
		return err
	}
	for i, s := range rec.States {
		row := []string{
			formatFloat(rec.Times[i]),
			formatFloat(s.X),
			formatFloat(s.V),
			formatFloat(s.Energy),
			formatFloat(s.Phase),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the state series to a file.
func ExportCSV(path string, rec *Recorder) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, rec)
}
