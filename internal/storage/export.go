package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/san-kum/kinesim/internal/sim"
)

type ExportSample struct {
	Time        float64    `json:"t"`
	Feet        [3]float64 `json:"feet"`
	Velocity    [3]float64 `json:"velocity"`
	OnFloor     bool       `json:"on_floor"`
	Jumping     bool       `json:"jumping"`
	State       string     `json:"state"`
	Animation   string     `json:"animation"`
	Contacts    int        `json:"contacts"`
	SphereSpeed float64    `json:"sphere_speed"`
	Respawned   bool       `json:"respawned,omitempty"`
	Threw       bool       `json:"threw,omitempty"`
}

type ExportData struct {
	RunMetadata
	Samples []ExportSample `json:"samples"`
}

func NewExport(meta RunMetadata, samples []sim.Sample) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Samples:     make([]ExportSample, len(samples)),
	}
	for i, s := range samples {
		data.Samples[i] = ExportSample{
			Time:        s.Time,
			Feet:        [3]float64(s.Feet),
			Velocity:    [3]float64(s.Velocity),
			OnFloor:     s.OnFloor,
			Jumping:     s.Jumping,
			State:       s.State.String(),
			Animation:   string(s.Animation),
			Contacts:    s.Contacts,
			SphereSpeed: s.SphereSpeed,
			Respawned:   s.Respawned,
			Threw:       s.Threw,
		}
	}
	return data
}

func ExportJSON(w io.Writer, meta RunMetadata, samples []sim.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExport(meta, samples))
}

// ExportCSV writes samples in the trajectory.csv layout.
func ExportCSV(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		if err := cw.Write(row(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
