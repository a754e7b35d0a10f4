package driver

import (
	"encoding/json"
	"math"

	"novel/internal/diag"
	"novel/internal/observ"
	"novel/internal/source"
)

type timingPayload struct {
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic reports the run timings as a note. The third
// argument carries the JSON payload for machine-readable output.
func appendTimingDiagnostic(eng *diag.Engine, rng source.Range, path string, report observ.Report) {
	if eng == nil {
		return
	}
	data, err := json.Marshal(timingPayload{Path: path, TotalMS: report.TotalMS, Phases: report.Phases})
	if err != nil {
		return
	}
	total := math.Round(report.TotalMS*100) / 100
	eng.Diagnose(rng, diag.ObsTimings, diag.Str(path), diag.Float(total), diag.Str(string(data)))
}
