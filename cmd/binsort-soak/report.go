package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/binsort/game"
)

type Report struct {
	// Configuration
	Simulated time.Duration
	Seed      uint64
	Accuracy  float64
	Stray     float64

	// Results
	Frames        int64
	Moves         int
	WallTime      time.Duration
	UpdateTime    Stats
	Score         int
	Scene         game.SceneStats
	CheckFailures int
	FinalCheck    []game.Violation
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Binsort Soak Report

## Run
- **Simulated Time:** {{.Simulated}}
- **Seed:** {{.Seed}}
- **Bot Accuracy:** {{printf "%.2f" .Accuracy}}  **Stray Drops:** {{printf "%.2f" .Stray}}

## Play
- **Moves:** {{.Moves}}  **Score:** {{.Score}}
- **Drags:** {{.Scene.Drags}}  **Bin Drops:** {{.Scene.BinDrops}}  **Returns:** {{.Scene.BinReturns}}
- **Tips:** {{.Scene.Tips}}  **Garbage Emptied:** {{.Scene.Emptied}}
- **Pieces:** {{.Scene.PiecesSpawned}} spawned, {{.Scene.PiecesCollected}} collected, {{.Scene.PiecesReturned}} returned
- **Stars:** {{.Scene.StarsSpawned}} spawned, {{.Scene.StarsCollected}} collected
- **Truck Trips:** {{.Scene.TruckTrips}}

## Occupancy
- **Reconcile Passes:** {{.Scene.Reconciles}}
- **Violations Found:** {{.Scene.Violations}}  **Repairs:** {{.Scene.Repairs}}
- **Failed Checks:** {{.CheckFailures}}
{{- range .FinalCheck}}
- still broken: {{.}}
{{- end}}

## Performance
- **Frames:** {{.Frames}} in {{.WallTime}}
- **Update Time:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
- **Heap Alloc:** {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- **Num GC:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
