// Command binsort-soak plays a headless scene with a random bot for a long
// stretch of simulated time and reports whether zones and bins ever fell
// out of step.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/binsort/config"
	"github.com/plus3/binsort/game"
)

func main() {
	simulated := flag.Duration("duration", 30*time.Minute, "Simulated time to play for.")
	seed := flag.Uint64("seed", 1, "Seed for both the scene and the bot.")
	accuracy := flag.Float64("accuracy", 0.7, "Chance the bot sorts a piece into the right bin.")
	stray := flag.Float64("stray", 0.1, "Chance the bot drops a bin outside every zone.")
	every := flag.Int("every", 20, "Frames between bot moves.")
	tuningPath := flag.String("tuning", "", "Optional tuning YAML overlaid on the defaults.")
	logLevel := flag.String("log-level", "error", "Scene log level.")
	flag.Parse()

	tuning, err := game.LoadTuning(*tuningPath)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLevel(*logLevel)}))
	scene, err := game.NewScene(game.Options{Tuning: &tuning, Seed: *seed, Logger: logger})
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	report := &Report{
		Simulated: *simulated,
		Seed:      *seed,
		Accuracy:  *accuracy,
		Stray:     *stray,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Playing %s of simulated time...\n", *simulated)
	run(scene, newBot(scene, *seed, *accuracy, *stray), *every, report)
	runtime.ReadMemStats(&report.MemStatsEnd)
	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if report.CheckFailures > 0 || len(report.FinalCheck) > 0 {
		os.Exit(1)
	}
}

// run steps the scene frame by frame, lets the bot move every few frames and
// checks occupancy once per simulated second.
func run(scene *game.Scene, b *bot, every int, report *Report) {
	frames := int64(report.Simulated / game.FrameStep)
	checkEvery := int64(time.Second / game.FrameStep)
	start := time.Now()

	for frame := int64(0); frame < frames; frame++ {
		if every > 0 && frame%int64(every) == 0 {
			b.act()
		}

		updateStart := time.Now()
		scene.Update(game.FrameStep.Seconds())
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		if frame%checkEvery == 0 && !scene.Animating() {
			if len(scene.Check()) > 0 {
				report.CheckFailures++
			}
		}
	}

	// let the last animations and the cleanup pass finish
	scene.Advance(5 * time.Second)

	report.Frames = frames
	report.WallTime = time.Since(start)
	report.UpdateTime.Finalize()
	report.Moves = b.moves
	report.Score = scene.Score()
	report.Scene = scene.Stats()
	report.FinalCheck = scene.Check()
}
