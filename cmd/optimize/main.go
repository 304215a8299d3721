// Package main provides a single-run CLI for the equipment optimizer,
// grounded on the original dofus_set binary's print_state layout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/equipment"
	"github.com/corvid-labs/equipwright/internal/optimizer"
	"github.com/corvid-labs/equipwright/internal/presets"
	"github.com/corvid-labs/equipwright/internal/stats"
)

func main() {
	start := time.Now()

	presetName := flag.String("preset", "", "named objective preset (see configs/presets/); empty = raw weights flag")
	weightsFile := flag.String("weights", "", "path to a YAML file of {stat: weight} when -preset is not given")
	maxLevel := flag.Int64("max-level", 148, "maximum item level to consider")
	iterations := flag.Int64("iterations", 1_000_000, "annealing iteration budget")
	initialTemp := flag.Float64("initial-temperature", 1000, "initial annealing temperature")
	multiElement := flag.Bool("multi-element", false, "score elemental damage by minimum across elements instead of sum")
	considerCharacteristics := flag.Bool("consider-characteristics", false, "enable the characteristic-point over-budget check (the optimizer does not allocate points)")
	flag.Parse()

	cat, err := catalog.LoadEmbedded()
	if err != nil {
		log.Fatalf("loading catalog: %v", err)
	}

	cfg := optimizer.Config{
		MaxLevel:                int32(*maxLevel),
		Iterations:              *iterations,
		InitialTemperature:      *initialTemp,
		MultiElement:            *multiElement,
		ConsiderCharacteristics: *considerCharacteristics,
	}
	for i := range cfg.InitialSet {
		cfg.InitialSet[i] = catalog.NoItem
	}
	for slot := 1; slot < catalog.NumSlots; slot++ {
		cfg.Changeable = append(cfg.Changeable, slot)
	}

	if err := applyWeights(&cfg, *presetName, *weightsFile); err != nil {
		log.Fatalf("resolving weights: %v", err)
	}

	opt, initial, err := optimizer.New(&cfg, cat, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	final, err := opt.Run(initial)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printState(&final, &cfg, cat)
	fmt.Printf("Set Energy: %v\n", -optimizer.Energy(&cfg, cat, &final, final.SetBonuses(cat)))
	fmt.Printf("(%s)\n", time.Since(start).Round(time.Millisecond))
}

// applyWeights fills cfg.Weights/Targets/ChangedItemWeight from a named
// preset or a raw weights file. Neither given leaves cfg's zero weights,
// which is a valid (if aimless) configuration.
func applyWeights(cfg *optimizer.Config, presetName, weightsFile string) error {
	if presetName != "" {
		registry, err := presets.LoadEmbedded()
		if err != nil {
			return fmt.Errorf("loading embedded presets: %w", err)
		}
		p, ok := registry.Get(presetName)
		if !ok {
			return fmt.Errorf("unknown preset %q (available: %v)", presetName, registry.Names())
		}
		cfg.Weights = p.WeightVector()
		cfg.Targets = p.TargetVector()
		cfg.MultiElement = cfg.MultiElement || p.MultiElement
		cfg.ChangedItemWeight = p.ChangedItemWeight
		return nil
	}

	if weightsFile == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(weightsFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading weights file: %w", err)
	}
	raw := v.GetStringMap("weights")
	for name, value := range raw {
		stat, ok := stats.ParseStat(name)
		if !ok {
			continue
		}
		if f, ok := value.(float64); ok {
			cfg.Weights[stat] = f
		}
	}
	return nil
}

func printState(final *equipment.State, cfg *optimizer.Config, cat *catalog.Catalog) {
	lastType := catalog.ItemType(-2)
	for slot := 0; slot < catalog.NumSlots; slot++ {
		idx := final.Slot(slot)
		if !idx.IsPresent() {
			continue
		}
		item := cat.Item(idx)
		if item.ItemType != lastType {
			fmt.Println(item.ItemType)
			fmt.Println("-----------------------------")
			lastType = item.ItemType
		}
		printItem(item.Name, item.Level, &item.Stats)
	}

	fmt.Println("Stats")
	fmt.Println("-----------------------------")
	bonuses := final.SetBonuses(cat)
	derived := equipment.DerivedConfig{MaxLevel: cfg.MaxLevel, ExoAP: cfg.ExoAP, ExoMP: cfg.ExoMP, ExoRange: cfg.ExoRange}
	overall := final.Stats(derived, bonuses)
	printStats(&overall)

	fmt.Println("\nSet bonuses")
	fmt.Println("-----------------------------")
	for _, b := range bonuses {
		set := cat.Set(b.SetID)
		fmt.Printf("%s - %d items\n", set.Name, b.MemberCount)
		printStats(&b.Bonus)
	}
}

func printItem(name string, level int32, sv *stats.Vector) {
	fmt.Printf("Name: %s\n", name)
	fmt.Printf("Level: %d\n", level)
	fmt.Println("Stats:")
	printStats(sv)
	fmt.Println("==============================")
}

func printStats(sv *stats.Vector) {
	for i := 0; i < stats.NumStats; i++ {
		stat := stats.Stat(i)
		value := sv.Get(stat)
		if value != 0 {
			fmt.Printf("\t%s: %d\n", stat, value)
		}
	}
}
