package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/packopt/packopt/search"
)

// Report wraps a search Result with run metadata for JSON export.
type Report struct {
	Timestamp       string         `json:"timestamp"`
	DurationSeconds float64        `json:"duration_seconds"`
	CatalogSize     int            `json:"catalog_size"`
	Capacity        int            `json:"capacity"`
	Result          *search.Result `json:"result"`
}

// WriteReport exports the report as indented JSON, creating parent
// directories as needed.
func WriteReport(path string, report *Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// PrintSummary displays the run outcome at the end of a search.
func PrintSummary(result *search.Result, duration time.Duration) {
	fmt.Println("=== Search Result ===")
	fmt.Printf("Algorithm            : %s\n", result.Algorithm)
	fmt.Printf("Stop Reason          : %s\n", result.StopReason)
	fmt.Printf("Iterations           : %d\n", result.Iterations)
	fmt.Printf("Duration             : %.4fs\n", duration.Seconds())
	fmt.Printf("Initial Objective    : %.2f\n", result.InitialValue)
	fmt.Printf("Final Objective      : %.2f\n", result.BestValue)
	fmt.Printf("Improvement          : %.2f (%.2f%%)\n", result.Improvement, result.ImprovementPercent)
	fmt.Printf("Containers           : %d -> %d\n", result.InitialContainers, result.FinalContainers)
	fmt.Printf("Valid Solution       : %t\n", result.IsValid)
	for _, layout := range result.Solution {
		fmt.Printf("  container %d (load %d): %v\n", layout.ID, layout.Load, layout.Items)
	}
}

// PrintComparison displays the container count each constructive heuristic
// produced, next to the theoretical lower bound.
func PrintComparison(catalog search.Catalog, capacity int, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	lowerBound := (catalog.TotalSize() + capacity - 1) / capacity
	fmt.Println("=== Heuristic Comparison ===")
	fmt.Printf("Items                : %d (total size %d, capacity %d)\n", len(catalog), catalog.TotalSize(), capacity)
	fmt.Printf("Theoretical Minimum  : %d containers\n", lowerBound)
	for _, name := range names {
		fmt.Printf("%-20s : %d containers\n", name, counts[name])
	}
}

// NewReport assembles a Report from a finished run.
func NewReport(result *search.Result, catalog search.Catalog, capacity int, duration time.Duration) *Report {
	return &Report{
		Timestamp:       time.Now().Format(time.RFC3339),
		DurationSeconds: duration.Seconds(),
		CatalogSize:     len(catalog),
		Capacity:        capacity,
		Result:          result,
	}
}
