package config

import "time"

// DefaultBenchmarks is the upstream suite in its canonical run order.
var DefaultBenchmarks = []string{
	"BFS", "BS", "GEMV", "HST-L", "HST-S", "MLP", "NW", "RED",
	"SCAN-RSS", "SCAN-SSA", "SEL", "SpMV", "TRNS", "TS", "UNI", "VA",
}

// defaultExcludeBinaries lists bin/ entries that are device-side or helper
// binaries and must never be picked as the thing to run.
var defaultExcludeBinaries = []string{
	"dpu_code", "dpu", "dpu_host", "gemv_dpu", "trns_dpu", "bfs_dpu", "nw_dpu",
}

// The BFS graph dataset, hosted on Zenodo. Two URL forms because the CDN
// rejects one or the other depending on mood.
var defaultDatasetURLs = []string{
	"https://zenodo.org/records/18307126/files/bfs-data.tar.zst?download=1",
	"https://zenodo.org/records/18307126/files/bfs-data.tar.zst",
}

const defaultDatasetSHA256 = "1fe6b7b185509cd567fd530f378aa15c48ff43ad5be8d2c9707e93ff0ada7f3a"

// Default returns the compiled-in suite for the given root directory.
func Default(root string) *Suite {
	benches := make([]BenchmarkSpec, 0, len(DefaultBenchmarks))
	for _, name := range DefaultBenchmarks {
		benches = append(benches, BenchmarkSpec{
			Name:            name,
			Dir:             name,
			RequiresDataset: name == "BFS",
		})
	}

	return &Suite{
		Root:       root,
		LogRoot:    "logs",
		Benchmarks: benches,
		Dataset: DatasetSpec{
			URLs:    append([]string(nil), defaultDatasetURLs...),
			SHA256:  defaultDatasetSHA256,
			Archive: "bfs-data.tar.zst",
			Markers: []string{
				"data/LiveJournal1",
				"data/loc-gowalla",
				"data/roadNet-PA",
			},
			Timeout: 60 * time.Second,
			Retries: 6,
		},
		Build: BuildSpec{
			Jobs: 4,
		},
		ExcludeBinaries: append([]string(nil), defaultExcludeBinaries...),
		AllowDownload:   true,
	}
}
