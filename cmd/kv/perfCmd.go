package kv

import (
	"context"
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/dStruct/cmd/util"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store/rstore"
	"github.com/google/uuid"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for key-value namespaces",
		Long:    util.WrapString("Runs parallel benchmarks against a temporary namespace. The namespace is cleared after every benchmark."),
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

// perfBenchmark is a single benchmark of the perf command
type perfBenchmark struct {
	name string
	// prefill stores every key before the benchmark starts
	prefill bool
	// op runs one operation against key, i is the operation counter of the worker
	op func(ctx context.Context, kv *rstore.KeyValue[any], key string, i int) error
}

// perfResult is the outcome of a single benchmark
type perfResult struct {
	bench   testing.BenchmarkResult
	latency gometrics.Timer
	errors  gometrics.Counter
}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = max(viper.GetInt("keys"), 1)
	perfNumThreads = max(viper.GetInt("threads"), 1)
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

// perfBenchmarks returns all benchmarks in execution order
func perfBenchmarks() []perfBenchmark {
	largeValue := strings.Repeat("x", perfLargeValueSizeKB*1024)

	return []perfBenchmark{
		{
			name: "set",
			op: func(ctx context.Context, kv *rstore.KeyValue[any], key string, _ int) error {
				return kv.Set(ctx, key, "test")
			},
		},
		{
			name: "set-large",
			op: func(ctx context.Context, kv *rstore.KeyValue[any], key string, _ int) error {
				return kv.Set(ctx, key, largeValue)
			},
		},
		{
			name: "set-ttl",
			op: func(ctx context.Context, kv *rstore.KeyValue[any], key string, _ int) error {
				return kv.SetTTL(ctx, key, "test", time.Minute)
			},
		},
		{
			name:    "get",
			prefill: true,
			op: func(ctx context.Context, kv *rstore.KeyValue[any], key string, _ int) error {
				_, _, err := kv.Get(ctx, key)
				return err
			},
		},
		{
			name:    "delete",
			prefill: true,
			op: func(ctx context.Context, kv *rstore.KeyValue[any], key string, _ int) error {
				return kv.Delete(ctx, key)
			},
		},
		{
			name:    "has",
			prefill: true,
			op: func(ctx context.Context, kv *rstore.KeyValue[any], key string, _ int) error {
				_, err := kv.Exists(ctx, key)
				return err
			},
		},
		{
			name: "has-not",
			op: func(ctx context.Context, kv *rstore.KeyValue[any], key string, _ int) error {
				_, err := kv.Exists(ctx, key)
				return err
			},
		},
		{
			name:    "mixed",
			prefill: true,
			op: func(ctx context.Context, kv *rstore.KeyValue[any], key string, i int) error {
				var err error
				switch i % 4 {
				case 0: // set
					err = kv.Set(ctx, key, "test")
				case 1: // get
					_, _, err = kv.Get(ctx, key)
				case 2: // delete
					err = kv.Delete(ctx, key)
				case 3: // has
					_, err = kv.Exists(ctx, key)
				}
				return err
			},
		},
	}
}

func runPerf(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	config := kvConfig

	fmt.Println("Performance testing tool for key-value namespaces")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	// every run works in its own namespace
	namespace := fmt.Sprintf("__perf-%s", uuid.NewString())
	perfStore, err := rstore.NewKeyValue[any](ctx, namespace, config, kvCodec)
	if err != nil {
		return err
	}
	defer perfStore.Close()

	fmt.Printf("starting tests in namespace %s...\n", namespace)

	registry := gometrics.NewRegistry()
	results := make(map[string]perfResult)
	order := make([]string, 0)

	for _, bm := range perfBenchmarks() {
		if shouldSkip(bm.name) {
			printResult(bm.name, perfResult{})
			continue
		}

		result := runBenchmark(ctx, perfStore, registry, bm)
		results[bm.name] = result
		order = append(order, bm.name)
		printResult(bm.name, result)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, order, results, config); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// runBenchmark runs bm in parallel and records the latency of every operation
func runBenchmark(ctx context.Context, kv *rstore.KeyValue[any], registry gometrics.Registry, bm perfBenchmark) perfResult {
	result := perfResult{
		latency: gometrics.GetOrRegisterTimer(bm.name+".latency", registry),
		errors:  gometrics.GetOrRegisterCounter(bm.name+".errors", registry),
	}

	getKey, iter := getKeys(bm.name)

	result.bench = testing.Benchmark(func(b *testing.B) {
		if bm.prefill {
			iter(func(k string) {
				if err := kv.Set(ctx, k, "test"); err != nil {
					util.Logger.Errorf("(%s) - error setting key: %v", bm.name, err)
				}
			})
		}

		// cleanup
		b.Cleanup(func() {
			if err := kv.Clear(ctx); err != nil {
				util.Logger.Errorf("(%s) - error clearing namespace: %v", bm.name, err)
			}
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				err := bm.op(ctx, kv, getKey(counter), counter)
				result.latency.UpdateSince(start)
				if err != nil {
					result.errors.Inc(1)
					util.Logger.Errorf("(%s) - error performing operation: %v", bm.name, err)
				}
				counter++
			}
		})
	})

	return result
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	return slices.Contains(perfSkip, test)
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%d", prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// opsPerSec derives the throughput of a benchmark result
func opsPerSec(result testing.BenchmarkResult) (nsPerOp float64, ops float64) {
	nsPerOp = math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	return nsPerOp, 1.0 / (nsPerOp / 1e9)
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result perfResult) {
	if result.latency == nil || result.bench.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp, ops := opsPerSec(result.bench)
	p99 := time.Duration(result.latency.Percentile(0.99))

	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\tp99=%s\terrors=%d\n",
		test, nsPerOp, time.Duration(nsPerOp), ops, p99, result.errors.Count())
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, order []string, results map[string]perfResult, config common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec",
		"LatencyMeanNs", "LatencyP50Ns", "LatencyP99Ns", "Errors",
		"Address", "DB", "Codec",
		"Threads", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for _, test := range order {
		result := results[test]
		nsPerOp, ops := opsPerSec(result.bench)
		percentiles := result.latency.Percentiles([]float64{0.5, 0.99})

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", ops),
			fmt.Sprintf("%.0f", result.latency.Mean()),
			fmt.Sprintf("%.0f", percentiles[0]),
			fmt.Sprintf("%.0f", percentiles[1]),
			strconv.FormatInt(result.errors.Count(), 10),
			config.Addr(),
			strconv.Itoa(config.DB),
			viper.GetString("codec"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
