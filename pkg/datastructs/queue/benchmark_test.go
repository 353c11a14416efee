package queue

import (
	"sync"
	"testing"
)

// ===========================================================================
// Benchmark Configuration
// ===========================================================================

// queueBenchConfig holds benchmark test configuration.
type queueBenchConfig struct {
	name     string
	capacity int
}

// benchConfigs defines the capacities for benchmarking.
var benchConfigs = []queueBenchConfig{
	{"Tiny/Cap1", 1},
	{"Small/Cap64", 64},
	{"Medium/Cap1K", 1024},
}

// ===========================================================================
// Single-Goroutine Benchmarks
// ===========================================================================

// BenchmarkPutGet measures an uncontended Put+Get roundtrip.
func BenchmarkPutGet(b *testing.B) {
	for implName, factory := range queueImplementations {
		for _, cfg := range benchConfigs {
			b.Run(implName+"/"+cfg.name, func(b *testing.B) {
				q := mustFactory(b, factory, cfg.capacity)
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					q.Put(i)
					q.Get()
				}
			})
		}
	}
}

// BenchmarkTryPutTryGet measures the non-blocking paths, including full/empty misses.
func BenchmarkTryPutTryGet(b *testing.B) {
	for implName, factory := range queueImplementations {
		for _, cfg := range benchConfigs {
			b.Run(implName+"/"+cfg.name, func(b *testing.B) {
				q := mustFactory(b, factory, cfg.capacity)
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if !q.TryPut(i) {
						for {
							if _, ok := q.TryGet(); !ok {
								break
							}
						}
					}
				}
			})
		}
	}
}

// ===========================================================================
// Concurrent Benchmarks
// ===========================================================================

// concurrencyConfigs defines producer/consumer count combinations.
var concurrencyConfigs = []struct {
	name      string
	producers int
	consumers int
}{
	{"1P1C", 1, 1},
	{"2P2C", 2, 2},
	{"4P4C", 4, 4},
	{"8P8C", 8, 8},
	{"8P1C", 8, 1},
	{"1P8C", 1, 8},
}

// BenchmarkConcurrent_Handoff measures blocking producer/consumer throughput.
func BenchmarkConcurrent_Handoff(b *testing.B) {
	const capacity = 64
	const itemsPerProducer = 10000

	for implName, factory := range queueImplementations {
		for _, cc := range concurrencyConfigs {
			b.Run(implName+"/"+cc.name, func(b *testing.B) {
				total := cc.producers * itemsPerProducer
				for n := 0; n < b.N; n++ {
					q := mustFactory(b, factory, capacity)
					var wg sync.WaitGroup

					wg.Add(cc.producers)
					for p := 0; p < cc.producers; p++ {
						go func(id int) {
							defer wg.Done()
							for i := 0; i < itemsPerProducer; i++ {
								q.Put(id*itemsPerProducer + i)
							}
						}(p)
					}

					wg.Add(cc.consumers)
					for c := 0; c < cc.consumers; c++ {
						share := total / cc.consumers
						if c < total%cc.consumers {
							share++
						}
						go func(count int) {
							defer wg.Done()
							for i := 0; i < count; i++ {
								q.Get()
							}
						}(share)
					}

					wg.Wait()
				}
				b.ReportMetric(float64(total*b.N)/b.Elapsed().Seconds(), "items/s")
			})
		}
	}
}
