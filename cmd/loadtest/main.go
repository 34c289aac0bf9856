// Нагрузочный тестер user service: сценарии регистрации, заказов и
// истории поверх HTTP API, с отчётом по задержкам и кодам ответов.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type loadMode string

const (
	modeRegister      loadMode = "register"
	modeRegisterOrder loadMode = "register-order"
	modeFull          loadMode = "full"
)

type config struct {
	baseURL     string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	timeout     time.Duration
	mode        loadMode
	ordersPerID int
	userTag     string
	outputPath  string
}

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type endpointReport struct {
	Calls     int64            `json:"calls"`
	Success   int64            `json:"success"`
	Failed    int64            `json:"failed"`
	ErrorRate float64          `json:"error_rate"`
	Statuses  map[string]int64 `json:"statuses"`
	LatencyMs latencySummary   `json:"latency_ms"`
}

type report struct {
	StartedAt         time.Time                 `json:"started_at"`
	DurationSeconds   float64                   `json:"duration_seconds"`
	TotalScenarios    int64                     `json:"total_scenarios"`
	SuccessScenarios  int64                     `json:"success_scenarios"`
	FailedScenarios   int64                     `json:"failed_scenarios"`
	ErrorRate         float64                   `json:"error_rate"`
	RPS               float64                   `json:"rps"`
	ScenarioLatencyMs latencySummary            `json:"scenario_latency_ms"`
	Endpoints         map[string]endpointReport `json:"endpoints"`
}

type endpointStats struct {
	calls     int64
	success   int64
	failed    int64
	statuses  map[string]int64
	latencies []float64
}

type collector struct {
	mu        sync.Mutex
	endpoints map[string]*endpointStats
}

func newCollector() *collector {
	return &collector{
		endpoints: make(map[string]*endpointStats),
	}
}

func (c *collector) record(endpoint string, latency time.Duration, status int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, exists := c.endpoints[endpoint]
	if !exists {
		stats = &endpointStats{
			statuses: make(map[string]int64),
		}
		c.endpoints[endpoint] = stats
	}

	stats.calls++
	if ok {
		stats.success++
	} else {
		stats.failed++
	}
	stats.statuses[statusLabel(status)]++
	stats.latencies = append(stats.latencies, float64(latency.Microseconds())/1000.0)
}

func (c *collector) buildReport(startedAt time.Time, duration time.Duration) report {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := report{
		StartedAt:       startedAt.UTC(),
		DurationSeconds: duration.Seconds(),
		Endpoints:       make(map[string]endpointReport, len(c.endpoints)),
	}

	scenarioStats := c.endpoints["scenario"]
	if scenarioStats != nil {
		result.TotalScenarios = scenarioStats.calls
		result.SuccessScenarios = scenarioStats.success
		result.FailedScenarios = scenarioStats.failed
		result.ErrorRate = ratio(scenarioStats.failed, scenarioStats.calls)
		result.ScenarioLatencyMs = buildLatencySummary(scenarioStats.latencies)
	}
	if duration > 0 {
		result.RPS = float64(result.TotalScenarios) / duration.Seconds()
	}

	for name, stats := range c.endpoints {
		statusesCopy := make(map[string]int64, len(stats.statuses))
		for status, count := range stats.statuses {
			statusesCopy[status] = count
		}
		result.Endpoints[name] = endpointReport{
			Calls:     stats.calls,
			Success:   stats.success,
			Failed:    stats.failed,
			ErrorRate: ratio(stats.failed, stats.calls),
			Statuses:  statusesCopy,
			LatencyMs: buildLatencySummary(stats.latencies),
		}
	}

	return result
}

// statusLabel переводит HTTP-статус в метку отчёта; 0 означает
// транспортную ошибку до получения ответа.
func statusLabel(status int) string {
	if status == 0 {
		return "transport_error"
	}
	return fmt.Sprintf("%d", status)
}

func parseConfig() (config, error) {
	var cfg config
	var modeValue string
	var timeoutValue string
	var durationValue string

	flag.StringVar(&cfg.baseURL, "url", "http://localhost:8080", "user service base URL")
	flag.IntVar(&cfg.total, "total", 400, "total scenarios to execute in count mode; in duration mode only used when explicitly set")
	flag.StringVar(&durationValue, "duration", "0s", "optional time-based run duration (e.g. 10m, 15m)")
	flag.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	flag.StringVar(&timeoutValue, "timeout", "5s", "per-request timeout")
	flag.StringVar(&modeValue, "mode", string(modeRegister), "load mode: register | register-order | full")
	flag.IntVar(&cfg.ordersPerID, "orders", 2, "orders appended per scenario in order modes")
	flag.StringVar(&cfg.userTag, "user-tag", "load", "user name prefix")
	flag.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	flag.Parse()

	timeout, err := time.ParseDuration(strings.TrimSpace(timeoutValue))
	if err != nil {
		return cfg, fmt.Errorf("parse timeout: %w", err)
	}
	cfg.timeout = timeout

	duration, err := time.ParseDuration(strings.TrimSpace(durationValue))
	if err != nil {
		return cfg, fmt.Errorf("parse duration: %w", err)
	}
	cfg.duration = duration

	flag.CommandLine.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	mode, err := parseMode(modeValue)
	if err != nil {
		return cfg, err
	}
	cfg.mode = mode

	if cfg.duration < 0 {
		return cfg, errors.New("duration must be >= 0")
	}
	if cfg.duration == 0 && cfg.total <= 0 {
		return cfg, errors.New("total must be > 0 when duration is not set")
	}
	if cfg.duration > 0 && cfg.totalSet && cfg.total <= 0 {
		return cfg, errors.New("total must be > 0 when explicitly set with duration")
	}
	if cfg.concurrency <= 0 {
		return cfg, errors.New("concurrency must be > 0")
	}
	if cfg.timeout <= 0 {
		return cfg, errors.New("timeout must be > 0")
	}
	if cfg.ordersPerID <= 0 {
		return cfg, errors.New("orders must be > 0")
	}
	if strings.TrimSpace(cfg.userTag) == "" {
		return cfg, errors.New("user-tag is required")
	}
	if strings.TrimSpace(cfg.baseURL) == "" {
		return cfg, errors.New("url is required")
	}
	cfg.baseURL = strings.TrimRight(strings.TrimSpace(cfg.baseURL), "/")

	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch loadMode(strings.TrimSpace(value)) {
	case modeRegister:
		return modeRegister, nil
	case modeRegisterOrder:
		return modeRegisterOrder, nil
	case modeFull:
		return modeFull, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: cfg.timeout}

	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()

	jobs := make(chan int, cfg.concurrency*2)
	var failures int64
	var wg sync.WaitGroup

	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if runErr := runScenario(client, cfg, id, runID, col); runErr != nil {
					atomic.AddInt64(&failures, 1)
				}
			}
		}()
	}

	dispatchJobs(jobs, cfg)
	wg.Wait()

	duration := time.Since(startedAt)
	result := col.buildReport(startedAt, duration)
	if result.FailedScenarios == 0 && failures > 0 {
		result.FailedScenarios = failures
		result.ErrorRate = ratio(result.FailedScenarios, result.TotalScenarios)
	}

	printReport(result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}

	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

func dispatchJobs(jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			jobs <- i
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()

	for i := 0; ; i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}

		select {
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

func runScenario(client *http.Client, cfg config, index int, runID string, col *collector) error {
	scenarioStart := time.Now()
	scenarioStatus := http.StatusOK
	scenarioOK := true
	defer func() {
		col.record("scenario", time.Since(scenarioStart), scenarioStatus, scenarioOK)
	}()

	name := fmt.Sprintf("%s-%s-%d", cfg.userTag, runID, index)
	password := fmt.Sprintf("pw-%d", index)

	registerBody := fmt.Sprintf(
		`{"name":%q,"password":%q,"email":%q}`,
		name, password, name+"@loadtest.local",
	)
	status, err := call(client, http.MethodPost, cfg.baseURL+"/register", registerBody, "register", col)
	if err != nil || status != http.StatusOK {
		scenarioStatus, scenarioOK = status, false
		return scenarioError("register", status, err)
	}

	if cfg.mode == modeRegister {
		return nil
	}

	for orderIdx := 0; orderIdx < cfg.ordersPerID; orderIdx++ {
		orderBody := fmt.Sprintf(`{"orderid":"lt-%s-%d-%d","total":%d}`, runID, index, orderIdx, 100+orderIdx)
		status, err = call(client, http.MethodPost, cfg.baseURL+"/order/"+name, orderBody, "order", col)
		if err != nil || status != http.StatusOK {
			scenarioStatus, scenarioOK = status, false
			return scenarioError("order", status, err)
		}
	}

	if cfg.mode == modeRegisterOrder {
		return nil
	}

	status, err = call(client, http.MethodGet, cfg.baseURL+"/history/"+name, "", "history", col)
	if err != nil || status != http.StatusOK {
		scenarioStatus, scenarioOK = status, false
		return scenarioError("history", status, err)
	}

	loginBody := fmt.Sprintf(`{"name":%q,"password":%q}`, name, password)
	status, err = call(client, http.MethodPost, cfg.baseURL+"/login", loginBody, "login", col)
	if err != nil || status != http.StatusOK {
		scenarioStatus, scenarioOK = status, false
		return scenarioError("login", status, err)
	}

	return nil
}

func scenarioError(step string, status int, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}
	return fmt.Errorf("%s: unexpected status %d", step, status)
}

// call выполняет один HTTP-запрос и записывает его в сборщик.
// Возвращает статус ответа; 0 при транспортной ошибке.
func call(client *http.Client, method, url, body, endpoint string, col *collector) (int, error) {
	start := time.Now()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		col.record(endpoint, time.Since(start), 0, false)
		return 0, err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		col.record(endpoint, time.Since(start), 0, false)
		return 0, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	ok := resp.StatusCode == http.StatusOK
	col.record(endpoint, time.Since(start), resp.StatusCode, ok)
	return resp.StatusCode, nil
}

func writeJSONReport(path string, result report) error {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == string(filepath.Separator) {
		return errors.New("output path must point to a file")
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output path must be inside current directory: %s", path)
	}

	// #nosec G304 -- path is an explicit CLI output parameter for local load-test reports.
	file, err := os.Create(cleanPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printReport(result report, cfg config) {
	fmt.Println("Load test summary")
	fmt.Printf("mode=%s target=%s total=%d success=%d failed=%d error_rate=%.4f\n",
		cfg.mode,
		runTarget(cfg),
		result.TotalScenarios,
		result.SuccessScenarios,
		result.FailedScenarios,
		result.ErrorRate,
	)
	fmt.Printf("duration=%.2fs rps=%.2f\n", result.DurationSeconds, result.RPS)
	fmt.Printf("scenario latency ms: min=%.2f avg=%.2f p50=%.2f p95=%.2f p99=%.2f max=%.2f\n",
		result.ScenarioLatencyMs.Min,
		result.ScenarioLatencyMs.Avg,
		result.ScenarioLatencyMs.P50,
		result.ScenarioLatencyMs.P95,
		result.ScenarioLatencyMs.P99,
		result.ScenarioLatencyMs.Max,
	)

	endpointNames := make([]string, 0, len(result.Endpoints))
	for name := range result.Endpoints {
		if name == "scenario" {
			continue
		}
		endpointNames = append(endpointNames, name)
	}
	sort.Strings(endpointNames)
	for _, name := range endpointNames {
		stats := result.Endpoints[name]
		fmt.Printf(
			"%s: calls=%d success=%d failed=%d error_rate=%.4f p95=%.2fms\n",
			name,
			stats.Calls,
			stats.Success,
			stats.Failed,
			stats.ErrorRate,
			stats.LatencyMs.P95,
		)
	}
}

func runTarget(cfg config) string {
	if cfg.duration <= 0 {
		return fmt.Sprintf("count:%d", cfg.total)
	}
	if cfg.totalSet {
		return fmt.Sprintf("duration:%s,max-total:%d", cfg.duration, cfg.total)
	}
	return fmt.Sprintf("duration:%s", cfg.duration)
}

func buildLatencySummary(values []float64) latencySummary {
	if len(values) == 0 {
		return latencySummary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, value := range sorted {
		sum += value
	}

	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: sum / float64(len(sorted)),
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
	}
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	weight := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}

func ratio(failed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(failed) / float64(total)
}
