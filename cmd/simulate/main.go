package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebridge/healthcare-backend/internal/config"
	"github.com/carebridge/healthcare-backend/internal/db"
)

// The simulator stress-tests booking under contention: many workers
// race to book overlapping times for the same doctor and day, then the
// database is checked for overlapping active appointments.

type SimConfig struct {
	APIBaseURL  string
	Duration    time.Duration
	Workers     int
	DoctorName  string
	Date        string
	PostgresDSN string
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Busy      int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, outcome string) {
	atomic.AddInt64(&om.Total, 1)
	switch outcome {
	case "success":
		atomic.AddInt64(&om.Success, 1)
	case "conflict":
		atomic.AddInt64(&om.Conflict, 1)
	case "busy":
		atomic.AddInt64(&om.Busy, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]

	p50Idx := len(latencies) * 50 / 100
	if p50Idx >= len(latencies) {
		p50Idx = len(latencies) - 1
	}
	p50 = latencies[p50Idx]

	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p50, p95
}

type Simulator struct {
	config  SimConfig
	client  *http.Client
	metrics OperationMetrics
	times   []string
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d doctor=%q date=%s",
		cfg.Duration, cfg.Workers, cfg.DoctorName, cfg.Date)

	sim := &Simulator{
		config: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		times: candidateTimes(),
	}

	sim.Run()
	sim.PrintReport()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pgPool.Close()

	if err := verifyNoOverlaps(ctx, pgPool, cfg.DoctorName, cfg.Date); err != nil {
		log.Fatalf("invariant check failed: %v", err)
	}
	log.Println("invariant check passed: no overlapping active appointments")
}

func loadConfig() SimConfig {
	baseCfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load base config: %v", err)
	}

	return SimConfig{
		APIBaseURL:  getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:    getDuration("SIM_DURATION", 30*time.Second),
		Workers:     getInt("SIM_WORKERS", 20),
		DoctorName:  getEnv("SIM_DOCTOR_NAME", "Dr. Load Test"),
		Date:        getEnv("SIM_DATE", time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")),
		PostgresDSN: baseCfg.PostgresDSN,
	}
}

func validateConfig(cfg SimConfig) error {
	if cfg.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required (set in .env or environment)")
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if _, err := time.Parse("2006-01-02", cfg.Date); err != nil {
		return fmt.Errorf("SIM_DATE must be YYYY-MM-DD: %w", err)
	}
	return nil
}

// candidateTimes spans a working day at 5-minute steps, so most picks
// overlap an already booked 20-minute slot.
func candidateTimes() []string {
	var times []string
	for minute := 9 * 60; minute < 17*60; minute += 5 {
		times = append(times, fmt.Sprintf("%02d:%02d", minute/60, minute%60))
	}
	return times
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	token, err := s.registerUser(ctx, workerID)
	if err != nil {
		log.Printf("worker %d: register failed: %v", workerID, err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
			s.doBooking(ctx, rng, token)
		}
	}
}

func (s *Simulator) registerUser(ctx context.Context, workerID int) (string, error) {
	reqBody := map[string]string{
		"email":    fmt.Sprintf("sim-worker-%d-%d@example.com", workerID, time.Now().UnixNano()),
		"name":     gofakeit.Name(),
		"phone":    gofakeit.Phone(),
		"password": "simulate123",
	}
	body, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIBaseURL+"/api/auth/register", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("register returned %d: %s", resp.StatusCode, raw)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}
	return tokenResp.AccessToken, nil
}

func (s *Simulator) doBooking(ctx context.Context, rng *rand.Rand, token string) {
	slotTime := s.times[rng.Intn(len(s.times))]

	start := time.Now()

	reqBody := map[string]string{
		"patient_name":     gofakeit.Name(),
		"patient_email":    gofakeit.Email(),
		"patient_phone":    gofakeit.Phone(),
		"doctor_name":      s.config.DoctorName,
		"appointment_date": s.config.Date,
		"appointment_time": slotTime,
		"reason":           "load test",
	}
	body, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIBaseURL+"/api/appointments", bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	outcome := "error"
	if err == nil {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			outcome = "success"
		case http.StatusBadRequest:
			var errResp struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(raw, &errResp)
			if errResp.Error == "slot_unavailable" {
				outcome = "conflict"
			}
		case http.StatusConflict:
			outcome = "busy"
		}
	}

	s.metrics.Record(latency, outcome)
}

// verifyNoOverlaps self-joins active appointments for the simulated
// doctor and day, comparing 20-minute half-open intervals.
func verifyNoOverlaps(ctx context.Context, pool *pgxpool.Pool, doctorName, date string) error {
	const query = `
		WITH active AS (
			SELECT id,
			       split_part(appointment_time, ':', 1)::int * 60 +
			       split_part(appointment_time, ':', 2)::int AS start_min
			FROM appointments
			WHERE doctor_name = $1
			  AND appointment_date = $2
			  AND status <> 'cancelled'
		)
		SELECT count(*)
		FROM active a
		JOIN active b ON a.id < b.id
		WHERE a.start_min < b.start_min + 20
		  AND b.start_min < a.start_min + 20
	`

	var overlaps int64
	if err := pool.QueryRow(ctx, query, doctorName, date).Scan(&overlaps); err != nil {
		return fmt.Errorf("overlap query: %w", err)
	}

	if overlaps > 0 {
		return fmt.Errorf("found %d overlapping active appointment pairs", overlaps)
	}
	return nil
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Printf("Doctor: %s  Date: %s\n", s.config.DoctorName, s.config.Date)
	fmt.Println()

	om := &s.metrics
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		fmt.Println("no bookings attempted")
		return
	}

	success := atomic.LoadInt64(&om.Success)
	conflict := atomic.LoadInt64(&om.Conflict)
	busy := atomic.LoadInt64(&om.Busy)
	errs := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("Bookings:\n")
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	fmt.Printf("  Conflicts: %d (%.1f%%)\n", conflict, float64(conflict)/float64(total)*100)
	if busy > 0 {
		fmt.Printf("  Lock busy: %d (%.1f%%)\n", busy, float64(busy)/float64(total)*100)
	}
	if errs > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", errs, float64(errs)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

// Helper functions

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
