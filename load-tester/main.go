package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	Endpoint         string
	APIKey           string
	BotTokens        []string
	Total            int
	Rate             int
	Concurrency      int
	ReturningPercent int
}

func parseFlags() *Config {
	c := &Config{}
	var tokens string
	flag.StringVar(&c.Endpoint, "endpoint", "", "Target URL (required)")
	flag.StringVar(&c.APIKey, "api-key", "", "X-API-Key header value")
	flag.StringVar(&tokens, "bot-tokens", "", "Comma-separated registered bot tokens (required)")
	flag.IntVar(&c.Total, "total", 10000, "Total requests")
	flag.IntVar(&c.Rate, "rate", 2000, "Requests per second")
	flag.IntVar(&c.Concurrency, "concurrency", 0, "Worker count (0=auto)")
	flag.IntVar(&c.ReturningPercent, "returning-percent", 50, "Share of interactions from previously seen users")
	flag.Parse()

	if c.Endpoint == "" {
		fmt.Fprintln(os.Stderr, "Error: -endpoint is required")
		flag.Usage()
		os.Exit(1)
	}
	c.BotTokens = splitTokens(tokens)
	if len(c.BotTokens) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -bot-tokens is required")
		flag.Usage()
		os.Exit(1)
	}

	if c.Concurrency == 0 {
		c.Concurrency = c.Rate / 20 // Auto-scale workers
		if c.Concurrency < 50 {
			c.Concurrency = 50
		}
	}

	if c.ReturningPercent > 100 {
		c.ReturningPercent = 100
	} else if c.ReturningPercent < 0 {
		c.ReturningPercent = 0
	}

	return c
}

func splitTokens(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

type Stats struct {
	ok      uint64
	errors  uint64
	latency int64 // microseconds
}

// UserPool remembers user ids already sent so a configurable share of the
// traffic looks like returning users. That keeps the generated data useful
// for active-user and new-user figures instead of every event being a
// fresh user.
type UserPool struct {
	mu  sync.RWMutex
	buf []int64
	max int
}

func NewUserPool(max int) *UserPool {
	return &UserPool{buf: make([]int64, 0, max), max: max}
}

func (p *UserPool) Add(userID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.buf) >= p.max {
		p.buf = p.buf[1:]
	}
	p.buf = append(p.buf, userID)
}

func (p *UserPool) GetRandom(rng *rand.Rand) (int64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.buf) == 0 {
		return 0, false
	}
	return p.buf[rng.Intn(len(p.buf))], true
}

func (s *Stats) AddOK(duration time.Duration) {
	atomic.AddUint64(&s.ok, 1)
	atomic.AddInt64(&s.latency, duration.Microseconds())
}

func (s *Stats) AddError() {
	atomic.AddUint64(&s.errors, 1)
}

func (s *Stats) StartLogger(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastOK, lastErr uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok := atomic.LoadUint64(&s.ok)
			errs := atomic.LoadUint64(&s.errors)
			latTotal := atomic.LoadInt64(&s.latency)

			curOK := ok - lastOK
			curErr := errs - lastErr
			lastOK, lastErr = ok, errs

			avgLat := 0.0
			if ok > 0 {
				avgLat = float64(latTotal) / float64(ok) / 1000.0
			}

			log.Printf("[STATS] 1s -> OK: %d | ERR: %d | AvgLat: %.2fms | Total OK: %d", curOK, curErr, avgLat, ok)
		}
	}
}

func main() {
	cfg := parseFlags()
	stats := &Stats{}
	pool := NewUserPool(10000)

	// High-performance HTTP Client
	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Concurrency,
			MaxIdleConnsPerHost: cfg.Concurrency, // Critical: Keep as many connections open as there are workers.
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	log.Printf("Starting Load Test: Target=%s Rate=%d/s Total=%d Workers=%d Bots=%d", cfg.Endpoint, cfg.Rate, cfg.Total, cfg.Concurrency, len(cfg.BotTokens))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stats Logger
	go stats.StartLogger(ctx)

	// Job Queue
	jobs := make(chan struct{}, cfg.Rate*2)
	var wg sync.WaitGroup
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rngs := make([]*rand.Rand, cfg.Concurrency)
	for i := 0; i < cfg.Concurrency; i++ {
		rngs[i] = rand.New(rand.NewSource(rng.Int63()))
	}

	// Workers
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go startWorker(client, cfg, jobs, stats, pool, rngs[i], &wg)
	}

	// Rate Limiter (Main Loop)
	remaining := cfg.Total
	for remaining > 0 {
		start := time.Now()
		batch := cfg.Rate
		if remaining < batch {
			batch = remaining
		}

		for i := 0; i < batch; i++ {
			jobs <- struct{}{}
		}
		remaining -= batch

		elapsed := time.Since(start)
		if elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
	}

	close(jobs)
	wg.Wait()

	log.Printf("DONE. Total OK: %d | Total Errors: %d", atomic.LoadUint64(&stats.ok), atomic.LoadUint64(&stats.errors))
}

func startWorker(client *http.Client, cfg *Config, jobs <-chan struct{}, stats *Stats, pool *UserPool, rng *rand.Rand, wg *sync.WaitGroup) {
	defer wg.Done()

	headers := http.Header{"Content-Type": []string{"application/json"}}
	if cfg.APIKey != "" {
		headers.Set("X-API-Key", cfg.APIKey)
	}

	for range jobs {
		interaction := generateInteraction(rng, pool, cfg)
		start := time.Now()

		err := sendInteraction(client, cfg.Endpoint, interaction, headers)
		if err != nil {
			stats.AddError()
		} else {
			stats.AddOK(time.Since(start))
		}
	}
}

func sendInteraction(client *http.Client, url string, data any, headers http.Header) error {
	body, _ := json.Marshal(data)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header = headers

	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	// Performance Hack: Read and discard the Body so the connection can be reused (Keep-Alive)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}
	return nil
}

var (
	interactionTypes = []string{"message", "command", "callback_query", "inline_query"}
	languageCodes    = []string{"en", "tr", "de", "ru"}
	messageTexts     = []string{"/start", "/help", "hello", "show me the menu", "thanks"}
)

func generateInteraction(rng *rand.Rand, pool *UserPool, cfg *Config) map[string]any {
	var userID int64
	if cfg.ReturningPercent > 0 && rng.Intn(100) < cfg.ReturningPercent {
		if id, ok := pool.GetRandom(rng); ok {
			userID = id
		}
	}
	if userID == 0 {
		userID = int64(rng.Intn(1_000_000) + 1)
		pool.Add(userID)
	}

	return map[string]any{
		"bot_token":        cfg.BotTokens[rng.Intn(len(cfg.BotTokens))],
		"user_id":          userID,
		"username":         fmt.Sprintf("user_%d", userID),
		"first_name":       fmt.Sprintf("User%d", userID),
		"language_code":    languageCodes[rng.Intn(len(languageCodes))],
		"interaction_type": interactionTypes[rng.Intn(len(interactionTypes))],
		"message_text":     messageTexts[rng.Intn(len(messageTexts))],
		"timestamp":        time.Now().Unix() - int64(rng.Intn(60)), // Last 60 seconds
	}
}
