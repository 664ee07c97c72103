// Package capture acquires point-in-time snapshots of the defaults
// database by shelling out to the defaults tool, exporting every domain as
// an XML plist and decoding it into the prefs value model. Domains that
// fail to export or parse are skipped; a capture only fails outright when
// the domain list itself cannot be read.
package capture

import (
	"context"
	"path"
	"sync"

	"go.uber.org/zap"

	"prefdiff/internal/config"
	"prefdiff/internal/prefs"
)

// globalDomain is not part of the `defaults domains` listing but holds
// system-wide settings worth diffing.
const globalDomain = "NSGlobalDomain"

// Capturer takes snapshots of all readable domains.
type Capturer struct {
	cfg    *config.CaptureConfig
	runner Runner
	logger *zap.Logger
}

// NewCapturer creates a capturer using the given runner.
func NewCapturer(cfg *config.CaptureConfig, runner Runner, logger *zap.Logger) *Capturer {
	return &Capturer{cfg: cfg, runner: runner, logger: logger}
}

// Capture enumerates domains and exports each one concurrently. Per-domain
// failures are logged and skipped so one unreadable domain never sinks the
// whole snapshot.
func (c *Capturer) Capture(ctx context.Context) (*prefs.Snapshot, error) {
	domains, err := c.runner.ListDomains(ctx)
	if err != nil {
		return nil, err
	}

	if c.cfg.IncludeGlobalDomain {
		domains = append(domains, globalDomain)
	}
	domains = c.filterExcluded(domains)

	var (
		mu        sync.Mutex
		collected = make(map[string]prefs.DomainSettings, len(domains))
	)

	jobs := make(chan string)
	var wg sync.WaitGroup

	workers := c.cfg.Concurrency
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for domain := range jobs {
				settings, ok := c.exportDomain(ctx, domain)
				if !ok {
					continue
				}
				mu.Lock()
				collected[domain] = settings
				mu.Unlock()
			}
		}()
	}

	for _, domain := range domains {
		select {
		case jobs <- domain:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := prefs.NewSnapshot(collected)
	c.logger.Info("Captured snapshot",
		zap.String("id", snapshot.ID()),
		zap.Int("domains", snapshot.DomainCount()),
		zap.Int("keys", snapshot.KeyCount()))

	return snapshot, nil
}

// exportDomain exports and parses one domain under its own timeout.
func (c *Capturer) exportDomain(ctx context.Context, domain string) (prefs.DomainSettings, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.DomainTimeout)
	defer cancel()

	data, err := c.runner.ExportDomain(ctx, domain)
	if err != nil {
		c.logger.Debug("Skipping unreadable domain",
			zap.String("domain", domain), zap.Error(err))
		return nil, false
	}

	settings, err := parseDomain(data)
	if err != nil {
		c.logger.Debug("Skipping unparsable domain",
			zap.String("domain", domain), zap.Error(err))
		return nil, false
	}

	return settings, true
}

// filterExcluded drops domains matching any configured glob pattern.
func (c *Capturer) filterExcluded(domains []string) []string {
	if len(c.cfg.ExcludeDomains) == 0 {
		return domains
	}

	kept := domains[:0]
	for _, domain := range domains {
		excluded := false
		for _, pattern := range c.cfg.ExcludeDomains {
			if ok, _ := path.Match(pattern, domain); ok {
				excluded = true
				break
			}
		}
		if excluded {
			c.logger.Debug("Excluding domain", zap.String("domain", domain))
			continue
		}
		kept = append(kept, domain)
	}
	return kept
}
