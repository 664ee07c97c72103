package capture

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner abstracts the defaults command-line tool so captures can be
// tested without a live defaults database.
type Runner interface {
	// ListDomains enumerates every domain name known to the store.
	ListDomains(ctx context.Context) ([]string, error)
	// ExportDomain exports one domain as an XML plist.
	ExportDomain(ctx context.Context, domain string) ([]byte, error)
}

// execRunner invokes the real defaults binary.
type execRunner struct {
	tool string
}

// NewRunner returns a Runner backed by the given defaults binary.
func NewRunner(tool string) Runner {
	return &execRunner{tool: tool}
}

func (r *execRunner) ListDomains(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, r.tool, "domains").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", withStderr(err))
	}

	// Output is a single comma-separated line.
	var domains []string
	for _, name := range strings.Split(string(out), ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			domains = append(domains, name)
		}
	}
	return domains, nil
}

func (r *execRunner) ExportDomain(ctx context.Context, domain string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, r.tool, "export", domain, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to export domain %q: %w", domain, withStderr(err))
	}
	return out, nil
}

// withStderr folds captured stderr into the error message, since exec's
// ExitError alone only reports the exit code.
func withStderr(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return err
}
