package fallback

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
)

// Provider holds the fallback loan set in memory.
type Provider struct {
	path   string
	logger *slog.Logger

	mu       sync.RWMutex
	loans    []model.Loan
	loadedAt time.Time
}

// NewProvider creates an empty provider for the file at path.
func NewProvider(path string, logger *slog.Logger) *Provider {
	return &Provider{path: path, logger: logger}
}

// Path returns the watched file location.
func (p *Provider) Path() string {
	return p.path
}

// Load replaces the in-memory set with the file contents.
// A missing file yields an empty set; a broken file keeps the previous set.
func (p *Provider) Load() error {
	file, err := os.Open(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("fallback data file not found, serving empty set", slog.String("path", p.path))
		p.replace(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open fallback data: %w", err)
	}
	defer file.Close()

	records, err := ReadRecords(file)
	if err != nil {
		return err
	}

	loans := make([]model.Loan, 0, len(records))
	for _, record := range records {
		loans = append(loans, record.Loan())
	}
	p.replace(loans)
	p.logger.Info("fallback data loaded", slog.String("path", p.path), slog.Int("records", len(loans)))
	return nil
}

func (p *Provider) replace(loans []model.Loan) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loans = loans
	p.loadedAt = time.Now()
}

// List returns a copy of all fallback loans.
func (p *Provider) List(_ context.Context) ([]model.Loan, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]model.Loan, len(p.loans))
	copy(out, p.loans)
	return out, nil
}

// Get returns a single fallback loan by id.
func (p *Provider) Get(_ context.Context, id string) (*model.Loan, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, loan := range p.loans {
		if loan.ID == id {
			found := loan
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// LoadedAt reports when the current set was loaded.
func (p *Provider) LoadedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadedAt
}
