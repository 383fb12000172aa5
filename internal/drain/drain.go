// Package drain watches a storage root whose immediate sub-directories are
// per-client stores, and reports when every store is empty.
package drain

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ib-77/pipetag/internal/log"
)

const (
	DefaultInterval = time.Second
	scanLimit       = 8
)

// Store is a non-empty client store.
type Store struct {
	Name    string
	Entries int
}

type Snapshot struct {
	At       time.Time
	NonEmpty []Store
}

func (s Snapshot) Drained() bool {
	return len(s.NonEmpty) == 0
}

type Poller struct {
	fs         afero.Fs
	root       string
	interval   time.Duration
	clock      clockwork.Clock
	logger     log.Logger
	onSnapshot func(Snapshot)
}

type Option func(p *Poller)

func WithClock(clock clockwork.Clock) Option {
	return func(p *Poller) { p.clock = clock }
}

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithLogger(logger log.Logger) Option {
	return func(p *Poller) { p.logger = logger }
}

// OnSnapshot is called with every snapshot taken by Wait.
func OnSnapshot(fn func(Snapshot)) Option {
	return func(p *Poller) { p.onSnapshot = fn }
}

func NewPoller(fs afero.Fs, root string, opts ...Option) *Poller {
	p := &Poller{
		fs:       fs,
		root:     root,
		interval: DefaultInterval,
		clock:    clockwork.NewRealClock(),
		logger:   log.NewNopLogger(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Poll scans the root once. Stores are scanned concurrently and reported sorted by name.
func (p *Poller) Poll(ctx context.Context) (Snapshot, error) {
	infos, err := afero.ReadDir(p.fs, p.root)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot list storage root %q: %w", p.root, err)
	}

	var dirs []string
	for _, info := range infos {
		if info.IsDir() {
			dirs = append(dirs, info.Name())
		}
	}

	counts := make([]int, len(dirs))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(scanLimit)
	for i, dir := range dirs {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries, err := afero.ReadDir(p.fs, filepath.Join(p.root, dir))
			if err != nil {
				return fmt.Errorf("cannot list store %q: %w", dir, err)
			}
			counts[i] = len(entries)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{At: p.clock.Now()}
	for i, dir := range dirs {
		if counts[i] > 0 {
			snapshot.NonEmpty = append(snapshot.NonEmpty, Store{Name: dir, Entries: counts[i]})
		}
	}
	return snapshot, nil
}

// Wait polls every interval until a snapshot is drained, which it returns,
// or ctx ends.
func (p *Poller) Wait(ctx context.Context) (Snapshot, error) {
	snapshot, done, err := p.step(ctx)
	if err != nil || done {
		return snapshot, err
	}

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return snapshot, ctx.Err()
		case <-ticker.Chan():
			snapshot, done, err = p.step(ctx)
			if err != nil || done {
				return snapshot, err
			}
		}
	}
}

func (p *Poller) step(ctx context.Context) (Snapshot, bool, error) {
	snapshot, err := p.Poll(ctx)
	if err != nil {
		return snapshot, false, err
	}

	if p.onSnapshot != nil {
		p.onSnapshot(snapshot)
	}

	if snapshot.Drained() {
		p.logger.Infof("all stores under %q are empty", p.root)
		return snapshot, true, nil
	}
	for _, s := range snapshot.NonEmpty {
		p.logger.With(zap.String("store", s.Name), zap.Int("entries", s.Entries)).Debugf("store not empty")
	}
	p.logger.Infof("%d stores under %q still hold data", len(snapshot.NonEmpty), p.root)
	return snapshot, false, nil
}
