// Package plan turns a scanned file list into upload batches.
//
// For each file it evaluates the compiled routing expression against a
// fresh context, resolves the resulting destination, groups files by
// destination, chunks media files into albums, and fans the batches out
// across the selected accounts round-robin. The actual transport is a
// downstream collaborator; planning only decides who sends what where.
package plan

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/tgup-cli/tgup/pkg/evaluator"
	"github.com/tgup-cli/tgup/pkg/filectx"
	"github.com/tgup-cli/tgup/pkg/scan"
)

// MaxAlbumSize is the messaging-service limit on files per media group.
const MaxAlbumSize = 10

// RouteFunc evaluates the routing expression against one per-file
// context and returns the destination string.
type RouteFunc func(ctx evaluator.Context) (string, error)

// Batch is one unit of delivery: a set of files for one destination,
// assigned to one account. Album batches contain up to MaxAlbumSize
// media files; non-media files always travel alone.
type Batch struct {
	Dest    string
	Account string
	Album   bool
	Caption string
	Files   []filectx.FileContext
}

// Options configures planning.
type Options struct {
	// Route evaluates the routing expression for one file. Required.
	Route RouteFunc
	// Resolve maps a routing result to a final destination (alias
	// lookup). Nil means identity.
	Resolve func(string) string
	// Accounts receive batches round-robin. Empty means one unnamed
	// account.
	Accounts []string
	// Album batches consecutive media files for the same destination
	// into media groups.
	Album bool
	// Caption is attached to every batch verbatim. It never enters the
	// routing engine.
	Caption string
	// Workers bounds concurrent routing evaluations. Zero means
	// GOMAXPROCS.
	Workers int
}

// Build evaluates routing for every file and assembles the delivery
// batches. Any single evaluation failure aborts planning: misrouting
// private files is the primary hazard of a routing engine, so there is
// no silent fallback destination.
func Build(entries []scan.Entry, opts Options) ([]Batch, error) {
	if opts.Route == nil {
		return nil, fmt.Errorf("plan: no route function")
	}

	files := make([]filectx.FileContext, len(entries))
	for i, entry := range entries {
		files[i] = filectx.New(entry.Path, entry.Info, entry.Depth, i, len(entries))
	}

	dests, err := routeAll(files, opts)
	if err != nil {
		return nil, err
	}

	return assemble(files, dests, opts), nil
}

// routeAll evaluates the routing expression for all files on a bounded
// worker pool. Evaluations are independent: each reads its own freshly
// built context and the shared immutable expression, so no locking is
// needed beyond result collection. Results keep input order.
func routeAll(files []filectx.FileContext, opts Options) ([]string, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	dests := make([]string, len(files))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				dest, err := opts.Route(files[i].Bindings())
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("route %s: %w", files[i].Path, err)
					}
					mu.Unlock()
					continue
				}
				if opts.Resolve != nil {
					dest = opts.Resolve(dest)
				}
				dests[i] = dest
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return dests, nil
}

// assemble groups routed files by destination (in first-appearance
// order), chunks media into albums when requested, and assigns accounts
// round-robin.
func assemble(files []filectx.FileContext, dests []string, opts Options) []Batch {
	var order []string
	grouped := make(map[string][]filectx.FileContext)
	for i, fc := range files {
		dest := dests[i]
		if _, seen := grouped[dest]; !seen {
			order = append(order, dest)
		}
		grouped[dest] = append(grouped[dest], fc)
	}

	accounts := opts.Accounts
	if len(accounts) == 0 {
		accounts = []string{""}
	}

	var batches []Batch
	next := 0
	emit := func(dest string, album bool, fcs []filectx.FileContext) {
		batches = append(batches, Batch{
			Dest:    dest,
			Account: accounts[next%len(accounts)],
			Album:   album,
			Caption: opts.Caption,
			Files:   fcs,
		})
		next++
	}

	for _, dest := range order {
		var album []filectx.FileContext
		flush := func() {
			if len(album) > 0 {
				emit(dest, true, album)
				album = nil
			}
		}

		for _, fc := range grouped[dest] {
			if opts.Album && fc.IsMedia() {
				album = append(album, fc)
				if len(album) == MaxAlbumSize {
					flush()
				}
				continue
			}
			flush()
			emit(dest, false, []filectx.FileContext{fc})
		}
		flush()
	}

	return batches
}
