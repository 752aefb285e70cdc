package plan_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tgup-cli/tgup/pkg/evaluator"
	"github.com/tgup-cli/tgup/pkg/plan"
	"github.com/tgup-cli/tgup/pkg/scan"
	"github.com/tgup-cli/tgup/pkg/types"
)

// makeEntries creates real files and returns them as scan entries in the
// given order.
func makeEntries(t *testing.T, names ...string) []scan.Entry {
	t.Helper()
	dir := t.TempDir()

	entries := make([]scan.Entry, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		entries[i] = scan.Entry{Path: path, Info: info, Depth: 0}
	}
	return entries
}

// routeByExt routes each file by its extension binding.
func routeByExt(ctx evaluator.Context) (string, error) {
	ext, ok := ctx.Lookup("ext")
	if !ok {
		return "", errors.New("no ext binding")
	}
	return "@" + ext.Str(), nil
}

func routeAllTo(dest string) plan.RouteFunc {
	return func(evaluator.Context) (string, error) {
		return dest, nil
	}
}

func TestBuildGroupsByDestination(t *testing.T) {
	entries := makeEntries(t, "a.jpg", "b.txt", "c.jpg")

	batches, err := plan.Build(entries, plan.Options{Route: routeByExt, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}

	// Destinations keep first-appearance order; without Album every file
	// travels alone.
	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(batches))
	}
	wantDests := []string{"@jpg", "@txt", "@jpg"}
	for i, b := range batches {
		if b.Dest != wantDests[i] {
			t.Errorf("batch %d dest = %q, want %q", i, b.Dest, wantDests[i])
		}
		if len(b.Files) != 1 {
			t.Errorf("batch %d files = %d, want 1", i, len(b.Files))
		}
		if b.Album {
			t.Errorf("batch %d unexpectedly an album", i)
		}
	}
}

func TestBuildAlbums(t *testing.T) {
	names := make([]string, 13)
	for i := range names {
		names[i] = fmt.Sprintf("img%02d.jpg", i)
	}
	entries := makeEntries(t, names...)

	batches, err := plan.Build(entries, plan.Options{
		Route:   routeAllTo("@photos"),
		Album:   true,
		Workers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	// 13 media files chunk into an album of 10 and an album of 3.
	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(batches))
	}
	if !batches[0].Album || len(batches[0].Files) != plan.MaxAlbumSize {
		t.Errorf("batch 0: album=%v files=%d, want album of %d",
			batches[0].Album, len(batches[0].Files), plan.MaxAlbumSize)
	}
	if !batches[1].Album || len(batches[1].Files) != 3 {
		t.Errorf("batch 1: album=%v files=%d, want album of 3",
			batches[1].Album, len(batches[1].Files))
	}

	// Order inside albums follows scan order.
	if batches[0].Files[0].Name != "img00.jpg" || batches[1].Files[2].Name != "img12.jpg" {
		t.Error("album contents out of order")
	}
}

func TestBuildNonMediaBreaksAlbums(t *testing.T) {
	entries := makeEntries(t, "a.jpg", "b.jpg", "c.txt", "d.jpg")

	batches, err := plan.Build(entries, plan.Options{
		Route:   routeAllTo("@mixed"),
		Album:   true,
		Workers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Album [a b], single c, album [d].
	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3 (%+v)", len(batches), batches)
	}
	if !batches[0].Album || len(batches[0].Files) != 2 {
		t.Errorf("batch 0 = %+v, want album of 2", batches[0])
	}
	if batches[1].Album || batches[1].Files[0].Name != "c.txt" {
		t.Errorf("batch 1 = %+v, want single c.txt", batches[1])
	}
	if !batches[2].Album || len(batches[2].Files) != 1 {
		t.Errorf("batch 2 = %+v, want album of 1", batches[2])
	}
}

func TestBuildAccountsRoundRobin(t *testing.T) {
	entries := makeEntries(t, "a.txt", "b.txt", "c.txt", "d.txt")

	batches, err := plan.Build(entries, plan.Options{
		Route:    routeAllTo("@dest"),
		Accounts: []string{"main", "backup"},
		Workers:  1,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"main", "backup", "main", "backup"}
	for i, b := range batches {
		if b.Account != want[i] {
			t.Errorf("batch %d account = %q, want %q", i, b.Account, want[i])
		}
	}
}

func TestBuildResolveAlias(t *testing.T) {
	entries := makeEntries(t, "a.jpg")

	aliases := map[string]string{"@jpg": "@my_photo_channel"}
	batches, err := plan.Build(entries, plan.Options{
		Route: routeByExt,
		Resolve: func(dest string) string {
			if full, ok := aliases[dest]; ok {
				return full
			}
			return dest
		},
		Workers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	if batches[0].Dest != "@my_photo_channel" {
		t.Errorf("dest = %q, want alias-resolved channel", batches[0].Dest)
	}
}

func TestBuildCaption(t *testing.T) {
	entries := makeEntries(t, "a.txt")

	batches, err := plan.Build(entries, plan.Options{
		Route:   routeAllTo("me"),
		Caption: "vacation 2026",
		Workers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if batches[0].Caption != "vacation 2026" {
		t.Errorf("caption = %q", batches[0].Caption)
	}
}

func TestBuildRouteErrorAborts(t *testing.T) {
	entries := makeEntries(t, "a.txt", "b.txt", "c.txt")

	routeErr := types.NewError(types.ErrUndefinedVariable, `undefined variable "sizes"`, 3)
	route := func(ctx evaluator.Context) (string, error) {
		name, _ := ctx.Lookup("name")
		if name.Str() == "b.txt" {
			return "", routeErr
		}
		return "me", nil
	}

	batches, err := plan.Build(entries, plan.Options{Route: route, Workers: 1})
	if err == nil {
		t.Fatal("expected planning to abort on a routing failure")
	}
	if batches != nil {
		t.Error("partial batches returned alongside an error")
	}
	if !errors.Is(err, routeErr) {
		t.Errorf("err = %v, want wrapped routing error", err)
	}
	if !strings.Contains(err.Error(), "b.txt") {
		t.Errorf("err = %v, want failing file named", err)
	}
}

func TestBuildCounters(t *testing.T) {
	entries := makeEntries(t, "a.txt", "b.txt", "c.txt")

	var got []string
	route := func(ctx evaluator.Context) (string, error) {
		index, _ := ctx.Lookup("index")
		total, _ := ctx.Lookup("total")
		got = append(got, fmt.Sprintf("%v/%v", index.Num(), total.Num()))
		return "me", nil
	}

	if _, err := plan.Build(entries, plan.Options{Route: route, Workers: 1}); err != nil {
		t.Fatal(err)
	}

	want := []string{"0/3", "1/3", "2/3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBuildConcurrentRouting(t *testing.T) {
	names := make([]string, 50)
	for i := range names {
		names[i] = fmt.Sprintf("f%02d.txt", i)
	}
	entries := makeEntries(t, names...)

	batches, err := plan.Build(entries, plan.Options{
		Route:   routeByExt,
		Workers: 8,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Batch order must follow input order regardless of worker count.
	var flat []string
	for _, b := range batches {
		for _, f := range b.Files {
			flat = append(flat, f.Name)
		}
	}
	if len(flat) != len(names) {
		t.Fatalf("routed %d files, want %d", len(flat), len(names))
	}
	for i := range names {
		if flat[i] != names[i] {
			t.Fatalf("order broken at %d: got %q, want %q", i, flat[i], names[i])
		}
	}
}

func TestBuildNoRouteFunc(t *testing.T) {
	if _, err := plan.Build(nil, plan.Options{}); err == nil {
		t.Fatal("expected error for missing route function")
	}
}

func TestBuildEmptyInput(t *testing.T) {
	batches, err := plan.Build(nil, plan.Options{Route: routeAllTo("me")})
	if err != nil {
		t.Fatal(err)
	}
	if len(batches) != 0 {
		t.Errorf("batches = %v, want none", batches)
	}
}
