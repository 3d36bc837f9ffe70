// scanner/dispatch_test.go
package scanner

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnreadable = errors.New("permission denied")

// failingOpener refuses the listed paths and opens everything else from disk.
type failingOpener struct {
	fail map[string]bool
}

func (o failingOpener) Open(path string) (LineSource, io.Closer, error) {
	if o.fail[path] {
		return nil, nil, errUnreadable
	}
	return OSOpener{}.Open(path)
}

func drain(deliveries <-chan Delivery) []Delivery {
	var all []Delivery
	for d := range deliveries {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Path < all[j].Path })
	return all
}

func fileBody(lines int, keyword string) string {
	var b strings.Builder
	for i := 1; i <= lines; i++ {
		if i%3 == 0 {
			fmt.Fprintf(&b, "%s on line %d\n", keyword, i)
		} else {
			fmt.Fprintf(&b, "filler %d\n", i)
		}
	}
	return b.String()
}

func TestDispatchScansEveryFileOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, map[string]string{
				"data.txt":     fileBody(9, "needle"),
				"x/data.txt":   fileBody(12, "needle"),
				"x/y/data.txt": fileBody(3, "needle"),
				"z/data.txt":   fileBody(6, "hay"),
				"z/other.txt":  fileBody(6, "needle"),
			})
			spec := mustSpec(t, MatchOptions{Pattern: "needle", CaseSensitive: true, Recursive: true})
			d := &Dispatcher{Workers: workers, Discoverer: &Discoverer{Root: root}}

			deliveries, err := d.Dispatch("data.txt", spec)
			require.NoError(t, err)
			all := drain(deliveries)

			require.Len(t, all, 4)
			matches := map[string]int{}
			for _, delivery := range all {
				assert.Nil(t, delivery.Err)
				matches[delivery.Path] = len(delivery.Outcomes)
			}
			assert.Equal(t, map[string]int{
				filepath.Join(root, "data.txt"):     3,
				filepath.Join(root, "x/data.txt"):   4,
				filepath.Join(root, "x/y/data.txt"): 1,
				filepath.Join(root, "z/data.txt"):   0,
			}, matches)
		})
	}
}

func TestDispatchDeliversEachFileContiguouslyInLineOrder(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 8; i++ {
		files[fmt.Sprintf("d%d/log.txt", i)] = fileBody(300, "hit")
	}
	writeTree(t, root, files)
	spec := mustSpec(t, MatchOptions{Pattern: "hit", CaseSensitive: true, Recursive: true})
	d := &Dispatcher{Workers: 4, Discoverer: &Discoverer{Root: root}}

	deliveries, err := d.Dispatch("log.txt", spec)
	require.NoError(t, err)

	seen := map[string]bool{}
	for delivery := range deliveries {
		require.False(t, seen[delivery.Path], "%s delivered twice", delivery.Path)
		seen[delivery.Path] = true

		assert.Equal(t, 300, delivery.Evaluated)
		require.Len(t, delivery.Outcomes, 100)
		for i, o := range delivery.Outcomes {
			assert.Equal(t, delivery.Path, o.SourceFile)
			assert.Equal(t, (i+1)*3, o.LineNumber)
			assert.True(t, o.Matched)
		}
	}
	assert.Len(t, seen, 8)
}

func TestDispatchIsolatesUnreadableFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/data.txt": fileBody(6, "needle"),
		"b/data.txt": fileBody(6, "needle"),
		"c/data.txt": fileBody(6, "needle"),
	})
	broken := filepath.Join(root, "b", "data.txt")
	spec := mustSpec(t, MatchOptions{Pattern: "needle", CaseSensitive: true, Recursive: true})
	d := &Dispatcher{
		Workers:    2,
		Opener:     failingOpener{fail: map[string]bool{broken: true}},
		Discoverer: &Discoverer{Root: root},
	}

	deliveries, err := d.Dispatch("data.txt", spec)
	require.NoError(t, err)
	all := drain(deliveries)
	require.Len(t, all, 3)

	var failures []*FileError
	total := 0
	for _, delivery := range all {
		if delivery.Err != nil {
			failures = append(failures, delivery.Err)
			assert.Empty(t, delivery.Outcomes)
			continue
		}
		total += len(delivery.Outcomes)
	}
	require.Len(t, failures, 1)
	assert.Equal(t, broken, failures[0].Path)
	assert.Equal(t, "open", failures[0].Op)
	assert.ErrorIs(t, failures[0], errUnreadable)
	assert.Equal(t, 4, total)
}

func TestDispatchNoMatchingFiles(t *testing.T) {
	spec := mustSpec(t, MatchOptions{Pattern: "x", Recursive: true})
	d := &Dispatcher{Discoverer: &Discoverer{Root: t.TempDir()}}

	deliveries, err := d.Dispatch("nothing-here.txt", spec)
	require.NoError(t, err)
	assert.Empty(t, drain(deliveries))
}

func TestDispatchRejectsBadGlob(t *testing.T) {
	spec := mustSpec(t, MatchOptions{Pattern: "x", Recursive: true})
	d := &Dispatcher{Discoverer: &Discoverer{Root: t.TempDir()}}

	deliveries, err := d.Dispatch("[", spec)
	assert.ErrorIs(t, err, ErrBadGlob)
	assert.Nil(t, deliveries)
}

func TestDispatcherScanOne(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"one.txt": fileBody(9, "needle")})
	spec := mustSpec(t, MatchOptions{Pattern: "needle", CaseSensitive: true})

	var lines []int
	err := (&Dispatcher{}).ScanOne(filepath.Join(root, "one.txt"), spec, func(o MatchOutcome) {
		lines = append(lines, o.LineNumber)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, lines)
}

func BenchmarkDispatch(b *testing.B) {
	root := b.TempDir()
	files := map[string]string{}
	for i := 0; i < 64; i++ {
		files[fmt.Sprintf("dir%02d/sub/data.txt", i)] = fileBody(2000, "needle")
	}
	writeTree(b, root, files)
	spec := mustSpec(b, MatchOptions{Pattern: `needle on line \d+0\b`, UseRegex: true, Recursive: true})

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			d := &Dispatcher{Workers: workers, Discoverer: &Discoverer{Root: root}}
			for i := 0; i < b.N; i++ {
				deliveries, err := d.Dispatch("data.txt", spec)
				if err != nil {
					b.Fatal(err)
				}
				for range deliveries {
				}
			}
		})
	}
}
