// Package walkthrough prints a guided tour of the ndarray API, one section
// per topic, in the order a beginner would meet them.
package walkthrough

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	ndarray "github.com/qri-io/ndarray-go"
	"github.com/qri-io/ndarray-go/internal/config"
	"github.com/qri-io/ndarray-go/zarr"
)

const Banner = "ndarray: the absolute basics for beginners"

var ErrUnknownSection = errors.New("unknown section")

// Section is one topic of the walkthrough.
type Section struct {
	Name  string
	Title string
	Run   func(d *Demo) error
}

// Sections returns every section in running order.
func Sections() []Section {
	return []Section{
		{"example", "Reading the example code", readingExample},
		{"fundamentals", "Array fundamentals", fundamentals},
		{"attributes", "Array attributes", attributes},
		{"creation", "How to create a basic array", creation},
		{"sorting", "Adding, removing, and sorting elements", sorting},
		{"shape", "How do you know the shape and size of an array?", shapeAndSize},
		{"newaxis", "How to convert a 1D array into a 2D array", newAxis},
		{"indexing", "Indexing and slicing", indexing},
		{"existing", "How to create an array from existing data", fromExisting},
		{"operations", "Basic array operations", operations},
		{"broadcasting", "Broadcasting", broadcasting},
		{"aggregation", "More useful array operations", aggregation},
		{"random", "How to generate random numbers", random},
		{"unique", "How to get unique items and counts", unique},
		{"transform", "Transposing, reshaping, flipping and flattening", transform},
		{"saving", "How to save and load array objects", saving},
		{"csv", "Importing and exporting a CSV", csvSection},
	}
}

// Demo runs sections against an output writer.
type Demo struct {
	out io.Writer
	log *zap.Logger
	cfg *config.Config
	src rand.Source

	store zarr.Store
	files map[string]*bytes.Buffer
}

// New returns a Demo writing to out. A nil logger discards log output.
func New(out io.Writer, cfg *config.Config, log *zap.Logger) (*Demo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &Demo{out: out, log: log, cfg: cfg}
	if cfg.Seed != 0 {
		d.src = ndarray.NewSource(cfg.Seed)
	}
	return d, nil
}

// Run runs the named sections in running order. With no names it runs the
// configured sections, or every section when none are configured.
func (d *Demo) Run(names ...string) error {
	if len(names) == 0 {
		names = d.cfg.Sections
	}
	selected, err := selectSections(names)
	if err != nil {
		return err
	}

	d.println(Banner)
	for _, s := range selected {
		d.log.Debug("running section", zap.String("section", s.Name))
		fmt.Fprintf(d.out, "\n%s\n\n", s.Title)
		if err := s.Run(d); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
	}
	d.log.Info("walkthrough finished", zap.Int("sections", len(selected)))
	return nil
}

func selectSections(names []string) ([]Section, error) {
	all := Sections()
	if len(names) == 0 {
		return all, nil
	}
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	var out []Section
	for _, s := range all {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	if len(want) > 0 {
		var unknown []string
		for _, n := range names {
			if want[n] {
				unknown = append(unknown, n)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, strings.Join(unknown, ", "))
	}
	return out, nil
}

func (d *Demo) println(a ...interface{}) {
	fmt.Fprintln(d.out, a...)
}

// arrayStore returns the store the saving section writes to, creating it on
// first use.
func (d *Demo) arrayStore() (zarr.Store, error) {
	if d.store != nil {
		return d.store, nil
	}
	switch d.cfg.Store.Kind {
	case "memory":
		d.store = zarr.NewMemoryStore()
	default:
		s, err := zarr.NewLocalStore(filepath.Join(d.cfg.OutputDir, "arrays.zarr"))
		if err != nil {
			return nil, err
		}
		d.log.Debug("opened local store", zap.String("path", s.Base()))
		d.store = s
	}
	return d.store, nil
}

// formatIndexTuple renders per-axis index sequences as a tuple of vectors,
// e.g. "([0 0], [1 2])".
func formatIndexTuple(coords [][]int) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = intsVector(c).String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
