package walkthrough

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	ndarray "github.com/qri-io/ndarray-go"
	"github.com/qri-io/ndarray-go/tabular"
	"github.com/qri-io/ndarray-go/zarr"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// create opens a named output file. With a memory store, files are kept in
// memory too.
func (d *Demo) create(name string) (io.WriteCloser, error) {
	if d.cfg.Store.Kind == "memory" {
		if d.files == nil {
			d.files = map[string]*bytes.Buffer{}
		}
		buf := &bytes.Buffer{}
		d.files[name] = buf
		return nopWriteCloser{buf}, nil
	}

	if err := os.MkdirAll(d.cfg.OutputDir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(d.cfg.OutputDir, name)
	d.log.Debug("writing file", zap.String("path", path))
	return os.Create(path)
}

func (d *Demo) open(name string) (io.ReadCloser, error) {
	if d.cfg.Store.Kind == "memory" {
		buf, ok := d.files[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, os.ErrNotExist)
		}
		return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
	}
	return os.Open(filepath.Join(d.cfg.OutputDir, name))
}

func (d *Demo) readFile(name string) (string, error) {
	rc, err := d.open(name)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	return string(data), err
}

// chunksFor returns the configured chunk shape when it fits ndim
// dimensions, and nil otherwise.
func chunksFor(chunks []int, ndim int) []int {
	if len(chunks) != ndim {
		return nil
	}
	return chunks
}

func saving(d *Demo) error {
	store, err := d.arrayStore()
	if err != nil {
		return err
	}
	comp, err := zarr.ParseCompressor(d.cfg.Store.Compressor)
	if err != nil {
		return err
	}

	a, err := ndarray.Arange[int64](1, 7, 1)
	if err != nil {
		return err
	}
	z, err := zarr.Save(store, "a", a, zarr.SaveOptions{Chunks: chunksFor(d.cfg.Store.Chunks, 1), Compressor: comp})
	if err != nil {
		return err
	}
	d.println(z.Info())

	b, err := zarr.Load[int64](store, "a")
	if err != nil {
		return err
	}
	d.println(b)

	// several arrays in one group
	if err := zarr.CreateGroup(store, "", zarr.Attributes{"name": d.cfg.Name}); err != nil {
		return err
	}
	m, err := gridOf([]int{1, 2, 3, 4}, []int{5, 6, 7, 8}, []int{9, 10, 11, 12})
	if err != nil {
		return err
	}
	if _, err := zarr.Save(store, "grid", m, zarr.SaveOptions{Chunks: chunksFor(d.cfg.Store.Chunks, 2), Compressor: comp}); err != nil {
		return err
	}
	cm, err := zarr.Consolidate(store, "")
	if err != nil {
		return err
	}
	d.println(cm.Arrays())

	g, err := zarr.Load[int64](store, "grid")
	if err != nil {
		return err
	}
	d.println(ndarray.ArrayEqual(m, g))

	csvArr := ndarray.Vector[int64](1, 2, 3, 4, 5, 6, 7, 8)
	w, err := d.create("new_file.txt")
	if err != nil {
		return err
	}
	if err := tabular.SaveText(w, csvArr, tabular.TextOptions{Format: d.cfg.Text.Format}); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	r, err := d.open("new_file.txt")
	if err != nil {
		return err
	}
	defer r.Close()
	loaded, err := tabular.LoadText(r, tabular.TextOptions{})
	if err != nil {
		return err
	}
	d.println(loaded.Ravel())
	return nil
}

func csvSection(d *Demo) error {
	a, err := ndarray.FromNested[float64]([][]float64{
		{-2.58289208, 0.43014843, -1.24082018, 1.59572603},
		{0.99027828, 1.17150989, 0.94125714, -0.14692469},
		{0.76989341, 0.81299683, -0.95068423, 0.11769564},
		{0.20484034, 0.34784527, 1.96979195, 0.51992837},
	})
	if err != nil {
		return err
	}
	header := []string{"a", "b", "c", "d"}

	w, err := d.create("pd.csv")
	if err != nil {
		return err
	}
	if err := tabular.WriteCSV(w, a, header); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	r, err := d.open("pd.csv")
	if err != nil {
		return err
	}
	tbl, err := tabular.ReadCSV(r)
	r.Close()
	if err != nil {
		return err
	}
	d.println(tbl.Columns)
	d.println(tbl.Data)

	r, err = d.open("pd.csv")
	if err != nil {
		return err
	}
	picked, err := tabular.ReadCSV(r, "a", "d")
	r.Close()
	if err != nil {
		return err
	}
	d.println(picked.Data)

	w, err = d.create("np.csv")
	if err != nil {
		return err
	}
	opts := tabular.TextOptions{Format: "%.2f", Delimiter: d.cfg.Text.Delimiter, Header: "1,  2,  3,  4"}
	if err := tabular.SaveText(w, a, opts); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	text, err := d.readFile("np.csv")
	if err != nil {
		return err
	}
	fmt.Fprint(d.out, text)

	// a header without a comment prefix names the columns for ReadCSV
	w, err = d.create("np_named.csv")
	if err != nil {
		return err
	}
	opts = tabular.TextOptions{Format: "%.2f", Delimiter: ",", Header: "a,b,c,d", NoComments: true}
	if err := tabular.SaveText(w, a, opts); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	r, err = d.open("np_named.csv")
	if err != nil {
		return err
	}
	col, err := tabular.ReadCSV(r, "b")
	r.Close()
	if err != nil {
		return err
	}
	d.println(col.Columns)
	d.println(col.Data)
	return nil
}
