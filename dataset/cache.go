package dataset

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/hashicorp/golang-lru"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrCacheMiss is returned when a dataset is in neither level of the cache.
var ErrCacheMiss = errors.New("cache miss error")

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// Key derives a cache key from the parts that determine how a dataset was built.
func Key(parts ...string) string {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(parts, "\x00")))
	return fmt.Sprintf("%016x", h.Sum64())
}

// encoded is the gob representation of a dataset.
type encoded struct {
	Rows, Cols int
	Data       []float64
	Y          []int
	Classes    int
	Names      []string
}

func encode(d Dataset) ([]byte, error) {
	r, c := d.X.Dims()
	e := encoded{
		Rows:    r,
		Cols:    c,
		Data:    make([]float64, 0, r*c),
		Y:       d.Y,
		Classes: d.Classes,
		Names:   d.Names,
	}
	for i := 0; i < r; i++ {
		e.Data = append(e.Data, d.X.RawRowView(i)...)
	}
	var buff bytes.Buffer
	if err := gob.NewEncoder(&buff).Encode(e); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

func decode(b []byte) (Dataset, error) {
	var e encoded
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&e); err != nil {
		return Dataset{}, err
	}
	if e.Rows*e.Cols != len(e.Data) || e.Rows == 0 || e.Cols == 0 {
		return Dataset{}, errors.New("corrupt cached dataset")
	}
	return Dataset{
		X:       mat.NewDense(e.Rows, e.Cols, e.Data),
		Y:       e.Y,
		Classes: e.Classes,
		Names:   e.Names,
	}, nil
}

// Cache stores datasets in memory, backed by a compressed on-disk store so that vectorised corpora
// survive between runs.
type Cache struct {
	mem  *lru.Cache
	disk *diskv.Diskv
}

// NewCache creates a cache keeping at most size datasets in memory, persisted beneath dir.
func NewCache(dir string, size int) (*Cache, error) {
	mem, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		mem: mem,
		disk: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    BlockTransform(8),
			CacheSizeMax: 4096 * 1024,
			Compression:  diskv.NewGzipCompression(),
		}),
	}, nil
}

// Get a dataset from the cache.
func (c *Cache) Get(key string) (Dataset, error) {
	if v, ok := c.mem.Get(key); ok {
		return v.(Dataset), nil
	}
	b, err := c.disk.Read(key)
	if err != nil {
		return Dataset{}, ErrCacheMiss
	}
	d, err := decode(b)
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "decoding cached dataset %s", key)
	}
	c.mem.Add(key, d)
	return d, nil
}

// Set a dataset in both levels of the cache.
func (c *Cache) Set(key string, d Dataset) error {
	b, err := encode(d)
	if err != nil {
		return err
	}
	c.mem.Add(key, d)
	return c.disk.Write(key, b)
}
