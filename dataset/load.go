package dataset

import (
	"compress/bzip2"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
)

// The 20 newsgroups corpus as distributed by the LIBSVM dataset collection.
const (
	News20URL     = "https://www.csie.ntu.edu.tw/~cjlin/libsvmtools/datasets/multiclass/news20.bz2"
	News20TestURL = "https://www.csie.ntu.edu.tw/~cjlin/libsvmtools/datasets/multiclass/news20.t.bz2"
)

// Fetch downloads url into dir unless it has been downloaded before, and returns the local path.
// bzip2 compressed downloads are decompressed on the way to disk.
func Fetch(url, dir string) (string, error) {
	name := strings.TrimSuffix(path.Base(url), ".bz2")
	dst := filepath.Join(dir, name)
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	log.Printf("downloading %s...\n", url)
	resp, err := http.Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "downloading %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("downloading %s: %s", url, resp.Status)
	}

	bar := pb.Full.Start64(resp.ContentLength)
	defer bar.Finish()
	var r io.Reader = bar.NewProxyReader(resp.Body)
	if strings.HasSuffix(url, ".bz2") {
		r = bzip2.NewReader(r)
	}

	// Partial downloads live in a .part file until complete.
	tmp := dst + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", errors.Wrapf(err, "downloading %s", url)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dst, os.Rename(tmp, dst)
}

// Source describes where the pool and test datasets of an experiment come from. Pool and Test are
// either URLs of svmlight files, local svmlight files, or directories of class subdirectories of text
// documents. Dims is the number of feature columns; zero keeps svmlight feature indices unfolded.
type Source struct {
	Pool string
	Test string
	Dims int
}

func (s Source) key() string {
	return Key(s.Pool, s.Test, strconv.Itoa(s.Dims))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (s Source) read(dir string) (Dataset, Dataset, error) {
	poolPath, testPath := s.Pool, s.Test
	var err error
	if isURL(poolPath) {
		if poolPath, err = Fetch(poolPath, dir); err != nil {
			return Dataset{}, Dataset{}, err
		}
	}
	if isURL(testPath) {
		if testPath, err = Fetch(testPath, dir); err != nil {
			return Dataset{}, Dataset{}, err
		}
	}

	if fi, err := os.Stat(poolPath); err == nil && fi.IsDir() {
		log.Println("vectorising text corpora...")
		return VectorizePair(poolPath, testPath, s.Dims)
	}

	pool, err := os.Open(poolPath)
	if err != nil {
		return Dataset{}, Dataset{}, err
	}
	defer pool.Close()
	test, err := os.Open(testPath)
	if err != nil {
		return Dataset{}, Dataset{}, err
	}
	defer test.Close()
	log.Println("reading svmlight files...")
	return ReadSVMLightPair(pool, test, s.Dims)
}

// Load obtains the pool and test datasets of a source, consulting the cache first when there is one.
// Downloads are stored in dir.
func Load(s Source, dir string, cache *Cache) (pool, test Dataset, err error) {
	poolKey, testKey := s.key()+"p", s.key()+"t"
	if cache != nil {
		pool, errPool := cache.Get(poolKey)
		test, errTest := cache.Get(testKey)
		if errPool == nil && errTest == nil {
			log.Println("loaded datasets from cache")
			return pool, test, nil
		}
	}

	pool, test, err = s.read(dir)
	if err != nil {
		return Dataset{}, Dataset{}, err
	}
	if err := pool.Validate(); err != nil {
		return Dataset{}, Dataset{}, errors.Wrap(err, "pool")
	}
	if err := test.Validate(); err != nil {
		return Dataset{}, Dataset{}, errors.Wrap(err, "test")
	}

	if cache != nil {
		if err := cache.Set(poolKey, pool); err != nil {
			return Dataset{}, Dataset{}, err
		}
		if err := cache.Set(testKey, test); err != nil {
			return Dataset{}, Dataset{}, err
		}
	}
	return pool, test, nil
}
