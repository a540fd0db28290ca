// Command cluster prints the pairwise normalized compression distances of the files in a directory,
// using the size of their bigac encodings as the complexity measure.
package main

import (
	"bytes"
	"flag"
	"io/ioutil"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumin/bigac"
	"github.com/pkg/errors"
)

var (
	dataDir      = flag.String("d", "testdata", "data directory")
	maxPrecision = flag.Uint("p", 1<<24, "maximum working precision in bits")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	if err := run(*dataDir, *maxPrecision); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(dir string, maxPrec uint) error {
	data, err := listFiles(dir)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if len(data) < 2 {
		return errors.Errorf("need at least two files in %s, got %d", dir, len(data))
	}
	codec, err := bigac.NewCodec(bigac.Config{MaxPrecision: maxPrec})
	if err != nil {
		return errors.Wrap(err, "")
	}
	distMat, err := distanceMatrix(codec, data)
	if err != nil {
		return errors.Wrap(err, "")
	}

	display(data, distMat)
	return nil
}

func display(data []string, distMat []float64) {
	names := make([]string, 0, len(data))
	for _, fpath := range data {
		name := filepath.Base(fpath)
		names = append(names, strconv.Quote(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	log.Printf("[%s]", strings.Join(names, ","))

	dists := make([]string, 0, len(distMat))
	for _, f := range distMat {
		dists = append(dists, strconv.FormatFloat(f, 'f', -1, 64))
	}
	log.Printf("[%s]", strings.Join(dists, ","))
}

type complexityCache map[string]float64

// complexity returns the number of bits the encoding of contents needs to be told apart from other messages.
// The encoded value itself is not used, since its precision depends only on the message length.
func (cache complexityCache) complexity(codec *bigac.Codec, key string, contents []byte) (float64, error) {
	if size, ok := cache[key]; ok {
		return size, nil
	}
	table, err := codec.Table(bigac.NewFrequencyTable(contents))
	if err != nil {
		return -1, errors.Wrap(err, key)
	}
	enc := bigac.NewEncoder(table)
	enc.SetMaxPrecision(codec.Config().MaxPrecision)
	for _, c := range contents {
		if err := enc.Encode(c); err != nil {
			return -1, errors.Wrap(err, key)
		}
	}
	size := float64(enc.CodeLength())
	cache[key] = size
	return size, nil
}

func distance(cache complexityCache, codec *bigac.Codec, x, y string, contents map[string][]byte) (float64, error) {
	xy := bytes.Join([][]byte{contents[x], contents[y]}, nil)
	kxy, err := cache.complexity(codec, x+"\x00"+y, xy)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	kx, err := cache.complexity(codec, x, contents[x])
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	ky, err := cache.complexity(codec, y, contents[y])
	if err != nil {
		return -1, errors.Wrap(err, "")
	}

	minxy := kx
	if ky < kx {
		minxy = ky
	}
	maxxy := kx
	if ky > kx {
		maxxy = ky
	}

	dist := (kxy - minxy) / maxxy
	return dist, nil
}

func distanceMatrix(codec *bigac.Codec, data []string) ([]float64, error) {
	contents := make(map[string][]byte, len(data))
	for _, fpath := range data {
		b, err := ioutil.ReadFile(fpath)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		contents[fpath] = b
	}

	cache := make(complexityCache)
	n := len(data)
	mat := make([]float64, 0, n*(n-1)/2)
	for i, dx := range data[:n-1] {
		for _, dy := range data[i+1:] {
			dist, err := distance(cache, codec, dx, dy, contents)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			mat = append(mat, dist)
			log.Printf("%q-%q: %f", dx, dy, dist)
		}
	}
	return mat, nil
}

func listFiles(dir string) ([]string, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	data := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data = append(data, filepath.Join(dir, f.Name()))
	}
	return data, nil
}
