package bigac

import (
	"bytes"
	"io"
	"io/ioutil"
	"log"
	"math/big"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// Config configures a Codec.
type Config struct {
	// MaxPrecision is the largest working precision in bits a message may need.
	// Zero means big.MaxPrec.
	MaxPrecision uint

	// TableCacheSize is the number of interval tables a Codec keeps for reuse.
	TableCacheSize int

	// Verbose logs the interval table, step precision and compression ratio of every message.
	Verbose bool
}

// DefaultConfig returns the configuration used by Compress and Decompress when given a zero Config.
func DefaultConfig() Config {
	return Config{
		MaxPrecision:   big.MaxPrec,
		TableCacheSize: 16,
	}
}

// A Codec encodes and decodes messages, reusing the interval table of equal symbol counts.
// Reuse guarantees that an encoder and a decoder in the same process share the very same table instance.
// A Codec is safe for concurrent use.
type Codec struct {
	config Config
	tables *lru.Cache[uint64, *cachedTable]
}

type cachedTable struct {
	freqs *FrequencyTable
	table *IntervalTable
}

// NewCodec returns a Codec configured by config.
func NewCodec(config Config) (*Codec, error) {
	def := DefaultConfig()
	if config.MaxPrecision == 0 || config.MaxPrecision > big.MaxPrec {
		config.MaxPrecision = def.MaxPrecision
	}
	if config.TableCacheSize <= 0 {
		config.TableCacheSize = def.TableCacheSize
	}
	tables, err := lru.New[uint64, *cachedTable](config.TableCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return &Codec{config: config, tables: tables}, nil
}

// Config returns the effective configuration of c.
func (c *Codec) Config() Config {
	return c.config
}

// Table returns the interval table of ft.
// Equal frequency tables yield the same *IntervalTable as long as it stays cached.
func (c *Codec) Table(ft *FrequencyTable) (*IntervalTable, error) {
	key := ft.Fingerprint()
	if ct, ok := c.tables.Get(key); ok && ct.freqs.Equal(ft) {
		return ct.table, nil
	}
	table, err := NewIntervalTable(ft)
	if err != nil {
		return nil, err
	}
	c.tables.Add(key, &cachedTable{freqs: ft, table: table})
	return table, nil
}

// EncodeBytes counts the symbols of input and encodes it with the resulting interval table.
func (c *Codec) EncodeBytes(input []byte) (*EncodedValue, *FrequencyTable, error) {
	ft := NewFrequencyTable(input)
	table, err := c.Table(ft)
	if err != nil {
		return nil, nil, errors.Wrap(err, "")
	}
	v, err := encode(input, table, c.config.MaxPrecision)
	if err != nil {
		return nil, nil, errors.Wrap(err, "")
	}
	if c.config.Verbose {
		log.Printf("step precision: %d", table.StepPrecision())
		log.Printf("intervals: %s", table)
		log.Printf("compression: %s", CompressionRatio(input, v))
	}
	return v, ft, nil
}

// DecodeValue decodes v with the interval table of ft.
func (c *Codec) DecodeValue(v *EncodedValue, ft *FrequencyTable) ([]byte, error) {
	table, err := c.Table(ft)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if v != nil && v.Value != nil && uint64(v.Precision()) > uint64(c.config.MaxPrecision) {
		return nil, &PrecisionOverflowError{Required: uint64(v.Precision()), Max: c.config.MaxPrecision}
	}
	out, err := Decode(v, table)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return out, nil
}

// Compress reads all of r and writes its container to w.
func (c *Codec) Compress(w io.Writer, r io.Reader) error {
	input, err := ioutil.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "")
	}
	v, ft, err := c.EncodeBytes(input)
	if err != nil {
		return errors.Wrap(err, "")
	}
	ctr := &Container{Frequencies: ft, Value: v, Checksum: xxhash.Sum64(input)}
	if err := WriteContainer(w, ctr); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Decompress reads a container from r and writes the decoded message to w.
// ErrChecksum is returned, and nothing is written, if the decoded message does not match the recorded checksum.
func (c *Codec) Decompress(w io.Writer, r io.Reader) error {
	ctr, err := ReadContainer(r, c.config.MaxPrecision)
	if err != nil {
		return errors.Wrap(err, "")
	}
	out, err := c.DecodeValue(ctr.Value, ctr.Frequencies)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if xxhash.Sum64(out) != ctr.Checksum {
		return ErrChecksum
	}
	if c.config.Verbose {
		log.Printf("decoded %d symbols", len(out))
	}
	if _, err := io.Copy(w, bytes.NewReader(out)); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Compress encodes the file name and writes the container to w.
func Compress(w io.Writer, name string, config Config) error {
	c, err := NewCodec(config)
	if err != nil {
		return errors.Wrap(err, "")
	}
	input, err := ioutil.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	return c.Compress(w, bytes.NewReader(input))
}

// Decompress decodes a container read from r and writes the message to w.
func Decompress(w io.Writer, r io.Reader, config Config) error {
	c, err := NewCodec(config)
	if err != nil {
		return errors.Wrap(err, "")
	}
	return c.Decompress(w, r)
}
