package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/magiconair/properties"
)

// Parser decodes one file's content.
type Parser[T any] func(r io.Reader) (T, error)

var errTrailingData = errors.New("trailing data after JSON value")

// DecodeJSON decodes a single JSON document. Numbers are kept as json.Number
// so large counters survive without float rounding.
func DecodeJSON[T any](r io.Reader) (T, error) {
	var v T
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if dec.More() {
		return v, errTrailingData
	}
	return v, nil
}

var gzipMagic = []byte{0x1f, 0x8b}

// DecodeNBT decodes a binary NBT compound into T, transparently inflating
// gzip input. Fields of T are matched by their nbt struct tags.
func DecodeNBT[T any](r io.Reader) (T, error) {
	var v T
	br := bufio.NewReader(r)

	var src io.Reader = br
	if head, err := br.Peek(len(gzipMagic)); err == nil && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return v, err
		}
		defer func() { _ = zr.Close() }()
		src = zr
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return v, err
	}
	if err := nbt.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeProperties reads a Java-style key=value properties file. Values are
// taken literally; ${...} is not expanded.
func DecodeProperties(r io.Reader) (map[string]string, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadReader(r)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}
