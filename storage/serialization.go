// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// formatVersion prefixes every serialized value so the layout can evolve.
const formatVersion byte = 1

// MarshalCollectionInfo serializes a CollectionInfo to bytes.
func MarshalCollectionInfo(info *CollectionInfo) []byte {
	size := 1 +
		ord.String.Size(info.Name) +
		ord.String.Size(string(info.Metric)) +
		ord.String.Size(info.EmbeddingModel) +
		ord.String.Size(info.Fingerprint) +
		varint.Int.Size(info.Dimensions) +
		varint.Int.Size(info.Count) +
		ord.Bool.Size(info.Sealed) +
		varint.Int64.Size(info.CreatedAt.UnixMicro())

	buf := make([]byte, size)
	buf[0] = formatVersion
	n := 1
	n += ord.String.Marshal(info.Name, buf[n:])
	n += ord.String.Marshal(string(info.Metric), buf[n:])
	n += ord.String.Marshal(info.EmbeddingModel, buf[n:])
	n += ord.String.Marshal(info.Fingerprint, buf[n:])
	n += varint.Int.Marshal(info.Dimensions, buf[n:])
	n += varint.Int.Marshal(info.Count, buf[n:])
	n += ord.Bool.Marshal(info.Sealed, buf[n:])
	varint.Int64.Marshal(info.CreatedAt.UnixMicro(), buf[n:])
	return buf
}

// UnmarshalCollectionInfo deserializes a CollectionInfo from bytes.
func UnmarshalCollectionInfo(data []byte) (*CollectionInfo, error) {
	d, err := newDecoder(data)
	if err != nil {
		return nil, err
	}
	info := &CollectionInfo{
		Name:           d.string(),
		Metric:         Metric(d.string()),
		EmbeddingModel: d.string(),
		Fingerprint:    d.string(),
		Dimensions:     d.int(),
		Count:          d.int(),
		Sealed:         d.bool(),
	}
	createdAt := d.int64()
	if d.err != nil {
		return nil, fmt.Errorf("%w: collection info: %w", ErrSerializationFailed, d.err)
	}
	info.CreatedAt = time.UnixMicro(createdAt).UTC()
	return info, nil
}

// MarshalEntry serializes an Entry to bytes.
func MarshalEntry(entry *Entry) []byte {
	size := 1 +
		ord.String.Size(entry.ID) +
		ord.String.Size(entry.Text) +
		varint.Int.Size(len(entry.Vector))
	for _, v := range entry.Vector {
		size += raw.Float32.Size(v)
	}

	buf := make([]byte, size)
	buf[0] = formatVersion
	n := 1
	n += ord.String.Marshal(entry.ID, buf[n:])
	n += ord.String.Marshal(entry.Text, buf[n:])
	n += varint.Int.Marshal(len(entry.Vector), buf[n:])
	for _, v := range entry.Vector {
		n += raw.Float32.Marshal(v, buf[n:])
	}
	return buf
}

// UnmarshalEntry deserializes an Entry from bytes.
func UnmarshalEntry(data []byte) (*Entry, error) {
	d, err := newDecoder(data)
	if err != nil {
		return nil, err
	}
	entry := &Entry{
		ID:   d.string(),
		Text: d.string(),
	}
	dims := d.int()
	if d.err == nil && (dims < 0 || dims*4 > len(data)-d.off) {
		return nil, fmt.Errorf("%w: entry %q: bad vector length %d", ErrSerializationFailed, entry.ID, dims)
	}
	if d.err == nil {
		entry.Vector = make([]float32, dims)
		for i := range entry.Vector {
			entry.Vector[i] = d.float32()
		}
	}
	if d.err != nil {
		return nil, fmt.Errorf("%w: entry: %w", ErrSerializationFailed, d.err)
	}
	return entry, nil
}

// decoder reads consecutive mus-encoded fields, remembering the first error.
type decoder struct {
	bs  []byte
	off int
	err error
}

func newDecoder(data []byte) (*decoder, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrSerializationFailed)
	}
	if data[0] != formatVersion {
		return nil, fmt.Errorf("%w: unknown format version %d", ErrSerializationFailed, data[0])
	}
	return &decoder{bs: data, off: 1}, nil
}

func (d *decoder) string() string {
	if d.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(d.bs[d.off:])
	d.off += n
	d.err = err
	return v
}

func (d *decoder) int() int {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Int.Unmarshal(d.bs[d.off:])
	d.off += n
	d.err = err
	return v
}

func (d *decoder) int64() int64 {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Int64.Unmarshal(d.bs[d.off:])
	d.off += n
	d.err = err
	return v
}

func (d *decoder) bool() bool {
	if d.err != nil {
		return false
	}
	v, n, err := ord.Bool.Unmarshal(d.bs[d.off:])
	d.off += n
	d.err = err
	return v
}

func (d *decoder) float32() float32 {
	if d.err != nil {
		return 0
	}
	v, n, err := raw.Float32.Unmarshal(d.bs[d.off:])
	d.off += n
	d.err = err
	return v
}
