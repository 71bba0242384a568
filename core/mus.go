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


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types persisted by the storage layer. Timestamps
// are stored as Unix microseconds.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// ResolutionMUS serializes Resolution values.
var ResolutionMUS = resolutionMUS{}

type resolutionMUS struct{}

func (resolutionMUS) Marshal(v Resolution, bs []byte) (n int) {
	n = ord.Bool.Marshal(v.Answer, bs)
	n += ord.String.Marshal(string(v.Provenance), bs[n:])
	n += varint.Int64.Marshal(v.ResolvedAt.UnixMicro(), bs[n:])
	return n
}

func (resolutionMUS) Unmarshal(bs []byte) (v Resolution, n int, err error) {
	v.Answer, n, err = ord.Bool.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	var provenance string
	provenance, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Provenance = Provenance(provenance)
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ResolvedAt = time.UnixMicro(micros).UTC()
	return
}

func (resolutionMUS) Size(v Resolution) (size int) {
	size = ord.Bool.Size(v.Answer)
	size += ord.String.Size(string(v.Provenance))
	size += varint.Int64.Size(v.ResolvedAt.UnixMicro())
	return size
}

func (resolutionMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.Bool.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}
