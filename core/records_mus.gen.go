// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slicerFHODWOQUsSqbYI7R4FnIAΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var ParentIDMUS = parentIDMUS{}

type parentIDMUS struct{}

func (s parentIDMUS) Marshal(v ParentID, bs []byte) (n int) {
	return varint.Int64.Marshal(int64(v), bs)
}

func (s parentIDMUS) Unmarshal(bs []byte) (v ParentID, n int, err error) {
	tmp, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ParentID(tmp)
	return
}

func (s parentIDMUS) Size(v ParentID) (size int) {
	return varint.Int64.Size(int64(v))
}

func (s parentIDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

var VectorRecordMUS = vectorRecordMUS{}

type vectorRecordMUS struct{}

func (s vectorRecordMUS) Marshal(v VectorRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.VectorID, bs)
	n += ParentIDMUS.Marshal(v.ParentID, bs[n:])
	n += varint.Int.Marshal(v.Seq, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += slicerFHODWOQUsSqbYI7R4FnIAΞΞ.Marshal(v.Vector, bs[n:])
	n += ord.String.Marshal(v.SummaryOf, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s vectorRecordMUS) Unmarshal(bs []byte) (v VectorRecord, n int, err error) {
	v.VectorID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ParentID, n1, err = ParentIDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Seq, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slicerFHODWOQUsSqbYI7R4FnIAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SummaryOf, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s vectorRecordMUS) Size(v VectorRecord) (size int) {
	size = ord.String.Size(v.VectorID)
	size += ParentIDMUS.Size(v.ParentID)
	size += varint.Int.Size(v.Seq)
	size += ord.String.Size(v.Text)
	size += slicerFHODWOQUsSqbYI7R4FnIAΞΞ.Size(v.Vector)
	size += ord.String.Size(v.SummaryOf)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s vectorRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ParentIDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicerFHODWOQUsSqbYI7R4FnIAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var ChunkLinkMUS = chunkLinkMUS{}

type chunkLinkMUS struct{}

func (s chunkLinkMUS) Marshal(v ChunkLink, bs []byte) (n int) {
	n = ParentIDMUS.Marshal(v.ParentID, bs)
	return n + ord.String.Marshal(v.VectorID, bs[n:])
}

func (s chunkLinkMUS) Unmarshal(bs []byte) (v ChunkLink, n int, err error) {
	v.ParentID, n, err = ParentIDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.VectorID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkLinkMUS) Size(v ChunkLink) (size int) {
	size = ParentIDMUS.Size(v.ParentID)
	return size + ord.String.Size(v.VectorID)
}

func (s chunkLinkMUS) Skip(bs []byte) (n int, err error) {
	n, err = ParentIDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var ParentChunkMUS = parentChunkMUS{}

type parentChunkMUS struct{}

func (s parentChunkMUS) Marshal(v ParentChunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.Key, bs)
	return n + ord.String.Marshal(v.Text, bs[n:])
}

func (s parentChunkMUS) Unmarshal(bs []byte) (v ParentChunk, n int, err error) {
	v.Key, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s parentChunkMUS) Size(v ParentChunk) (size int) {
	size = ord.String.Size(v.Key)
	return size + ord.String.Size(v.Text)
}

func (s parentChunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}
