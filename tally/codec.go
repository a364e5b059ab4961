package tally

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// Codec converts a tally to and from its persisted form.
// Encoding must be deterministic: equal tallies produce equal bytes.
type Codec interface {
	Marshal(t *Tally) ([]byte, error)
	Unmarshal(data []byte) (*Tally, error)
}

// JSONCodec stores the tally as
// {"word_counts": {...}, "processed_book_ids": [...]}.
//
// Book IDs are file names and may hold bytes that are not UTF-8, which JSON
// strings cannot carry. Such bytes and '%' itself are written as %XX.
type JSONCodec struct{}

type jsonState struct {
	WordCounts       map[string]int `json:"word_counts"`
	ProcessedBookIDs []string       `json:"processed_book_ids"`
}

// Marshal implements Codec. Map keys are emitted sorted by encoding/json.
func (JSONCodec) Marshal(t *Tally) ([]byte, error) {
	ids := t.Processed()
	for i, id := range ids {
		ids[i] = escapeID(id)
	}
	data, err := json.Marshal(jsonState{
		WordCounts:       t.counts,
		ProcessedBookIDs: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return data, nil
}

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte) (*Tally, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var st jsonState
	if err := dec.Decode(&st); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after state object", ErrInvalidState)
	}

	t := New()
	for word, n := range st.WordCounts {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative count %d for %q", ErrInvalidState, n, word)
		}
		t.Add(word, n)
	}
	for _, raw := range st.ProcessedBookIDs {
		id, err := unescapeID(raw)
		if err != nil {
			return nil, err
		}
		t.MarkProcessed(id)
	}
	return t, nil
}

func escapeID(id string) string {
	if utf8.ValidString(id) && !strings.Contains(id, "%") {
		return id
	}
	var b strings.Builder
	for i := 0; i < len(id); {
		r, size := utf8.DecodeRuneInString(id[i:])
		if r == '%' || (r == utf8.RuneError && size == 1) {
			fmt.Fprintf(&b, "%%%02X", id[i])
		} else {
			b.WriteString(id[i : i+size])
		}
		i += size
	}
	return b.String()
}

func unescapeID(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+3 > len(s) {
			return "", fmt.Errorf("%w: bad escape in book id %q", ErrInvalidState, s)
		}
		v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", fmt.Errorf("%w: bad escape in book id %q", ErrInvalidState, s)
		}
		b.WriteByte(byte(v))
		i += 2
	}
	return b.String(), nil
}

// Field numbers of the wire format:
//
//	message TallyState {
//	  map<string, int64> word_counts = 1;
//	  repeated string processed_book_ids = 2;
//	}
const (
	fieldWordCounts       protowire.Number = 1
	fieldProcessedBookIDs protowire.Number = 2

	fieldEntryKey   protowire.Number = 1
	fieldEntryValue protowire.Number = 2
)

// ProtoCodec stores the tally in protobuf wire format.
type ProtoCodec struct{}

// Marshal implements Codec. Map entries are written sorted by word.
func (ProtoCodec) Marshal(t *Tally) ([]byte, error) {
	var b []byte
	var entry []byte
	for _, word := range t.Words() {
		entry = entry[:0]
		entry = protowire.AppendTag(entry, fieldEntryKey, protowire.BytesType)
		entry = protowire.AppendString(entry, word)
		entry = protowire.AppendTag(entry, fieldEntryValue, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(t.counts[word]))

		b = protowire.AppendTag(b, fieldWordCounts, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	for _, id := range t.Processed() {
		b = protowire.AppendTag(b, fieldProcessedBookIDs, protowire.BytesType)
		b = protowire.AppendString(b, id)
	}
	return b, nil
}

// Unmarshal implements Codec. Unknown fields are skipped.
func (ProtoCodec) Unmarshal(data []byte) (*Tally, error) {
	t := New()
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrInvalidState, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldWordCounts && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, fmt.Errorf("%w: %w", ErrInvalidState, protowire.ParseError(m))
			}
			word, count, err := unmarshalEntry(v)
			if err != nil {
				return nil, err
			}
			t.Add(word, count)
			n = m
		case num == fieldProcessedBookIDs && typ == protowire.BytesType:
			id, m := protowire.ConsumeString(data)
			if m < 0 {
				return nil, fmt.Errorf("%w: %w", ErrInvalidState, protowire.ParseError(m))
			}
			t.MarkProcessed(id)
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("%w: %w", ErrInvalidState, protowire.ParseError(n))
			}
		}
		data = data[n:]
	}
	return t, nil
}

func unmarshalEntry(data []byte) (string, int, error) {
	var word string
	var count uint64
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return "", 0, fmt.Errorf("%w: %w", ErrInvalidState, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldEntryKey && typ == protowire.BytesType:
			word, n = protowire.ConsumeString(data)
		case num == fieldEntryValue && typ == protowire.VarintType:
			count, n = protowire.ConsumeVarint(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return "", 0, fmt.Errorf("%w: %w", ErrInvalidState, protowire.ParseError(n))
		}
		data = data[n:]
	}
	if int64(count) < 0 {
		return "", 0, fmt.Errorf("%w: negative count for %q", ErrInvalidState, word)
	}
	return word, int(count), nil
}

// codecFor picks the codec for a state file by extension.
func codecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pb", ".binpb":
		return ProtoCodec{}
	default:
		return JSONCodec{}
	}
}
