package table

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
)

// Tag values identify the fields carried by a TLV record in the .dat file.
// The legacy SOA binary format this package reads distinguishes fields by a
// small fixed tag vocabulary; the concrete numeric values below are this
// rewrite's own assignment (no physical sample files accompanied the
// specification this package was built from), but the record shape itself
// — 2-byte big-endian tag, 2-byte big-endian length, payload — is
// normative and is what callers holding legacy files depend on.
const (
	tagNumber        uint16 = 1
	tagName          uint16 = 2
	tagMinAge        uint16 = 3
	tagMaxAge        uint16 = 4
	tagSelectPeriod  uint16 = 5
	tagMaxSelectAge  uint16 = 6
	tagUltimateRates uint16 = 7
	tagSelectRow     uint16 = 8 // repeated once per select issue age, in order
	tagEnd           uint16 = 0
)

// indexRecordSize is the fixed byte size of one (table_number, offset) pair
// in the .ndx file: a big-endian int32 table number followed by a
// big-endian int64 byte offset into the .dat file.
const indexRecordSize = 4 + 8

// IndexEntry is one row of the .ndx file.
type IndexEntry struct {
	TableNumber int32
	Offset      int64
}

// ReadIndex parses a complete .ndx file. Entries must already be sorted by
// TableNumber ascending; ReadIndex does not sort them; FindOffset's binary
// search depends on that invariant, matching the legacy format's own
// on-disk contract.
func ReadIndex(r io.Reader) ([]IndexEntry, error) {
	var entries []IndexEntry
	buf := make([]byte, indexRecordSize)
	for {
		_, err := io.ReadFull(r, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: corrupt index record: %w", err)
		}
		entries = append(entries, IndexEntry{
			TableNumber: int32(binary.BigEndian.Uint32(buf[0:4])),
			Offset:      int64(binary.BigEndian.Uint64(buf[4:12])),
		})
	}
	return entries, nil
}

// WriteIndex serializes entries, which must already be sorted by
// TableNumber, to the .ndx format.
func WriteIndex(w io.Writer, entries []IndexEntry) error {
	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].TableNumber < entries[j].TableNumber }) {
		return fmt.Errorf("table: WriteIndex: entries must be sorted by table number")
	}
	buf := make([]byte, indexRecordSize)
	for _, e := range entries {
		binary.BigEndian.PutUint32(buf[0:4], uint32(e.TableNumber))
		binary.BigEndian.PutUint64(buf[4:12], uint64(e.Offset))
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("table: WriteIndex: %w", err)
		}
	}
	return nil
}

// FindOffset performs a binary search of a sorted index for tableNumber.
func FindOffset(entries []IndexEntry, tableNumber int32) (int64, bool) {
	i := sort.Search(len(entries), func(i int) bool { return entries[i].TableNumber >= tableNumber })
	if i < len(entries) && entries[i].TableNumber == tableNumber {
		return entries[i].Offset, true
	}
	return 0, false
}

func readRecord(r io.Reader) (tag uint16, payload []byte, err error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, err
	}
	tag = binary.BigEndian.Uint16(header[0:2])
	length := binary.BigEndian.Uint16(header[2:4])
	payload = make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return 0, nil, fmt.Errorf("table: truncated record payload: %w", err)
		}
	}
	return tag, payload, nil
}

func writeRecord(w io.Writer, tag uint16, payload []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint16(header[0:2], tag)
	binary.BigEndian.PutUint16(header[2:4], uint16(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

func encodeFloat64s(values []float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8*i:8*i+8], math.Float64bits(v))
	}
	return buf
}

func decodeFloat64s(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("table: rate array payload not a multiple of 8 bytes")
	}
	n := len(b) / 8
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i : 8*i+8]))
	}
	return out, nil
}

// ReadTable parses one table's TLV record stream starting at the current
// position of r and continuing through a terminating tagEnd record.
func ReadTable(r io.Reader) (*Table, error) {
	t := &Table{}
	for {
		tag, payload, err := readRecord(r)
		if err != nil {
			return nil, err
		}
		switch tag {
		case tagEnd:
			return t, nil
		case tagNumber:
			t.Number = int32(binary.BigEndian.Uint32(payload))
		case tagName:
			t.Name = string(payload)
		case tagMinAge:
			t.MinAge = int(int32(binary.BigEndian.Uint32(payload)))
		case tagMaxAge:
			t.MaxAge = int(int32(binary.BigEndian.Uint32(payload)))
		case tagSelectPeriod:
			t.SelectPeriod = int(int32(binary.BigEndian.Uint32(payload)))
		case tagMaxSelectAge:
			t.MaxSelectAge = int(int32(binary.BigEndian.Uint32(payload)))
		case tagUltimateRates:
			rates, err := decodeFloat64s(payload)
			if err != nil {
				return nil, err
			}
			t.Ultimate = rates
		case tagSelectRow:
			rates, err := decodeFloat64s(payload)
			if err != nil {
				return nil, err
			}
			t.SelectRates = append(t.SelectRates, rates)
		default:
			return nil, fmt.Errorf("table: unrecognized tag %d", tag)
		}
	}
}

// WriteTable serializes t's TLV record stream, terminated by a tagEnd
// record, to w. The caller is responsible for recording the byte offset at
// which this call begins, for later inclusion in the .ndx index.
func WriteTable(w io.Writer, t *Table) error {
	var int32buf [4]byte

	putInt32 := func(tag uint16, v int32) error {
		binary.BigEndian.PutUint32(int32buf[:], uint32(v))
		return writeRecord(w, tag, int32buf[:])
	}

	if err := putInt32(tagNumber, t.Number); err != nil {
		return err
	}
	if err := writeRecord(w, tagName, []byte(t.Name)); err != nil {
		return err
	}
	if err := putInt32(tagMinAge, int32(t.MinAge)); err != nil {
		return err
	}
	if err := putInt32(tagMaxAge, int32(t.MaxAge)); err != nil {
		return err
	}
	if err := putInt32(tagSelectPeriod, int32(t.SelectPeriod)); err != nil {
		return err
	}
	if err := putInt32(tagMaxSelectAge, int32(t.MaxSelectAge)); err != nil {
		return err
	}
	if err := writeRecord(w, tagUltimateRates, encodeFloat64s(t.Ultimate)); err != nil {
		return err
	}
	for _, row := range t.SelectRates {
		if err := writeRecord(w, tagSelectRow, encodeFloat64s(row)); err != nil {
			return err
		}
	}
	return writeRecord(w, tagEnd, nil)
}

// ReadTableAt reads the table whose TLV stream begins at byte offset
// offset within dat.
func ReadTableAt(dat []byte, offset int64) (*Table, error) {
	if offset < 0 || offset > int64(len(dat)) {
		return nil, fmt.Errorf("table: offset %d out of range", offset)
	}
	return ReadTable(bytes.NewReader(dat[offset:]))
}
