package table

import (
	"bytes"
	"math"
	"testing"
)

func floatEquals(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func sampleAggregate() *Table {
	ultimate := make([]float64, 20)
	for i := range ultimate {
		ultimate[i] = 0.001 * float64(i+1)
	}
	return &Table{Number: 1, Name: "aggregate sample", MinAge: 0, MaxAge: 19, Ultimate: ultimate}
}

func sampleSelectAndUltimate() *Table {
	const minAge, maxSelectAge, maxAge, selectPeriod = 10, 15, 30, 3
	ultimate := make([]float64, maxAge-minAge+1)
	for i := range ultimate {
		ultimate[i] = 0.01 + 0.001*float64(i)
	}
	rows := make([][]float64, maxSelectAge-minAge+1)
	for i := range rows {
		rows[i] = []float64{0.001, 0.002, 0.003}
	}
	return &Table{
		Number: 256, Name: "select sample",
		MinAge: minAge, MaxAge: maxAge,
		SelectPeriod: selectPeriod, MaxSelectAge: maxSelectAge,
		Ultimate: ultimate, SelectRates: rows,
	}
}

func TestAggregateValues(t *testing.T) {
	tbl := sampleAggregate()
	got, err := tbl.Values(5, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.006, 0.007, 0.008}
	for i := range want {
		if !floatEquals(got[i], want[i], 1e-12) {
			t.Errorf("Values()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAggregateValuesOutOfRange(t *testing.T) {
	tbl := sampleAggregate()
	if _, err := tbl.Values(25, 1); err == nil {
		t.Error("expected error for out-of-range issue age")
	}
	if _, err := tbl.Values(0, 100); err == nil {
		t.Error("expected error for length exceeding table")
	}
}

func TestSelectValuesWithinSelectPeriod(t *testing.T) {
	tbl := sampleSelectAndUltimate()
	got, err := tbl.Values(10, 5)
	if err != nil {
		t.Fatal(err)
	}
	// Durations 0,1,2 come from the select row; durations 3,4 come from
	// ultimate at attained ages 13, 14.
	want := []float64{0.001, 0.002, 0.003, tbl.Ultimate[3], tbl.Ultimate[4]}
	for i := range want {
		if !floatEquals(got[i], want[i], 1e-12) {
			t.Errorf("Values()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSelectValuesIssueAgeBeyondMaxSelect(t *testing.T) {
	tbl := sampleSelectAndUltimate()
	// Issue age 17 is 2 past MaxSelectAge 15: walk back to 15, step
	// forward 2 durations into its select row.
	got, err := tbl.Values(17, 2)
	if err != nil {
		t.Fatal(err)
	}
	row := tbl.SelectRates[15-tbl.MinAge]
	want := []float64{row[2], tbl.Ultimate[18-tbl.MinAge]}
	for i := range want {
		if !floatEquals(got[i], want[i], 1e-12) {
			t.Errorf("Values()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReenterNeverRejectedThroughElaborateInterface(t *testing.T) {
	tbl := sampleSelectAndUltimate()
	if _, err := tbl.ValuesElaborate(ReenterNever, 10, 0, 0, 3); err == nil {
		t.Error("expected ReenterNever to be rejected via ValuesElaborate")
	}
}

func TestReenterAtInforceDurationPadsLeadingZeros(t *testing.T) {
	tbl := sampleSelectAndUltimate()
	got, err := tbl.ValuesElaborate(ReenterAtInforceDuration, 10, 2, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("expected leading zeros, got %v", got[:2])
	}
	freshRow := tbl.SelectRates[12-tbl.MinAge]
	if !floatEquals(got[2], freshRow[0], 1e-12) {
		t.Errorf("expected fresh select rate %v at position 2, got %v", freshRow[0], got[2])
	}
}

func TestReenterUponRateResetPrecondition(t *testing.T) {
	tbl := sampleSelectAndUltimate()
	if _, err := tbl.ValuesElaborate(ReenterUponRateReset, 10, 2, 3, 5); err == nil {
		t.Error("expected error when resetDuration exceeds inforceDuration")
	}
}

func TestReenterUponRateResetPositiveShift(t *testing.T) {
	tbl := sampleSelectAndUltimate()
	got, err := tbl.ValuesElaborate(ReenterUponRateReset, 10, 3, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("expected leading zeros for positive reset, got %v", got[:2])
	}
}

func TestTableRoundTripThroughBinaryFormat(t *testing.T) {
	tbl := sampleSelectAndUltimate()
	var buf bytes.Buffer
	if err := WriteTable(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	got, err := ReadTable(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Number != tbl.Number || got.Name != tbl.Name {
		t.Errorf("metadata mismatch: got %+v", got)
	}
	if len(got.Ultimate) != len(tbl.Ultimate) {
		t.Fatalf("ultimate length mismatch: got %d want %d", len(got.Ultimate), len(tbl.Ultimate))
	}
	for i := range tbl.Ultimate {
		if got.Ultimate[i] != tbl.Ultimate[i] {
			t.Errorf("Ultimate[%d] = %v, want %v", i, got.Ultimate[i], tbl.Ultimate[i])
		}
	}
	if len(got.SelectRates) != len(tbl.SelectRates) {
		t.Fatalf("select row count mismatch: got %d want %d", len(got.SelectRates), len(tbl.SelectRates))
	}
}

func TestIndexBinarySearch(t *testing.T) {
	entries := []IndexEntry{{TableNumber: 1, Offset: 0}, {TableNumber: 42, Offset: 100}, {TableNumber: 750, Offset: 9999}}
	off, ok := FindOffset(entries, 42)
	if !ok || off != 100 {
		t.Errorf("expected offset 100, got %v ok=%v", off, ok)
	}
	if _, ok := FindOffset(entries, 99); ok {
		t.Error("expected lookup miss for table 99")
	}
}

func TestIndexRoundTrip(t *testing.T) {
	entries := []IndexEntry{{TableNumber: 1, Offset: 0}, {TableNumber: 42, Offset: 100}}
	var buf bytes.Buffer
	if err := WriteIndex(&buf, entries); err != nil {
		t.Fatal(err)
	}
	got, err := ReadIndex(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], entries[i])
		}
	}
}
