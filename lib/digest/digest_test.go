// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"
)

// patternBytes returns n deterministic, non-repeating bytes.
func patternBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + i>>8)
	}
	return data
}

func TestReaderMatchesSumBytes(t *testing.T) {
	data := patternBytes(10000)
	reader := NewReader(bytes.NewReader(data))

	read, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(read, data) {
		t.Fatal("reader altered the data")
	}
	if reader.BytesRead() != int64(len(data)) {
		t.Errorf("BytesRead = %d, want %d", reader.BytesRead(), len(data))
	}
	if got, want := reader.Sum(), SumBytes(data); got != want {
		t.Errorf("Sum = %s, want %s", got, want)
	}
}

func TestReaderFragmentedSource(t *testing.T) {
	// Byte-at-a-time reads must produce the same digest as one big
	// read.
	data := patternBytes(512)
	reader := NewReader(iotest.OneByteReader(bytes.NewReader(data)))

	if _, err := io.ReadAll(reader); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got, want := reader.Sum(), SumBytes(data); got != want {
		t.Errorf("Sum = %s, want %s", got, want)
	}
}

func TestReaderEmpty(t *testing.T) {
	reader := NewReader(bytes.NewReader(nil))
	if _, err := io.ReadAll(reader); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if reader.BytesRead() != 0 {
		t.Errorf("BytesRead = %d, want 0", reader.BytesRead())
	}
	if got, want := reader.Sum(), SumBytes(nil); got != want {
		t.Errorf("Sum = %s, want %s", got, want)
	}
}

func TestWriterMatchesSumBytes(t *testing.T) {
	data := patternBytes(10000)
	var sink bytes.Buffer
	writer := NewWriter(&sink)

	// Write in uneven pieces.
	for rest := data; len(rest) > 0; {
		n := 777
		if n > len(rest) {
			n = len(rest)
		}
		if _, err := writer.Write(rest[:n]); err != nil {
			t.Fatalf("Write: %v", err)
		}
		rest = rest[n:]
	}

	if !bytes.Equal(sink.Bytes(), data) {
		t.Fatal("writer altered the data")
	}
	if writer.BytesWritten() != int64(len(data)) {
		t.Errorf("BytesWritten = %d, want %d", writer.BytesWritten(), len(data))
	}
	if got, want := writer.Sum(), SumBytes(data); got != want {
		t.Errorf("Sum = %s, want %s", got, want)
	}
}

func TestParseSumRoundTrip(t *testing.T) {
	sum := SumBytes([]byte("content"))

	parsed, err := ParseSum(sum.String())
	if err != nil {
		t.Fatalf("ParseSum: %v", err)
	}
	if parsed != sum {
		t.Errorf("ParseSum(%s) = %s", sum, parsed)
	}

	if _, err := ParseSum("zz"); err == nil {
		t.Error("ParseSum accepted invalid hex")
	}
	if _, err := ParseSum("abcd"); err == nil {
		t.Error("ParseSum accepted a short digest")
	}
}

func TestSumTextMarshaling(t *testing.T) {
	sum := SumBytes([]byte("content"))

	text, err := sum.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != sum.String() {
		t.Errorf("MarshalText = %q, want %q", text, sum.String())
	}

	var decoded Sum
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if decoded != sum {
		t.Errorf("text roundtrip: got %s, want %s", decoded, sum)
	}
}

func BenchmarkReader(b *testing.B) {
	data := patternBytes(1 << 20)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		reader := NewReader(bytes.NewReader(data))
		if _, err := io.Copy(io.Discard, reader); err != nil {
			b.Fatal(err)
		}
		reader.Sum()
	}
}
