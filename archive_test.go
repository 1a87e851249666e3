package hufgram

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleArchive() *Archive {
	return &Archive{
		GroupSize:      2,
		CodePointCount: 7,
		Name:           "notes.txt",
		Entries: []FreqEntry{
			{Token: "a", Count: 1},
			{Token: "ab", Count: 2},
			{Token: "cd", Count: 1},
		},
		Stream: []byte{0xB4},
	}
}

func TestArchiveWireRoundTrip(t *testing.T) {
	orig := sampleArchive()

	var buf bytes.Buffer
	wn, err := orig.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if wn != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, wrote %d", wn, buf.Len())
	}

	var got Archive
	rn, err := got.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if rn != wn {
		t.Errorf("ReadFrom consumed %d bytes, want %d", rn, wn)
	}
	if diff := cmp.Diff(orig, &got); diff != "" {
		t.Errorf("archive mismatch (-want +got):\n%s", diff)
	}
}

func TestArchiveByteLayout(t *testing.T) {
	a := &Archive{
		GroupSize:      1,
		CodePointCount: 2,
		Name:           "x",
		Entries:        []FreqEntry{{Token: "z", Count: 2}},
		Stream:         []byte{0x00},
	}

	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	want := []byte{
		'H', 'U', 'F', '1',
		0, 0, 0, 1, // group size
		0, 0, 0, 0, 0, 0, 0, 2, // code-point count
		0, 1, 'x', // name
		0, 0, 0, 1, // entry count
		0, 0, 0, 1, 'z', // token length + token
		0, 0, 0, 2, // frequency
		0x00, // stream
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("layout mismatch:\n got % X\nwant % X", buf.Bytes(), want)
	}
}

func TestArchiveReadBadMagic(t *testing.T) {
	var buf bytes.Buffer
	if _, err := sampleArchive().WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.Bytes()
	copy(raw, "NOPE")

	var got Archive
	if _, err := got.ReadFrom(bytes.NewReader(raw)); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestArchiveReadRejectsHugeTokenLength(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(archiveMagic)
	binary.Write(&buf, binary.BigEndian, uint32(1))          // group size
	binary.Write(&buf, binary.BigEndian, uint64(1))          // code-point count
	binary.Write(&buf, binary.BigEndian, uint16(0))          // name length
	binary.Write(&buf, binary.BigEndian, uint32(1))          // entry count
	binary.Write(&buf, binary.BigEndian, uint32(0xFFFFFFFF)) // token length

	var got Archive
	_, err := got.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err == nil {
		t.Fatal("expected error for token length beyond ceiling")
	}
	if !strings.Contains(err.Error(), "ceiling") {
		t.Fatalf("expected ceiling rejection, got %v", err)
	}
}

func TestArchiveReadRejectsZeroFrequency(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(archiveMagic)
	binary.Write(&buf, binary.BigEndian, uint32(1))  // group size
	binary.Write(&buf, binary.BigEndian, uint64(1))  // code-point count
	binary.Write(&buf, binary.BigEndian, uint16(0))  // name length
	binary.Write(&buf, binary.BigEndian, uint32(1))  // entry count
	binary.Write(&buf, binary.BigEndian, uint32(1))  // token length
	buf.WriteByte('a')                               // token
	binary.Write(&buf, binary.BigEndian, uint32(0))  // frequency

	var got Archive
	_, err := got.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "non-positive frequency") {
		t.Fatalf("expected zero-frequency rejection, got %v", err)
	}
}

func TestArchiveReadRejectsDuplicateToken(t *testing.T) {
	a := sampleArchive()
	a.Entries = append(a.Entries, FreqEntry{Token: "a", Count: 3})

	var buf bytes.Buffer
	buf.WriteString(archiveMagic)
	binary.Write(&buf, binary.BigEndian, a.GroupSize)
	binary.Write(&buf, binary.BigEndian, a.CodePointCount)
	binary.Write(&buf, binary.BigEndian, uint16(len(a.Name)))
	buf.WriteString(a.Name)
	binary.Write(&buf, binary.BigEndian, uint32(len(a.Entries)))
	for _, e := range a.Entries {
		binary.Write(&buf, binary.BigEndian, uint32(len(e.Token)))
		buf.WriteString(string(e.Token))
		binary.Write(&buf, binary.BigEndian, e.Count)
	}

	var got Archive
	_, err := got.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate-token rejection, got %v", err)
	}
}

func TestArchiveReadTruncatedHeader(t *testing.T) {
	var buf bytes.Buffer
	if _, err := sampleArchive().WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.Bytes()

	for _, cut := range []int{0, 2, 4, 10, 15, 20} {
		var got Archive
		if _, err := got.ReadFrom(bytes.NewReader(raw[:cut])); err == nil {
			t.Errorf("cut at %d bytes: expected error, got archive %+v", cut, got)
		}
	}
}

func TestArchiveReadLeavesReceiverUntouchedOnError(t *testing.T) {
	got := *sampleArchive()
	if _, err := got.ReadFrom(bytes.NewReader([]byte("HUF1\x00"))); err == nil {
		t.Fatal("expected error for truncated archive")
	}
	if diff := cmp.Diff(sampleArchive(), &got); diff != "" {
		t.Errorf("receiver modified by failed read (-want +got):\n%s", diff)
	}
}

func TestWriteToRejectsInvalidArchive(t *testing.T) {
	cases := map[string]*Archive{
		"zero group size": {
			GroupSize: 0,
			Entries:   []FreqEntry{{Token: "a", Count: 1}},
		},
		"empty frequency table": {
			GroupSize: 1,
		},
		"zero count": {
			GroupSize: 1,
			Entries:   []FreqEntry{{Token: "a", Count: 0}},
		},
		"duplicate tokens": {
			GroupSize: 1,
			Entries:   []FreqEntry{{Token: "a", Count: 1}, {Token: "a", Count: 2}},
		},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := a.WriteTo(&buf); err == nil {
				t.Error("expected validation error")
			}
			if buf.Len() != 0 {
				t.Errorf("invalid archive still wrote %d bytes", buf.Len())
			}
		})
	}
}
