package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/snappy"
)

// Archive file format:
//
//	[Magic:4]["LNGA"][Version:1][RunIDLen:2][RunID:N]
//	then per entry:
//	[NameLen:2][Name:N][DataLen:4][CompressedData:N][Checksum:4]
//
// The checksum covers the compressed bytes.
const (
	archiveMagic   = "LNGA"
	archiveVersion = byte(1)
)

var (
	ErrNotArchive       = errors.New("not a result archive")
	ErrChecksumMismatch = errors.New("archive entry checksum mismatch")
)

// ArchiveWriter streams result files into a snappy-compressed archive so a
// finished run can be stored or shipped as a single artifact.
type ArchiveWriter struct {
	file   *os.File
	writer *bufio.Writer
	mu     sync.Mutex

	// Statistics
	entries           uint64
	bytesUncompressed uint64
	bytesCompressed   uint64
}

// NewArchiveWriter creates an archive at path stamped with the run ID.
func NewArchiveWriter(path, runID string) (*ArchiveWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	w := &ArchiveWriter{
		file:   file,
		writer: bufio.NewWriter(file),
	}

	if err := w.writeHeader(runID); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write archive header: %w", err)
	}
	return w, nil
}

func (w *ArchiveWriter) writeHeader(runID string) error {
	if _, err := w.writer.WriteString(archiveMagic); err != nil {
		return err
	}
	if err := w.writer.WriteByte(archiveVersion); err != nil {
		return err
	}
	if err := binary.Write(w.writer, binary.BigEndian, uint16(len(runID))); err != nil {
		return err
	}
	_, err := w.writer.WriteString(runID)
	return err
}

// Add compresses and appends one named entry.
func (w *ArchiveWriter) Add(name string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	compressed := snappy.Encode(nil, data)

	if err := binary.Write(w.writer, binary.BigEndian, uint16(len(name))); err != nil {
		return err
	}
	if _, err := w.writer.WriteString(name); err != nil {
		return err
	}
	if err := binary.Write(w.writer, binary.BigEndian, uint32(len(compressed))); err != nil {
		return err
	}
	if _, err := w.writer.Write(compressed); err != nil {
		return err
	}
	if err := binary.Write(w.writer, binary.BigEndian, crc32.ChecksumIEEE(compressed)); err != nil {
		return err
	}

	w.entries++
	w.bytesUncompressed += uint64(len(data))
	w.bytesCompressed += uint64(len(compressed))
	return nil
}

// AddFile reads path from disk and appends it under its base name.
func (w *ArchiveWriter) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return w.Add(filepath.Base(path), data)
}

// CompressionRatio reports compressed over uncompressed bytes.
func (w *ArchiveWriter) CompressionRatio() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.bytesUncompressed == 0 {
		return 1.0
	}
	return float64(w.bytesCompressed) / float64(w.bytesUncompressed)
}

// Close flushes and closes the archive.
func (w *ArchiveWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush archive: %w", err)
	}
	return w.file.Close()
}

// ReadArchive opens and fully decodes an archive, verifying every entry's
// checksum. Returns the run ID and the decompressed entries in file order.
func ReadArchive(path string) (string, map[string][]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	magic := make([]byte, len(archiveMagic))
	if _, err := io.ReadFull(reader, magic); err != nil {
		return "", nil, fmt.Errorf("failed to read archive magic: %w", err)
	}
	if string(magic) != archiveMagic {
		return "", nil, ErrNotArchive
	}

	version, err := reader.ReadByte()
	if err != nil {
		return "", nil, fmt.Errorf("failed to read archive version: %w", err)
	}
	if version != archiveVersion {
		return "", nil, fmt.Errorf("unsupported archive version %d", version)
	}

	var runIDLen uint16
	if err := binary.Read(reader, binary.BigEndian, &runIDLen); err != nil {
		return "", nil, fmt.Errorf("failed to read run ID length: %w", err)
	}
	runID := make([]byte, runIDLen)
	if _, err := io.ReadFull(reader, runID); err != nil {
		return "", nil, fmt.Errorf("failed to read run ID: %w", err)
	}

	entries := make(map[string][]byte)
	for {
		var nameLen uint16
		if err := binary.Read(reader, binary.BigEndian, &nameLen); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", nil, fmt.Errorf("failed to read entry name length: %w", err)
		}

		name := make([]byte, nameLen)
		if _, err := io.ReadFull(reader, name); err != nil {
			return "", nil, fmt.Errorf("failed to read entry name: %w", err)
		}

		var dataLen uint32
		if err := binary.Read(reader, binary.BigEndian, &dataLen); err != nil {
			return "", nil, fmt.Errorf("failed to read entry length: %w", err)
		}
		compressed := make([]byte, dataLen)
		if _, err := io.ReadFull(reader, compressed); err != nil {
			return "", nil, fmt.Errorf("failed to read entry data: %w", err)
		}

		var checksum uint32
		if err := binary.Read(reader, binary.BigEndian, &checksum); err != nil {
			return "", nil, fmt.Errorf("failed to read entry checksum: %w", err)
		}
		if crc32.ChecksumIEEE(compressed) != checksum {
			return "", nil, fmt.Errorf("entry %s: %w", name, ErrChecksumMismatch)
		}

		data, err := snappy.Decode(nil, compressed)
		if err != nil {
			return "", nil, fmt.Errorf("entry %s: failed to decompress: %w", name, err)
		}
		entries[string(name)] = data
	}

	return string(runID), entries, nil
}
