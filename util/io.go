package util

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
)

// BufferReader/BufferWriter and the Read/Write generics mirror
// ttpr0-go-routing/util/io.go's persistence idiom for whole-value files. The
// weight, subnetwork and eccentricity tables do not use them; they go through
// store.MappedFile's offset accessors instead.

func NewBufferReader(data []byte) BufferReader {
	return BufferReader{reader: bytes.NewReader(data)}
}

type BufferReader struct {
	reader *bytes.Reader
}

func Read[T any](r BufferReader) T {
	var value T
	binary.Read(r.reader, binary.LittleEndian, &value)
	return value
}

func ReadArray[T any](r BufferReader) Array[T] {
	var size int32
	binary.Read(r.reader, binary.LittleEndian, &size)
	value := NewArray[T](int(size))
	binary.Read(r.reader, binary.LittleEndian, value)
	return value
}

func NewBufferWriter() BufferWriter {
	return BufferWriter{buffer: &bytes.Buffer{}}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (w BufferWriter) Bytes() []byte {
	return w.buffer.Bytes()
}

func Write[T any](w BufferWriter, value T) {
	binary.Write(w.buffer, binary.LittleEndian, value)
}

func WriteArray[T any](w BufferWriter, value Array[T]) {
	binary.Write(w.buffer, binary.LittleEndian, int32(value.Length()))
	binary.Write(w.buffer, binary.LittleEndian, value)
}

func WriteToFile[T any](value T, file string) error {
	w := NewBufferWriter()
	Write(w, value)
	return os.WriteFile(file, w.Bytes(), 0o644)
}

func WriteArrayToFile[T any](value Array[T], file string) error {
	w := NewBufferWriter()
	WriteArray(w, value)
	return os.WriteFile(file, w.Bytes(), 0o644)
}

func ReadFromFile[T any](file string) (T, error) {
	var zero T
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, err
		}
		return zero, err
	}
	return Read[T](NewBufferReader(data)), nil
}

func ReadArrayFromFile[T any](file string) (Array[T], error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return ReadArray[T](NewBufferReader(data)), nil
}
