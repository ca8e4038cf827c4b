package ros

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	// maxHeaderSize bounds connection headers read from the wire.
	maxHeaderSize = 1 << 20
	// maxFrameSize bounds request and response bodies; point clouds are large.
	maxFrameSize = 1 << 28
)

type header struct {
	key   string
	value string
}

// writeConnectionHeader writes a TCPROS connection header: the total size
// followed by length prefixed `key=value` fields, all little-endian.
func writeConnectionHeader(headers []header, w io.Writer) error {
	var body bytes.Buffer
	for _, h := range headers {
		field := h.key + "=" + h.value
		if err := binary.Write(&body, binary.LittleEndian, uint32(len(field))); err != nil {
			return err
		}
		body.WriteString(field)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(body.Len())); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// readConnectionHeader reads a header written by writeConnectionHeader.
func readConnectionHeader(r io.Reader) ([]header, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size > maxHeaderSize {
		return nil, errors.Errorf("connection header of %d bytes is too large", size)
	}
	body := make([]byte, int(size))
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	var headers []header
	reader := bytes.NewReader(body)
	for reader.Len() > 0 {
		var fieldSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &fieldSize); err != nil {
			return nil, err
		}
		if int(fieldSize) > reader.Len() {
			return nil, errors.New("connection header field overruns header")
		}
		field := make([]byte, int(fieldSize))
		if _, err := io.ReadFull(reader, field); err != nil {
			return nil, err
		}
		idx := strings.Index(string(field), "=")
		if idx < 0 {
			return nil, errors.Errorf("malformed connection header field %q", string(field))
		}
		headers = append(headers, header{string(field[:idx]), string(field[idx+1:])})
	}
	return headers, nil
}

func headerMap(headers []header) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.key] = h.value
	}
	return m
}

// writeFrame writes body prefixed with its little-endian length.
func writeFrame(w io.Writer, body []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(body))); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// readFrame reads a body written by writeFrame.
func readFrame(r io.Reader) ([]byte, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size > maxFrameSize {
		return nil, errors.Errorf("frame of %d bytes is too large", size)
	}
	body := make([]byte, int(size))
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}
