package codec

import (
	"bytes"
	"encoding/json"
)

// Message is the decoded wire form of any JSON-RPC entity read off the
// agent's stdout: a request, a response, an error response, or a
// notification. Which one it is follows from the populated fields.
type Message struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

func (m *Message) IsRequest() bool      { return m.ID != nil && m.Method != "" }
func (m *Message) IsResponse() bool     { return m.ID != nil && m.Method == "" }
func (m *Message) IsNotification() bool { return m.ID == nil && m.Method != "" }

// Framer turns a raw byte stream into discrete JSON-RPC messages and
// serializes outgoing messages into the same newline-delimited wire format.
// A Framer belongs to one connection and is not safe for concurrent Feed.
type Framer struct {
	buf bytes.Buffer
}

func NewFramer() *Framer {
	return &Framer{}
}

// Feed appends chunk to the internal buffer, splits on newlines and parses
// each complete line. The trailing incomplete segment stays buffered until
// the next chunk. Lines that are not valid JSON, or that are valid JSON but
// not a JSON-RPC envelope, are skipped: the agent may interleave plain log
// output on the same stream, and that must not abort the connection.
func (f *Framer) Feed(chunk []byte) []Message {
	f.buf.Write(chunk)

	var msgs []Message
	for {
		data := f.buf.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSpace(data[:i])
		// consume the line plus terminator before parsing; the buffer
		// must not retain delivered data
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		f.buf.Next(i + 1)

		if len(lineCopy) == 0 {
			continue
		}
		var msg Message
		if err := json.Unmarshal(lineCopy, &msg); err != nil {
			continue
		}
		if msg.ID == nil && msg.Method == "" && msg.JSONRPC == "" {
			// valid JSON that is not a JSON-RPC shape
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// Serialize JSON-encodes msg and appends the single newline terminator.
func (f *Framer) Serialize(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// IDAsInt64 converts a decoded JSON-RPC id into an int64. Ids issued by
// this module are integers, but json.Unmarshal hands them back as float64.
func IDAsInt64(id any) (int64, bool) {
	switch v := id.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
