package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeServerFrame writes one Content-Length-framed JSON message to conn,
// standing in for the language server side of the duplex.
func writeServerFrame(t *testing.T, conn net.Conn, v any) {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	_, err = fmt.Fprintf(conn, "Content-Length: %d\r\n\r\n%s", len(body), body)
	require.NoError(t, err)
}

// readServerFrame reads one Content-Length-framed JSON message from br,
// standing in for the language server reading our outgoing call.
func readServerFrame(t *testing.T, br *bufio.Reader) Call {
	t.Helper()
	n, err := readHeaders(br)
	require.NoError(t, err)
	body := make([]byte, n)
	_, err = readFull(br, body)
	require.NoError(t, err)
	var call Call
	require.NoError(t, json.Unmarshal(body, &call))
	return call
}

func readFull(br *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := br.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func TestTransportNotificationFromServer(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	tr := NewTransport(client, client)

	go writeServerFrame(t, server, Output{JSONRPC: "2.0", Method: "window/logMessage", Params: json.RawMessage(`{"message":"hi"}`)})

	select {
	case out := <-tr.Requests():
		assert.Equal(t, "window/logMessage", out.Method)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestTransportCallRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	tr := NewTransport(client, client)
	serverReader := bufio.NewReader(server)

	done := make(chan Output, 1)
	go func() {
		out, err := tr.Call(context.Background(), "initialize", map[string]any{"processId": 1})
		require.NoError(t, err)
		done <- out
	}()

	call := readServerFrame(t, serverReader)
	assert.Equal(t, "initialize", call.Method)
	require.NotNil(t, call.ID)

	writeServerFrame(t, server, Output{JSONRPC: "2.0", ID: call.ID, Result: json.RawMessage(`{"capabilities":{}}`)})

	select {
	case out := <-done:
		assert.JSONEq(t, `{"capabilities":{}}`, string(out.Result))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for call result")
	}
}

func TestTransportCallCanceledByContext(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	tr := NewTransport(client, client)
	serverReader := bufio.NewReader(server)
	go readServerFrame(t, serverReader)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tr.Call(ctx, "slowMethod", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransportNotifySendsNoID(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	tr := NewTransport(client, client)
	serverReader := bufio.NewReader(server)

	go func() {
		require.NoError(t, tr.Notify("textDocument/didOpen", map[string]any{"ok": true}))
	}()

	call := readServerFrame(t, serverReader)
	assert.Equal(t, "textDocument/didOpen", call.Method)
	assert.Nil(t, call.ID)
}

func TestReplySlabTakeIsOnceOnly(t *testing.T) {
	slab := newReplySlab()
	inserted := slab.insert(7)

	taken, ok := slab.take(7)
	require.True(t, ok)
	assert.Equal(t, inserted, taken)

	_, ok = slab.take(7)
	assert.False(t, ok)
}

func TestReplySlabDropRemovesUndeliveredEntry(t *testing.T) {
	slab := newReplySlab()
	slab.insert(42)
	slab.drop(42)

	_, ok := slab.take(42)
	assert.False(t, ok)
}
