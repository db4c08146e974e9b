package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swipectl/swipectl/actions"
	"github.com/swipectl/swipectl/config"
	"github.com/swipectl/swipectl/dispatcher"
	"github.com/swipectl/swipectl/ipc"
)

func newTestServer(t *testing.T, settings *config.Settings) (*Server, *httptest.Server) {
	t.Helper()

	manager := ipc.NewManagerWithDial(func() (*ipc.Connection, error) {
		return nil, errors.New("no socket")
	})
	registry := actions.NewRegistry(settings.Actions, settings.EnabledActionKinds, manager)
	d := dispatcher.New(nil, registry, settings.Threshold, settings.InvertX, settings.InvertY)

	s := New(d, settings)
	ts := httptest.NewServer(s.Handler(false))
	t.Cleanup(ts.Close)

	return s, ts
}

func rpcCall(t *testing.T, url string, body string) JSONRPCResponse {
	t.Helper()

	resp, err := http.Post(url+"/rpc", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	return rpcResp
}

func TestServer_Status(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	resp := rpcCall(t, ts.URL, `{"jsonrpc":"2.0","method":"status","id":1}`)
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, Version, result["version"])
	assert.NotEmpty(t, result["instanceId"])
	assert.EqualValues(t, os.Getpid(), result["pid"])
}

func TestServer_Config(t *testing.T) {
	settings := config.Default()
	settings.Threshold = 12.5
	_, ts := newTestServer(t, settings)

	resp := rpcCall(t, ts.URL, `{"jsonrpc":"2.0","method":"config","id":2}`)
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, 12.5, result["threshold"])

	configured := result["actions"].(map[string]interface{})
	left := configured["three-finger-swipe-left"].([]interface{})
	assert.Equal(t, "ipc:workspace prev", left[0])
}

func TestServer_Trigger(t *testing.T) {
	target := filepath.Join(t.TempDir(), "triggered")

	settings := config.Default()
	settings.EnabledActionKinds = []string{"command"}
	settings.Actions = map[string][]actions.Spec{
		"four-finger-swipe-up": {{Kind: "command", Command: "touch " + target}},
	}
	_, ts := newTestServer(t, settings)

	resp := rpcCall(t, ts.URL, `{"jsonrpc":"2.0","method":"trigger","params":{"event":"four-finger-swipe-up"},"id":3}`)
	require.Nil(t, resp.Error)

	_, err := os.Stat(target)
	assert.NoError(t, err, "expected the trigger to have executed the action")
}

func TestServer_Trigger_UnknownEvent(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	resp := rpcCall(t, ts.URL, `{"jsonrpc":"2.0","method":"trigger","params":{"event":"two-finger-swipe-up"},"id":4}`)
	require.NotNil(t, resp.Error)
}

func TestServer_InvalidRequests(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"wrong version", `{"jsonrpc":"1.0","method":"status","id":1}`},
		{"missing id", `{"jsonrpc":"2.0","method":"status"}`},
		{"missing method", `{"jsonrpc":"2.0","id":1}`},
		{"unknown method", `{"jsonrpc":"2.0","method":"nope","id":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := rpcCall(t, ts.URL, tt.body)
			assert.NotNil(t, resp.Error)
		})
	}
}

func TestServer_Banner(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var banner bytes.Buffer
	_, err = banner.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, banner.String(), "swipectl")
}

func TestServer_WebSocket(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "status",
		ID:      1,
	}))

	var resp JSONRPCResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, Version, result["version"])
}
