package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
)

func TestParseJSONRPCRequest(t *testing.T) {
	requestData := JSONRPCRequest{
		JSONRPC: JsonRPCVersion,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"generate_jr_web_test"}`),
		ID:      1,
	}
	buf := new(bytes.Buffer)
	err := json.NewEncoder(buf).Encode(requestData)
	if err != nil {
		t.Fatalf("failed to encode request: %v", err)
	}
	r := httptest.NewRequest("POST", "/api/mcp", buf)

	parsedReq, err := ParseJSONRPCRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsedReq.Method != requestData.Method {
		t.Errorf("expected method %s, got %s", requestData.Method, parsedReq.Method)
	}
	if parsedReq.JSONRPC != JsonRPCVersion {
		t.Errorf("expected jsonrpc %s, got %s", JsonRPCVersion, parsedReq.JSONRPC)
	}
}

func TestParseJSONRPCRequest_BadVersion(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/mcp", bytes.NewBufferString(`{"jsonrpc":"1.0","method":"ping","id":1}`))
	if _, err := ParseJSONRPCRequest(r); err == nil {
		t.Error("expected error for wrong jsonrpc version")
	}
}

func TestParseJSONRPCRequest_MissingMethod(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/mcp", bytes.NewBufferString(`{"jsonrpc":"2.0","id":1}`))
	if _, err := ParseJSONRPCRequest(r); err == nil {
		t.Error("expected error for missing method")
	}
}

func TestWriteJSONRPCResponse(t *testing.T) {
	recorder := httptest.NewRecorder()
	WriteJSONRPCResponse(recorder, map[string]string{"result": "ok"}, 42)

	res := recorder.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	var response JSONRPCResponse
	err := json.Unmarshal(body, &response)
	if err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.JSONRPC != JsonRPCVersion {
		t.Errorf("expected jsonrpc %s, got %s", JsonRPCVersion, response.JSONRPC)
	}
	if response.ID.(float64) != 42 {
		t.Errorf("expected 42, got %v", response.ID)
	}
	if response.Result == nil {
		t.Errorf("expected result, got nil")
	}
}

func TestWriteJSONRPCError(t *testing.T) {
	recorder := httptest.NewRecorder()
	WriteJSONRPCError(recorder, MethodNotFound, "", "abc")

	res := recorder.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	var response JSONRPCResponse
	err := json.Unmarshal(body, &response)
	if err != nil {
		t.Fatalf("failed to unmarshal error response: %v", err)
	}

	if response.Error == nil {
		t.Fatal("expected error, got nil")
	}
	if response.Error.Code != MethodNotFound {
		t.Errorf("expected code %d, got %d", MethodNotFound, response.Error.Code)
	}
	// empty message falls back to the standard text
	if response.Error.Message != "Method not found" {
		t.Errorf("unexpected message %q", response.Error.Message)
	}
}

func TestNewErrorResponseDefaultMessage(t *testing.T) {
	resp := NewErrorResponse(9, InvalidParams, "")
	if resp.Error.Message != "Invalid params" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
	resp = NewErrorResponse(9, InvalidParams, "bad topics")
	if resp.Error.Message != "bad topics" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
}
