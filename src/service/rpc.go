package service

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)

// MethodSetGossip switches dial-on-discovery on or off.
const MethodSetGossip = "set_gossip"

// RPCRequest ...
type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// RPCError ...
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCResponse ...
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// SetGossipParams ...
type SetGossipParams struct {
	Value *bool `json:"value"`
}

// HandleRPC serves JSON-RPC 2.0 calls posted to the root path.
func (s *Service) HandleRPC(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RPCRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.WithError(err).Debug("Malformed RPC request")
		writeRPC(w, nil, nil, &RPCError{Code: CodeParseError, Message: "Parse error"})
		return
	}

	if req.JSONRPC != "2.0" || req.Method == "" {
		writeRPC(w, req.ID, nil, &RPCError{Code: CodeInvalidRequest, Message: "Invalid request"})
		return
	}

	switch req.Method {
	case MethodSetGossip:
		result, rpcErr := s.setGossip(req.Params)
		writeRPC(w, req.ID, result, rpcErr)
	default:
		writeRPC(w, req.ID, nil, &RPCError{Code: CodeMethodNotFound, Message: "Method not found"})
	}
}

func (s *Service) setGossip(raw json.RawMessage) (interface{}, *RPCError) {
	invalid := &RPCError{Code: CodeInvalidParams, Message: "Invalid params"}

	if len(raw) == 0 {
		return nil, invalid
	}

	var params SetGossipParams

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&params); err != nil || params.Value == nil {
		return nil, invalid
	}

	s.node.GossipToggle().Set(*params.Value)

	s.logger.WithField("value", *params.Value).Info("Gossip toggled")

	return true, nil
}

func writeRPC(w http.ResponseWriter, id json.RawMessage, result interface{}, rpcErr *RPCError) {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(RPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		Error:   rpcErr,
		ID:      id,
	})
}
