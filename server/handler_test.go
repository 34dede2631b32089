// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type echoService struct{}

type EchoArgs struct {
	Message string `json:"message"`
}

type EchoReply struct {
	Message string `json:"message"`
}

func (*echoService) Echo(_ *http.Request, args *EchoArgs, reply *EchoReply) error {
	reply.Message = args.Message
	return nil
}

func post(t *testing.T, h http.Handler, body string) string {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	b, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return string(b)
}

func TestJSONRPCHandler(t *testing.T) {
	require := require.New(t)
	h, err := NewJSONRPCHandler(&echoService{}, "echo")
	require.NoError(err)

	resp := post(t, h, `{"jsonrpc":"2.0","id":1,"method":"echo.echo","params":{"message":"hi"}}`)
	require.Contains(resp, `"message":"hi"`)

	large := strings.Repeat("a", MaxRequestBytes)
	resp = post(t, h, `{"jsonrpc":"2.0","id":1,"method":"echo.echo","params":{"message":"`+large+`"}}`)
	require.Contains(resp, `"error"`)
	require.NotContains(resp, `"result"`)
}
