package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurlHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr string
		want string
	}{
		{addr: ":8080", want: "localhost:8080"},
		{addr: "0.0.0.0:8080", want: "localhost:8080"},
		{addr: "[::]:9090", want: "localhost:9090"},
		{addr: "127.0.0.1:8080", want: "127.0.0.1:8080"},
		{addr: "[::1]:8080", want: "[::1]:8080"},
		{addr: "docs.internal:80", want: "docs.internal:80"},
		{addr: "  :7070 ", want: "localhost:7070"},
		{addr: "", want: "localhost:8080"},
		{addr: "   ", want: "localhost:8080"},
		// No port at all: nothing sensible to rewrite, pass through.
		{addr: "localhost", want: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, curlHost(tt.addr))
		})
	}
}
