package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBearer(t *testing.T) {
	req, _ := http.NewRequest("GET", "/", nil)
	assert.Equal(t, "", parseBearer(req))

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Equal(t, "", parseBearer(req))

	req.Header.Set("Authorization", "Bearer abc-123")
	assert.Equal(t, "abc-123", parseBearer(req))

	req.Header.Set("Authorization", "Bearer   padded  ")
	assert.Equal(t, "padded", parseBearer(req))
}
