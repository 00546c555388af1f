package node

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Endpoint scopes a base RPC URL to a worker, e.g. http://127.0.0.1:8545/1.
// A zero worker ID returns the base URL unchanged.
func Endpoint(base string, workerID int) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", fmt.Errorf("rpc url is required")
	}
	if workerID < 0 {
		return "", fmt.Errorf("worker id must not be negative: %d", workerID)
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse rpc url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid rpc url: %s", base)
	}
	if workerID == 0 {
		return u.String(), nil
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strconv.Itoa(workerID)
	return u.String(), nil
}

// LocalURL is the HTTP endpoint of a node listening on host:port.
func LocalURL(host string, port int) string {
	return fmt.Sprintf("http://%s:%d", host, port)
}
