package socketrpc

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// JSON-RPC 2.0 Method Reference
//
// The socket RPC server exposes the bill store over a Unix domain
// socket. Read methods map 1:1 to model.ReadAPI; the write methods
// cover bookmark edits and notice resolution from the dashboard.
//
//   Method            Params                          Result
//   ──────────────    ─────────────────────────────   ─────────────────
//   TotalBillCount    {Filter: BillFilter}            int64
//   ListBills         {Limit: int, Filter: BillFilter} []Bill
//   GetBill           {ID: string}                    Bill
//   CountsByStatus    {Filter: BillFilter}            []StatusCount
//   ImpactByWeek      {Filter: BillFilter}            []WeekImpact
//   TopTopics         {Limit: int}                    []TopicCount
//   ListChambers      (none)                          []string
//   ActiveNotices     {Limit: int}                    []Notice
//   AddBookmark       {BillID: string, Note: string}  null
//   RemoveBookmark    {BillID: string}                null
//   ListBookmarks     (none)                          []Bookmark
//   ResolveNotice     {ID: string}                    null
//   ExecuteQuery      {Query: string}                 []map[string]any
//
// BillFilter: {Chamber, Status, Topic, Search} — empty string means no
// filter on that dimension. Methods with optional params accept empty
// or null params gracefully.
//
// Error codes follow JSON-RPC 2.0:
//   -32700  Parse error (malformed JSON)
//   -32601  Method not found
//   -32602  Invalid params
//   -32603  Internal error (marshal failure)
//   -32000  Application error (query failure)
//   -32004  Not found
const codeNotFound = -32004

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string { return e.Message }

// DefaultSocketPath returns the default Unix socket path.
// It prefers $XDG_RUNTIME_DIR/gavel/gavel.sock, falling back to
// ~/.local/state/gavel/gavel.sock.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "gavel", "gavel.sock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/gavel.sock"
	}
	return filepath.Join(home, ".local", "state", "gavel", "gavel.sock")
}
