package socketrpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gavelhq/gavel/internal/model"
)

// Client implements Backend over a Unix domain socket using JSON-RPC 2.0.
type Client struct {
	conn    net.Conn
	mu      sync.Mutex
	nextID  int
	scanner *bufio.Scanner
	encoder *json.Encoder
}

// Dial connects to the socket RPC server at the given path.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("socketrpc: dial: %w", err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, scannerInitBufSize), scannerMaxTokenSize)
	return &Client{
		conn:    conn,
		scanner: scanner,
		encoder: json.NewEncoder(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// call performs a JSON-RPC call and unmarshals the result into dest.
func (c *Client) call(method string, params interface{}, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID

	paramsData, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("socketrpc: marshal params: %w", err)
	}

	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  paramsData,
	}

	c.conn.SetDeadline(time.Now().Add(30 * time.Second))
	defer c.conn.SetDeadline(time.Time{})

	if err := c.encoder.Encode(req); err != nil {
		return fmt.Errorf("socketrpc: send: %w", err)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return fmt.Errorf("socketrpc: read: %w", err)
		}
		return fmt.Errorf("socketrpc: connection closed")
	}

	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return fmt.Errorf("socketrpc: unmarshal response: %w", err)
	}

	if resp.Error != nil {
		if resp.Error.Code == codeNotFound {
			return model.ErrNotFound
		}
		return resp.Error
	}

	if dest != nil {
		if err := json.Unmarshal(resp.Result, dest); err != nil {
			return fmt.Errorf("socketrpc: unmarshal result: %w", err)
		}
	}
	return nil
}

func (c *Client) TotalBillCount(f model.BillFilter) (int64, error) {
	var result int64
	err := c.call("TotalBillCount", map[string]interface{}{"Filter": f}, &result)
	return result, err
}

func (c *Client) ListBills(limit int, f model.BillFilter) ([]model.Bill, error) {
	var result []model.Bill
	err := c.call("ListBills", map[string]interface{}{"Limit": limit, "Filter": f}, &result)
	return result, err
}

func (c *Client) GetBill(id string) (*model.Bill, error) {
	var result model.Bill
	if err := c.call("GetBill", map[string]interface{}{"ID": id}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CountsByStatus(f model.BillFilter) ([]model.StatusCount, error) {
	var result []model.StatusCount
	err := c.call("CountsByStatus", map[string]interface{}{"Filter": f}, &result)
	return result, err
}

func (c *Client) ImpactByWeek(f model.BillFilter) ([]model.WeekImpact, error) {
	var result []model.WeekImpact
	err := c.call("ImpactByWeek", map[string]interface{}{"Filter": f}, &result)
	return result, err
}

func (c *Client) TopTopics(limit int) ([]model.TopicCount, error) {
	var result []model.TopicCount
	err := c.call("TopTopics", map[string]interface{}{"Limit": limit}, &result)
	return result, err
}

func (c *Client) ListChambers() ([]string, error) {
	var result []string
	err := c.call("ListChambers", map[string]interface{}{}, &result)
	return result, err
}

func (c *Client) ActiveNotices(limit int) ([]model.Notice, error) {
	var result []model.Notice
	err := c.call("ActiveNotices", map[string]interface{}{"Limit": limit}, &result)
	return result, err
}

func (c *Client) AddBookmark(billID, note string) error {
	return c.call("AddBookmark", map[string]interface{}{"BillID": billID, "Note": note}, nil)
}

func (c *Client) RemoveBookmark(billID string) error {
	return c.call("RemoveBookmark", map[string]interface{}{"BillID": billID}, nil)
}

func (c *Client) ListBookmarks() ([]model.Bookmark, error) {
	var result []model.Bookmark
	err := c.call("ListBookmarks", map[string]interface{}{}, &result)
	return result, err
}

func (c *Client) ResolveNotice(id string) error {
	return c.call("ResolveNotice", map[string]interface{}{"ID": id}, nil)
}

func (c *Client) ExecuteQuery(query string) ([]map[string]interface{}, error) {
	var result []map[string]interface{}
	err := c.call("ExecuteQuery", map[string]interface{}{"Query": query}, &result)
	return result, err
}
