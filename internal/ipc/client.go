package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Submit enqueues a download request.
func (c *Client) Submit(req SubmitRequest) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.client.Call("Steamfetch.Submit", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel stops a job by ID.
func (c *Client) Cancel(id string) (*CancelResponse, error) {
	var resp CancelResponse
	if err := c.client.Call("Steamfetch.Cancel", CancelRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status and scheduler snapshot.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Steamfetch.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueueRemove drops a pending job by its one-based position.
func (c *Client) QueueRemove(position int) (*QueueRemoveResponse, error) {
	var resp QueueRemoveResponse
	if err := c.client.Call("Steamfetch.QueueRemove", QueueRemoveRequest{Position: position}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueueMove reorders the pending queue.
func (c *Client) QueueMove(from, to int) (*QueueMoveResponse, error) {
	var resp QueueMoveResponse
	if err := c.client.Call("Steamfetch.QueueMove", QueueMoveRequest{From: from, To: to}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop processing downloads.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Steamfetch.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
