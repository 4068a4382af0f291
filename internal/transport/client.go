package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls the registry service over gRPC. It implements registry.Resolver.
type Client struct {
	conn    grpc.ClientConnInterface
	metrics Metrics
	timeout time.Duration
}

// Dial connects to the registry at target without transport security.
func Dial(target string, metrics Metrics, timeout time.Duration) (*Client, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("dial registry %s: %w", target, err)
	}
	client, err := NewClient(conn, metrics, timeout)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return client, conn, nil
}

// NewClient wraps conn. A positive timeout bounds every call.
func NewClient(conn grpc.ClientConnInterface, metrics Metrics, timeout time.Duration) (*Client, error) {
	if conn == nil {
		return nil, errors.New("grpc connection is required")
	}
	if metrics == nil {
		return nil, errors.New("client metrics is required")
	}
	return &Client{conn: conn, metrics: metrics, timeout: timeout}, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(method, err, started)
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	err = c.conn.Invoke(ctx, fullMethod(method), req, resp, grpc.CallContentSubtype(CodecName))
	return err
}

// Resolve fetches a batch and its timeline. Errors are lookup errors:
// not-found when the registry answered NotFound, transport-failure otherwise.
func (c *Client) Resolve(ctx context.Context, id model.BatchID) (*model.Provenance, error) {
	var resp ResolveBatchResponse
	if err := c.invoke(ctx, "ResolveBatch", &ResolveBatchRequest{BatchID: string(id)}, &resp); err != nil {
		return nil, lookupFromStatus(id, err)
	}
	return &resp.Provenance, nil
}

// RecordScan reports a verification attempt.
func (c *Client) RecordScan(ctx context.Context, rec model.ScanRecord) error {
	req := &RecordScanRequest{
		BatchID:   string(rec.BatchID),
		Source:    rec.Source,
		Outcome:   rec.Outcome,
		Verified:  rec.Verified,
		ScannedAt: rec.ScannedAt,
	}
	if err := c.invoke(ctx, "RecordScan", req, &RecordScanResponse{}); err != nil {
		return fmt.Errorf("record scan of %s: %w", rec.BatchID, err)
	}
	return nil
}

// ExportLabel fetches the rendered label of a batch.
func (c *Client) ExportLabel(ctx context.Context, req *ExportLabelRequest) (*ExportLabelResponse, error) {
	var resp ExportLabelResponse
	if err := c.invoke(ctx, "ExportLabel", req, &resp); err != nil {
		return nil, fmt.Errorf("export label of %s: %w", req.BatchID, err)
	}
	return &resp, nil
}

// RegisterBatch registers a batch.
func (c *Client) RegisterBatch(ctx context.Context, req *RegisterBatchRequest) (*RegisterBatchResponse, error) {
	var resp RegisterBatchResponse
	if err := c.invoke(ctx, "RegisterBatch", req, &resp); err != nil {
		return nil, fmt.Errorf("register batch: %w", err)
	}
	return &resp, nil
}
