package api

import (
	"context"
)

// Backend endpoint paths.
const (
	PathStatus          = "/api/kb/status"
	PathUploadStatement = "/api/upload-statement"
	PathAnalyzeFreeform = "/api/analyze-freeform"
	PathAnalyze         = "/api/analyze"
	PathAdvise          = "/api/advise"
	PathKBInit          = "/api/kb/init"
	PathKBSearch        = "/api/kb/search"
	PathKBAdvanced      = "/api/kb/advanced"

	StatementField       = "statement"
	StatementContentType = "application/pdf"
)

type (
	FreeformRequest struct {
		Text string `json:"text"`
	}

	AnalyzeRequest struct {
		Income   float64 `json:"income"`
		Expenses []any   `json:"expenses"`
	}

	AdviseRequest struct {
		Income   float64 `json:"income"`
		Expenses []any   `json:"expenses"`
		Goals    []any   `json:"goals"`
	}

	SearchRequest struct {
		Query string `json:"query"`
		TopK  int    `json:"topK"`
	}
)

// Status probes backend reachability. Concurrent probes share one request.
func (c *Client) Status(ctx context.Context) (*Response, error) {
	v, err, _ := c.probes.Do(PathStatus, func() (any, error) {
		return c.Get(context.WithoutCancel(ctx), PathStatus)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Response), nil
}

// UploadStatement sends a PDF statement for parsing.
func (c *Client) UploadStatement(ctx context.Context, filename string, data []byte) (*Response, error) {
	return c.Post(ctx, PathUploadStatement, nil, &File{
		Field:       StatementField,
		Name:        filename,
		ContentType: StatementContentType,
		Data:        data,
	})
}

func (c *Client) AnalyzeFreeform(ctx context.Context, text string) (*Response, error) {
	return c.Post(ctx, PathAnalyzeFreeform, FreeformRequest{Text: text}, nil)
}

func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*Response, error) {
	if req.Expenses == nil {
		req.Expenses = []any{}
	}
	return c.Post(ctx, PathAnalyze, req, nil)
}

func (c *Client) Advise(ctx context.Context, req AdviseRequest) (*Response, error) {
	if req.Expenses == nil {
		req.Expenses = []any{}
	}
	if req.Goals == nil {
		req.Goals = []any{}
	}
	return c.Post(ctx, PathAdvise, req, nil)
}

func (c *Client) KBInit(ctx context.Context) (*Response, error) {
	return c.Post(ctx, PathKBInit, nil, nil)
}

// KBSearch queries the knowledge base, using the advanced endpoint when asked.
func (c *Client) KBSearch(ctx context.Context, req SearchRequest, advanced bool) (*Response, error) {
	path := PathKBSearch
	if advanced {
		path = PathKBAdvanced
	}
	return c.Post(ctx, path, req, nil)
}
