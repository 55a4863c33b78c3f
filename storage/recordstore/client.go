// Package recordstore implements the record stores on top of a remote record-CRUD service.
//
// Every call is a JSON request on `<baseURL>/projects/<projectID>/tables/<table>/records[...]`;
// every response is an envelope reporting `success` with a `message`, plus either `data` (fetch, get)
// or per-record `results` (create, update, delete). Calls are never retried.
package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

const (
	headerProjectID = "X-Project-Id"
	headerAPIKey    = "X-Api-Key"
)

type (
	Options struct {
		BaseURL   string
		ProjectID string
		PublicKey string
		Timeout   time.Duration
	}

	// Client speaks the record API. It is safe for concurrent use.
	Client struct {
		baseURL   string
		projectID string
		publicKey string
		http      *rest.Client
	}

	Field struct {
		Field struct {
			Name string `json:"Name"`
		} `json:"field"`
	}

	Where struct {
		FieldName string        `json:"FieldName"`
		Operator  string        `json:"Operator"`
		Values    []interface{} `json:"Values"`
	}

	OrderBy struct {
		FieldName string `json:"fieldName"`
		SortType  string `json:"sorttype"`
	}

	// FetchParams selects records: the fields to return, AND-ed conditions & ordering.
	FetchParams struct {
		Fields  []Field   `json:"fields,omitempty"`
		Where   []Where   `json:"where,omitempty"`
		OrderBy []OrderBy `json:"orderBy,omitempty"`
	}

	envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Results []result        `json:"results"`
	}

	result struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
)

func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("record store base URL is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, errors.Wrap(err, "parsing record store base URL")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimSuffix(opts.BaseURL, "/"),
		projectID: opts.ProjectID,
		publicKey: opts.PublicKey,
		http:      &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
	}, nil
}

func Fields(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i].Field.Name = name
	}
	return fields
}

func (c *Client) recordsURL(table string, id ...int) string {
	u := c.baseURL + "/projects/" + url.PathEscape(c.projectID) + "/tables/" + url.PathEscape(table) + "/records"
	if len(id) > 0 {
		u += "/" + strconv.Itoa(id[0])
	}
	return u
}

// do sends the request and decodes the envelope. Transport errors, non-2xx statuses, undecodable bodies
// and `success: false` are all remote failures.
func (c *Client) do(ctx context.Context, op string, method rest.Method, u string, body interface{}) (envelope, error) {
	req := rest.Request{
		Method:  method,
		BaseURL: u,
		Headers: map[string]string{
			"Accept":        "application/json",
			headerProjectID: c.projectID,
			headerAPIKey:    c.publicKey,
		},
	}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return envelope{}, errors.Wrapf(err, "%s: encoding request", op)
		}
		req.Body = b
		req.Headers["Content-Type"] = "application/json"
	}

	hreq, err := rest.BuildRequestObject(req)
	if err != nil {
		return envelope{}, core.NewRemoteError(op, err)
	}
	hres, err := c.http.MakeRequest(hreq.WithContext(ctx))
	if err != nil {
		return envelope{}, core.NewRemoteError(op, err)
	}
	resp, err := rest.BuildResponse(hres)
	if err != nil {
		return envelope{}, core.NewRemoteError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return envelope{}, core.NewRemoteError(op, errors.Errorf("unexpected status %d", resp.StatusCode))
	}

	var env envelope
	if err = json.Unmarshal([]byte(resp.Body), &env); err != nil {
		return envelope{}, core.NewRemoteError(op, errors.Wrap(err, "decoding response"))
	}
	if !env.Success {
		return envelope{}, core.NewRemoteError(op, errors.New(env.Message))
	}
	return env, nil
}

// Fetch decodes the matching records into `dest` (a pointer to a slice).
func (c *Client) Fetch(ctx context.Context, table string, params FetchParams, dest interface{}) error {
	env, err := c.do(ctx, "fetchRecords", rest.Post, c.recordsURL(table)+"/fetch", params)
	if err != nil {
		return err
	}
	if isNull(env.Data) {
		return nil
	}
	if err = json.Unmarshal(env.Data, dest); err != nil {
		return core.NewRemoteError("fetchRecords", errors.Wrap(err, "decoding records"))
	}
	return nil
}

// Get decodes the record having `id` into `dest`, reporting whether it exists.
func (c *Client) Get(ctx context.Context, table string, id int, dest interface{}) (bool, error) {
	env, err := c.do(ctx, "getRecordById", rest.Get, c.recordsURL(table, id), nil)
	if err != nil {
		return false, err
	}
	if isNull(env.Data) {
		return false, nil
	}
	if err = json.Unmarshal(env.Data, dest); err != nil {
		return false, core.NewRemoteError("getRecordById", errors.Wrap(err, "decoding record"))
	}
	return true, nil
}

// Create stores `record` and decodes the created record into `dest`.
func (c *Client) Create(ctx context.Context, table string, record, dest interface{}) error {
	return c.write(ctx, "createRecord", rest.Post, table, record, dest)
}

// Update replaces the record (identified by its `Id`) and decodes the stored record into `dest`.
func (c *Client) Update(ctx context.Context, table string, record, dest interface{}) error {
	return c.write(ctx, "updateRecord", rest.Put, table, record, dest)
}

func (c *Client) write(ctx context.Context, op string, method rest.Method, table string, record, dest interface{}) error {
	body := map[string]interface{}{"records": []interface{}{record}}
	env, err := c.do(ctx, op, method, c.recordsURL(table), body)
	if err != nil {
		return err
	}
	res, err := single(op, env)
	if err != nil {
		return err
	}
	if isNull(res.Data) {
		return core.NewRemoteError(op, errors.New("no record data in response"))
	}
	if err = json.Unmarshal(res.Data, dest); err != nil {
		return core.NewRemoteError(op, errors.Wrap(err, "decoding record"))
	}
	return nil
}

// Delete deletes the record having `id`.
func (c *Client) Delete(ctx context.Context, table string, id int) error {
	body := map[string]interface{}{"RecordIds": []int{id}}
	env, err := c.do(ctx, "deleteRecord", rest.Delete, c.recordsURL(table), body)
	if err != nil {
		return err
	}
	if len(env.Results) == 0 {
		return nil
	}
	_, err = single("deleteRecord", env)
	return err
}

// single returns the one successful per-record result.
func single(op string, env envelope) (result, error) {
	for _, res := range env.Results {
		if !res.Success {
			return result{}, core.NewRemoteError(op, errors.New(res.Message))
		}
	}
	if len(env.Results) == 0 {
		return result{}, core.NewRemoteError(op, errors.New("no record in response"))
	}
	return env.Results[0], nil
}

func isNull(data json.RawMessage) bool {
	s := strings.TrimSpace(string(data))
	return s == "" || s == "null"
}
