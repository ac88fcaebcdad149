package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	apperrors "learnobs/internal/platform/errors"
)

const defaultFailure = "Request failed"

// Caller is the narrow contract adapters depend on.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, payload any) (Envelope, error)
}

// Envelope is a successful service response: {success: true, ...payload}.
type Envelope struct {
	Status int
	Raw    []byte
}

// Decode unmarshals the whole envelope into v.
func (e Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Raw, v); err != nil {
		return apperrors.Network(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Get reads a single field using a gjson path.
func (e Envelope) Get(path string) gjson.Result {
	return gjson.GetBytes(e.Raw, path)
}

// File is one binary part of a multipart request.
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Multipart payloads are sent as multipart/form-data instead of JSON.
type Multipart struct {
	Fields map[string]string
	Files  []File
}

type Client struct {
	base string
	http *http.Client
	log  logrus.FieldLogger
}

func New(base string, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: httpClient,
		log:  log.WithField("component", "gateway"),
	}
}

// Call performs exactly one request. Every failure is an *apperrors.Error of
// kind Network or Application.
func (c *Client) Call(ctx context.Context, method, endpoint string, payload any) (Envelope, error) {
	entry := c.log.WithFields(logrus.Fields{"method": method, "endpoint": endpoint})

	req, err := c.newRequest(ctx, method, endpoint, payload)
	if err != nil {
		entry.WithError(err).Warn("build request")
		return Envelope{}, apperrors.Network(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).WithField("kind", apperrors.KindNetwork.String()).Warn("transport failure")
		return Envelope{}, apperrors.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	entry = entry.WithField("status", resp.StatusCode)
	if err != nil {
		entry.WithError(err).WithField("kind", apperrors.KindNetwork.String()).Warn("read body")
		return Envelope{}, apperrors.Network(err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	isEnvelope := gjson.ValidBytes(raw) && gjson.ParseBytes(raw).IsObject()
	if !isEnvelope {
		err := fmt.Errorf("%s %s: status %d with non-envelope body", method, endpoint, resp.StatusCode)
		entry.WithField("kind", apperrors.KindNetwork.String()).Warn("undecodable response")
		return Envelope{}, apperrors.Network(err)
	}

	success := gjson.GetBytes(raw, "success")
	message := gjson.GetBytes(raw, "message").String()
	switch {
	case ok && success.Bool():
		entry.Debug("call succeeded")
		return Envelope{Status: resp.StatusCode, Raw: raw}, nil
	case success.Exists() && !success.Bool() && (ok || message != ""):
		if message == "" {
			message = defaultFailure
		}
		entry.WithField("kind", apperrors.KindApplication.String()).WithField("message", message).Info("service reported failure")
		return Envelope{}, apperrors.Application(message)
	case ok:
		entry.WithField("kind", apperrors.KindApplication.String()).Info("response without success flag")
		if message == "" {
			message = defaultFailure
		}
		return Envelope{}, apperrors.Application(message)
	default:
		entry.WithField("kind", apperrors.KindNetwork.String()).Warn("non-success status")
		return Envelope{}, apperrors.Network(fmt.Errorf("%s %s: status %d", method, endpoint, resp.StatusCode))
	}
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, payload any) (*http.Request, error) {
	target := c.base + "/" + strings.TrimLeft(endpoint, "/")
	var (
		body        io.Reader
		contentType string
	)
	switch p := payload.(type) {
	case nil:
	case Multipart:
		buf, ct, err := encodeMultipart(p)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case *Multipart:
		buf, ct, err := encodeMultipart(*p)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func encodeMultipart(p Multipart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, name := range sortedKeys(p.Fields) {
		if err := w.WriteField(name, p.Fields[name]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}
	for _, f := range p.Files {
		if f.Field == "" {
			return nil, "", errors.New("multipart file without field name")
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// Path joins an endpoint with query parameters, skipping empty values.
func Path(endpoint string, query map[string]string) string {
	values := url.Values{}
	for _, k := range sortedKeys(query) {
		if query[k] == "" {
			continue
		}
		values.Set(k, query[k])
	}
	if len(values) == 0 {
		return endpoint
	}
	return endpoint + "?" + values.Encode()
}

// Segment escapes a single path segment such as an id.
func Segment(endpoint, id string) string {
	return strings.TrimRight(endpoint, "/") + "/" + url.PathEscape(id)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
