package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"snapfix/types"
)

// maxErrorBody caps how much of a failed response is kept on the error
const maxErrorBody = 512

// doJSONRequest performs a request against the backend and decodes the JSON
// response into result. Transport failures and non-200 statuses come back as
// *FetchError, undecodable bodies as *ParseError.
func (c *Client) doJSONRequest(ctx context.Context, method, path string, result any) error {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return &FetchError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &FetchError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// recordList decodes a JSON object of filename -> record while keeping the
// key order of the document, which a Go map would lose.
type recordList []types.AnalysisRecord

func (l *recordList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("analyses must be a JSON object keyed by filename")
	}

	records := make([]types.AnalysisRecord, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		filename, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}

		var rec types.AnalysisRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("record %q: %w", filename, err)
		}
		rec.Filename = filename

		// Repeated keys keep their first position and their last value.
		if i, seen := index[filename]; seen {
			records[i] = rec
			continue
		}
		index[filename] = len(records)
		records = append(records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = records
	return nil
}
