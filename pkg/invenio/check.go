package invenio

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Document is a decoded JSON object returned by the repository.
type Document = map[string]any

// Check verifies that a completed response succeeded and decodes its JSON
// body. Every remote call in this package passes through here; no response
// is used unchecked.
//
// On a 2xx status the decoded body is returned (an object, an array, or nil
// for empty bodies such as 204). On any other status a *HTTPError is
// returned whose message embeds op and the body's "message" field. A body
// without that field, or a body that is not JSON at all, degrades to an
// empty server message rather than masking the status failure.
func Check(resp *http.Response, op string) (any, error) {
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Op:            op,
			StatusCode:    resp.StatusCode,
			ServerMessage: serverMessage(body),
		}
	}
	if readErr != nil {
		return nil, &TransportError{Op: op, Err: readErr}
	}
	if len(body) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decoding response while %s: %w", op, err)
	}
	return decoded, nil
}

// checkObject is Check for call sites whose contract is a JSON object.
func checkObject(resp *http.Response, op string) (Document, error) {
	decoded, err := Check(resp, op)
	if err != nil {
		return nil, err
	}
	if decoded == nil {
		return Document{}, nil
	}
	doc, ok := decoded.(Document)
	if !ok {
		return nil, fmt.Errorf("unexpected response shape while %s: want object, got %T", op, decoded)
	}
	return doc, nil
}

func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
