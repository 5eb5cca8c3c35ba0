// Package sharelink encodes deal inputs into a compact URL-fragment token
// so an analysis can be shared as a link. Only inputs travel in the token;
// the receiver recomputes all metrics. Unknown fields in older or newer
// tokens are ignored and missing fields fall back to engine defaults, so
// tokens stay forward- and backward-compatible.
package sharelink

import (
	"encoding/base64"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
)

// Version identifies the current token schema.
const Version = 1

type envelope struct {
	Version int                 `json:"v"`
	Inputs  analyzer.DealInputs `json:"inputs"`
}

// Encode serializes inputs into a URL-safe token.
func Encode(inputs analyzer.DealInputs) (string, error) {
	payload, err := json.Marshal(envelope{Version: Version, Inputs: inputs})
	if err != nil {
		return "", fmt.Errorf("encode share link: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode parses a token back into deal inputs. Tokens from any schema
// version decode on a best-effort basis; fields the current schema does not
// know are dropped and absent fields stay zero for the engine to default.
func Decode(token string) (analyzer.DealInputs, error) {
	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Older encoders used padded standard base64.
		payload, err = base64.StdEncoding.DecodeString(token)
		if err != nil {
			return analyzer.DealInputs{}, fmt.Errorf("decode share link: %w", err)
		}
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return analyzer.DealInputs{}, fmt.Errorf("decode share link: %w", err)
	}
	return env.Inputs, nil
}
