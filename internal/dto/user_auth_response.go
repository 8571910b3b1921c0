// File: internal/dto/user_auth_response.go
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// UserAuthResponse 登入成功後的存取令牌回應
//
// The zero value is ready to use. A UserAuthResponse is plain data: it is not
// safe for concurrent writes, but concurrent reads are fine once it is built.
//
// swagger:model dto.UserAuthResponse
type UserAuthResponse struct {
	// AccessToken is an opaque bearer credential.
	AccessToken string
	// TokenType is the scheme the token is presented with, usually "Bearer".
	TokenType string
}

// userAuthResponseFields is the wire mapping, in output order.
var userAuthResponseFields = []struct {
	key   string
	field func(*UserAuthResponse) *string
}{
	{key: "access_token", field: func(p *UserAuthResponse) *string { return &p.AccessToken }},
	{key: "token_type", field: func(p *UserAuthResponse) *string { return &p.TokenType }},
}

var jsonNull = []byte("null")

var errNullDocument = errors.New("document is null, want object")

// NewUserAuthResponse builds a payload from its two fields.
func NewUserAuthResponse(accessToken, tokenType string) UserAuthResponse {
	return UserAuthResponse{AccessToken: accessToken, TokenType: tokenType}
}

// MarshalJSON always writes both keys. Unset fields are written as "".
func (p UserAuthResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range userAuthResponseFields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(*f.field(&p))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads access_token and token_type from a JSON object.
// Unknown keys are ignored. An absent key and an explicit null both leave the
// field untouched. On error p is not modified.
func (p *UserAuthResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DeserializationError{Err: err}
	}

	decoded := *p
	for _, f := range userAuthResponseFields {
		v, ok := raw[f.key]
		if !ok || bytes.Equal(v, jsonNull) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return &DeserializationError{Field: f.key, Err: err}
		}
		*f.field(&decoded) = s
	}
	*p = decoded
	return nil
}

// ParseUserAuthResponse decodes a fresh payload. Every failure, including
// syntactically invalid JSON, is reported as *DeserializationError.
func ParseUserAuthResponse(data []byte) (UserAuthResponse, error) {
	// UnmarshalJSON treats a bare null as a no-op; a whole document of null is not a payload.
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return UserAuthResponse{}, &DeserializationError{Err: errNullDocument}
	}
	var p UserAuthResponse
	if err := p.UnmarshalJSON(data); err != nil {
		return UserAuthResponse{}, err
	}
	return p, nil
}

// DeserializationError reports a payload that could not be decoded.
// Field is the offending wire key, or empty when the whole document is bad.
type DeserializationError struct {
	Field string
	Err   error
}

func (e *DeserializationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("deserialize user auth response: %v", e.Err)
	}
	return fmt.Sprintf("deserialize user auth response: field %q: %v", e.Field, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
