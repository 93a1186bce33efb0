package vyosmodels

import (
	"encoding/json"
	"errors"
)

// Endpoint selects the router API endpoint a request is posted to.
type Endpoint string

const (
	EndpointShow      Endpoint = "/show"
	EndpointConfigure Endpoint = "/configure"
)

// Layout identifies the column layout of a "show dhcp server ..." table.
type Layout string

const (
	LayoutLeases        Layout = "leases"
	LayoutStaticMapping Layout = "static-mapping"
)

type OpKind string

const (
	OpShow   OpKind = "show"
	OpSet    OpKind = "set"
	OpDelete OpKind = "delete"
)

// ConfigOperation is a single operation against the router configuration tree.
type ConfigOperation struct {
	Op   OpKind   `json:"op"`
	Path []string `json:"path"`
}

// ConfigBatch is applied by the router as one request.
type ConfigBatch []ConfigOperation

// LeaseRecord is a dynamic lease or a static mapping normalized to one shape.
type LeaseRecord struct {
	IPAddress  string `json:"ipAddress"`
	MACAddress string `json:"macAddress"`
	Hostname   string `json:"hostname"`
	Pool       string `json:"pool"`
	Subnet     string `json:"subnet,omitempty"`
	ExpiryTime string `json:"expiryTime"`
}

// Response is the body returned by the router API. Transport failures are
// reported through the same shape with Success=false.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Kind    ErrorKind       `json:"-"`
}

// Err returns nil for successful responses and an *Error otherwise. A
// failure without a Kind was decoded from the router itself and is reported
// as KindRouterRejected.
func (r Response) Err() error {
	if r.Success {
		return nil
	}
	kind := r.Kind
	if kind == "" {
		kind = KindRouterRejected
	}
	msg := r.Error
	if msg == "" {
		msg = "request failed"
	}
	return &Error{Kind: kind, Message: msg}
}

// DataString decodes Data as a JSON string. ok is false when Data is absent or not a string.
func (r Response) DataString() (string, bool) {
	if len(r.Data) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(r.Data, &s); err != nil {
		return "", false
	}
	return s, true
}

type ErrorKind string

const (
	KindConfigurationMissing ErrorKind = "ConfigurationMissing"
	KindTransportFailure     ErrorKind = "TransportFailure"
	KindRouterRejected       ErrorKind = "RouterRejected"
	KindFormatError          ErrorKind = "FormatError"
	KindValidationError      ErrorKind = "ValidationError"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf returns the ErrorKind carried by err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
