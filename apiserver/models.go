// Package apiserver implements a small HTTP+websocket service that
// evaluates a single binary operation over a cfloat of chosen shape
// and policy and streams the decoded operands and the result to any
// subscribed websocket client.
package apiserver

// EvaluateRequest is the body of POST /api/v1/evaluate: a single
// binary operation over two decimal operands, evaluated at the given
// cfloat shape and policy.
type EvaluateRequest struct {
	Policy string  `json:"policy"` // ieee, standard, extended, saturating
	NBits  int     `json:"nbits"`
	ES     int     `json:"es"`
	Op     string  `json:"op"` // add or mul
	A      float64 `json:"a"`
	B      float64 `json:"b"`
}

// EvaluateResponse carries the decoded operands, the result, and its
// bit pattern — the same fields Session.describe renders for the TUI,
// shaped for JSON instead of a text block.
type EvaluateResponse struct {
	A      OperandView `json:"a"`
	B      OperandView `json:"b"`
	Result OperandView `json:"result"`
}

// OperandView is the wire shape of one cfloat value: its decimal
// projection, raw bit pattern, and discriminant predicates.
type OperandView struct {
	Decimal       string `json:"decimal"`
	Binary        string `json:"binary"`
	Raw           uint64 `json:"raw"`
	IsZero        bool   `json:"isZero"`
	IsInf         bool   `json:"isInf"`
	IsNaN         bool   `json:"isNan"`
	IsNormal      bool   `json:"isNormal"`
	IsSubnormal   bool   `json:"isSubnormal"`
	IsSupernormal bool   `json:"isSupernormal"`
}

// ErrorResponse is the JSON body returned for any 4xx/5xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Subscriptions int    `json:"subscriptions"`
}
