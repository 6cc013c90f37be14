package gosolve

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/njchilds90/gosolve/symbolic"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	ID     string                 `json:"id,omitempty"`
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	ID        string      `json:"id"`
	Result    interface{} `json:"result,omitempty"`
	Display   string      `json:"display,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
}

// HandleToolCall runs one tool request. Requests without an id get a fresh
// UUID so responses can always be correlated.
func (e *Evaluator) HandleToolCall(req ToolRequest) ToolResponse {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	optString := func(key, def string) (string, error) {
		if _, ok := req.Params[key]; !ok {
			return def, nil
		}
		return getString(key)
	}
	fail := func(err error) ToolResponse {
		resp := ToolResponse{ID: id, Error: err.Error()}
		var ge *Error
		if errors.As(err, &ge) {
			resp.ErrorKind = ge.Kind.String()
		}
		return resp
	}

	switch req.Tool {
	case "evaluate":
		text, err := getString("equation")
		if err != nil {
			return fail(err)
		}
		typName, err := optString("type", Linear.String())
		if err != nil {
			return fail(err)
		}
		typ, err := ParseEquationType(typName)
		if err != nil {
			return fail(err)
		}
		res, err := e.Evaluate(text, typ)
		if err != nil {
			resp := fail(err)
			resp.Display = DisplayError(err)
			return resp
		}
		return ToolResponse{ID: id, Result: res, Display: res.Display()}

	case "parse":
		text, err := getString("expression")
		if err != nil {
			return fail(err)
		}
		expr, err := symbolic.Parse(text)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			ID: id,
			Result: map[string]interface{}{
				"string": expr.String(),
				"latex":  expr.LaTeX(),
				"tree":   symbolic.Tree(expr),
			},
			Display: expr.String(),
		}

	case "degree":
		text, err := getString("expression")
		if err != nil {
			return fail(err)
		}
		variable, err := optString("variable", e.unknown)
		if err != nil {
			return fail(err)
		}
		expr, err := symbolic.Parse(text)
		if err != nil {
			return fail(err)
		}
		deg, err := symbolic.PolyDegree(symbolic.Expand(expr), variable)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			ID:      id,
			Result:  map[string]interface{}{"variable": variable, "degree": deg},
			Display: fmt.Sprintf("%d", deg),
		}

	case "tool_spec":
		return ToolResponse{ID: id, Result: json.RawMessage(ToolSpec())}
	}
	return ToolResponse{ID: id, Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("evaluate", "Solve a linear or quadratic equation given as text, e.g. \"x**2 - 4 = 0\"",
			[]string{"equation"}, map[string]string{"equation": "string", "type": "string"}),
		ts("parse", "Parse an expression and return its canonical form and tree",
			[]string{"expression"}, map[string]string{"expression": "string"}),
		ts("degree", "Polynomial degree of an expression in a variable (default x)",
			[]string{"expression"}, map[string]string{"expression": "string", "variable": "string"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}

// maxLineBytes caps a single request line.
const maxLineBytes = 1 << 20

// ServeTools reads one JSON ToolRequest per line from r and writes one JSON
// ToolResponse per line to w. It returns nil at EOF and ctx.Err() once ctx
// is cancelled. If r is an io.Closer it is closed on cancellation so a
// blocked read returns.
func (e *Evaluator) ServeTools(ctx context.Context, r io.Reader, w io.Writer) error {
	if c, ok := r.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stop()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	enc := json.NewEncoder(w)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := enc.Encode(e.serveLine(line)); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

func (e *Evaluator) serveLine(line []byte) (resp ToolResponse) {
	var req ToolRequest
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("panic in tool call", "tool", req.Tool, "panic", rec, "stack", string(debug.Stack()))
			resp = ToolResponse{ID: req.ID, Error: "internal error"}
		}
	}()
	if err := json.Unmarshal(line, &req); err != nil {
		return ToolResponse{ID: uuid.NewString(), Error: "invalid JSON: " + err.Error()}
	}
	e.logger.Debug("tool call", "id", req.ID, "tool", req.Tool)
	return e.HandleToolCall(req)
}
