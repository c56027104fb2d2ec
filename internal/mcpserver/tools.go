package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
)

type repairOutput struct {
	Text    string   `json:"text"`
	Report  []string `json:"report"`
	Changed bool     `json:"changed"`
}

func (s *Server) registerRepairTools() {
	s.mcp.AddTool(mcp.NewTool("repair_json",
		mcp.WithDescription("Repair JSON-like text (comments, single quotes, trailing commas, bare keys, None/True/False, NaN/Infinity) and return the valid JSON with the list of applied repair steps"),
		mcp.WithString("text", mcp.Description("The JSON-like text to repair"), mcp.Required()),
		mcp.WithBoolean("lenient", mcp.Description("Fall back to a JSON5 parse when the regular repairs fail (key order is lost)")),
		mcp.WithBoolean("pretty", mcp.Description("Re-indent the repaired JSON with two spaces")),
	), s.handleRepairJSON)
}

func (s *Server) registerTableTools() {
	s.mcp.AddTool(mcp.NewTool("json_to_csv",
		mcp.WithDescription("Repair a JSON document, infer its records, flatten nested values into columns and return delimited text"),
		mcp.WithString("text", mcp.Description("The JSON or JSON-like document"), mcp.Required()),
		mcp.WithString("format", mcp.Description("Output format: csv (default), tsv or ltsv")),
		mcp.WithString("separator", mcp.Description(`Separator joining nested keys into column names (default ".")`)),
		mcp.WithString("select", mcp.Description("Optional jq expression that picks the records before flattening, e.g. .data.items")),
		mcp.WithBoolean("lenient", mcp.Description("Fall back to a JSON5 parse when the regular repairs fail")),
	), s.handleJSONToCSV)
}

func (s *Server) registerPathTools() {
	s.mcp.AddTool(mcp.NewTool("json_paths",
		mcp.WithDescription("List every node path of a JSON document, or resolve one JSONPath such as $.users[0].name"),
		mcp.WithString("text", mcp.Description("The JSON or JSON-like document"), mcp.Required()),
		mcp.WithString("path", mcp.Description("Optional JSONPath to resolve instead of listing all paths")),
	), s.handleJSONPaths)
}

func (s *Server) repair(req mcp.CallToolRequest) (*jsontools.RepairResult, *mcp.CallToolResult) {
	text, err := req.RequireString("text")
	if err != nil {
		return nil, errorResult(err.Error())
	}

	res, err := jsontools.Repair(text, jsontools.RepairOptions{Lenient: req.GetBool("lenient", s.lenient)})
	if err != nil {
		return nil, errorResult(describeRepairError(err))
	}
	return res, nil
}

func (s *Server) handleRepairJSON(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, failure := s.repair(req)
	if failure != nil {
		return failure, nil
	}

	out := repairOutput{Text: res.Text, Report: res.Report, Changed: res.Changed()}
	if req.GetBool("pretty", false) {
		pretty, err := jsontools.Pretty(res.Value)
		if err != nil {
			return nil, err
		}
		out.Text = pretty
	}
	s.log.V(1).Info("repaired", "steps", res.Report.String())
	return jsonResult(out)
}

func (s *Server) handleJSONToCSV(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := jsontools.ParseOutputFormat(req.GetString("format", "csv"))
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if !format.IsDelimited() {
		return errorResult(fmt.Sprintf("format %s is binary; use csv, tsv or ltsv", format)), nil
	}

	res, failure := s.repair(req)
	if failure != nil {
		return failure, nil
	}

	value := res.Value
	if expr := req.GetString("select", ""); expr != "" {
		value, err = jsontools.SelectRecords(ctx, value, expr)
		if err != nil {
			return errorResult(err.Error()), nil
		}
	}

	out, err := jsontools.ToDelimitedText(value, req.GetString("separator", jsontools.DefaultSeparator), format)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(out), nil
}

func (s *Server) handleJSONPaths(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, failure := s.repair(req)
	if failure != nil {
		return failure, nil
	}

	path := req.GetString("path", "")
	if path == "" {
		return jsonResult(jsontools.Paths(res.Value))
	}

	found, err := jsontools.Lookup(res.Value, path)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	pretty, err := jsontools.Pretty(found)
	if err != nil {
		return nil, err
	}
	return textResult(pretty), nil
}

// describeRepairError renders a repair failure as "message (line L, col C)"
// when the parser located the problem.
func describeRepairError(err error) string {
	var perr *jsontools.ParseError
	if errors.As(err, &perr) {
		return "invalid JSON: " + perr.Error()
	}
	return err.Error()
}
