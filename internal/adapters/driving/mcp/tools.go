package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

// defaultTextName is recorded as the file name of pasted report text.
const defaultTextName = "pasted.txt"

// ListReportsInput is the input schema for the list_reports tool.
type ListReportsInput struct{}

// ListReportsOutput is the output schema for the list_reports tool.
type ListReportsOutput struct {
	Reports []ReportItem `json:"reports"`
	Count   int          `json:"count"`
}

// ReportItem is one stored report in a listing.
type ReportItem struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	DriverName string `json:"driver_name"`
	ReportDate string `json:"report_date"`
	Policies   int    `json:"policies"`
	Claims     int    `json:"claims"`
}

// GetReportInput is the input schema for the get_report tool.
type GetReportInput struct {
	ID string `json:"id" jsonschema:"the report id"`
}

// ReportOutput carries a full report as JSON text.
type ReportOutput struct {
	ID         string `json:"id"`
	DriverName string `json:"driver_name"`
	Policies   int    `json:"policies"`
	Claims     int    `json:"claims"`
	Report     string `json:"report" jsonschema:"the report encoded as JSON"`
}

// ParseTextInput is the input schema for the parse_text tool.
type ParseTextInput struct {
	Text     string `json:"text" jsonschema:"report text; pages may be separated by form feeds"`
	FileName string `json:"file_name,omitempty" jsonschema:"name recorded on the report"`
	Save     bool   `json:"save,omitempty" jsonschema:"store the parsed report"`
}

// DiffPoliciesInput is the input schema for the diff_policies tool.
type DiffPoliciesInput struct {
	ReportA string `json:"report_a" jsonschema:"id of the first report"`
	IndexA  int    `json:"index_a" jsonschema:"zero-based policy index in the first report"`
	ReportB string `json:"report_b" jsonschema:"id of the second report"`
	IndexB  int    `json:"index_b" jsonschema:"zero-based policy index in the second report"`
}

// DiffPoliciesOutput is the output schema for the diff_policies tool.
type DiffPoliciesOutput struct {
	Entries []DiffItem `json:"entries"`
	Count   int        `json:"count"`
}

// DiffItem is one differing leaf. A and B are JSON-encoded values.
type DiffItem struct {
	Path string `json:"path"`
	A    string `json:"a"`
	B    string `json:"b"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_reports",
		Description: "List stored DASH driver reports",
	}, s.handleListReports)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_report",
		Description: "Fetch a stored DASH report by id",
	}, s.handleGetReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_text",
		Description: "Parse the text of a DASH report into structured fields",
	}, s.handleParseText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "diff_policies",
		Description: "Compare two policies from stored reports field by field",
	}, s.handleDiffPolicies)
}

func (s *Server) handleListReports(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListReportsInput,
) (*mcp.CallToolResult, ListReportsOutput, error) {
	reports, err := s.ports.Reports.List(ctx)
	if err != nil {
		return nil, ListReportsOutput{}, err
	}

	output := ListReportsOutput{
		Reports: make([]ReportItem, len(reports)),
		Count:   len(reports),
	}
	for i := range reports {
		output.Reports[i] = ReportItem{
			ID:         reports[i].ID,
			FileName:   reports[i].FileName,
			DriverName: domain.Deref(reports[i].Header.DriverName),
			ReportDate: domain.Deref(reports[i].Header.ReportDate),
			Policies:   len(reports[i].Policies),
			Claims:     len(reports[i].Claims),
		}
	}

	return nil, output, nil
}

func (s *Server) handleGetReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	if input.ID == "" {
		return nil, ReportOutput{}, fmt.Errorf("id is required: %w", domain.ErrInvalidInput)
	}
	report, err := s.ports.Reports.Get(ctx, input.ID)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	output, err := reportOutput(report)
	return nil, output, err
}

func (s *Server) handleParseText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseTextInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	name := input.FileName
	if name == "" {
		name = defaultTextName
	}
	pages := strings.Split(strings.TrimSuffix(input.Text, "\f"), "\f")

	report, err := s.ports.Reports.ParsePages(ctx, name, pages, driving.ParseOptions{Save: input.Save})
	if err != nil {
		return nil, ReportOutput{}, err
	}
	output, err := reportOutput(report)
	return nil, output, err
}

func (s *Server) handleDiffPolicies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiffPoliciesInput,
) (*mcp.CallToolResult, DiffPoliciesOutput, error) {
	entries, err := s.ports.Reports.ComparePolicies(ctx,
		driving.PolicyRef{ReportID: input.ReportA, Index: input.IndexA},
		driving.PolicyRef{ReportID: input.ReportB, Index: input.IndexB})
	if err != nil {
		return nil, DiffPoliciesOutput{}, err
	}

	output := DiffPoliciesOutput{
		Entries: make([]DiffItem, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		a, err := json.Marshal(e.A)
		if err != nil {
			return nil, DiffPoliciesOutput{}, fmt.Errorf("encoding %s: %w", e.Path, err)
		}
		b, err := json.Marshal(e.B)
		if err != nil {
			return nil, DiffPoliciesOutput{}, fmt.Errorf("encoding %s: %w", e.Path, err)
		}
		output.Entries[i] = DiffItem{Path: e.Path, A: string(a), B: string(b)}
	}

	return nil, output, nil
}

func reportOutput(report *domain.Report) (ReportOutput, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return ReportOutput{}, fmt.Errorf("encoding report: %w", err)
	}
	return ReportOutput{
		ID:         report.ID,
		DriverName: domain.Deref(report.Header.DriverName),
		Policies:   len(report.Policies),
		Claims:     len(report.Claims),
		Report:     string(data),
	}, nil
}
