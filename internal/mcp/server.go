package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/harvest-report/internal/app"
	"github.com/a3tai/harvest-report/internal/config"
	"github.com/a3tai/harvest-report/internal/descriptions"
	"github.com/a3tai/harvest-report/internal/form"
	"github.com/a3tai/harvest-report/internal/harvest"
	"github.com/a3tai/harvest-report/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	app       *app.App
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance and restores the saved draft
func NewServer(cfg *config.Config, a *app.App) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if a == nil {
		return nil, fmt.Errorf("app cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.AppName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		config:    cfg,
		app:       a,
		mcpServer: mcpServer,
	}

	a.Form().Load(context.Background())
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	formStatusTool := mcp.NewTool(
		"harvest_form_status",
		mcp.WithDescription(descriptions.GetToolDescription("harvest_form_status")),
	)
	s.mcpServer.AddTool(formStatusTool, s.handleFormStatus)

	setFieldTool := mcp.NewTool(
		"harvest_set_field",
		mcp.WithDescription(descriptions.GetToolDescription("harvest_set_field")),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Enum(string(form.FieldFullName), string(form.FieldCrop), string(form.FieldTons)),
			mcp.Description("Field to set"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("New value; an empty string clears the field"),
		),
	)
	s.mcpServer.AddTool(setFieldTool, s.handleSetField)

	generateTool := mcp.NewTool(
		"harvest_generate_report",
		mcp.WithDescription(descriptions.GetToolDescription("harvest_generate_report")),
	)
	s.mcpServer.AddTool(generateTool, s.handleGenerateReport)

	resetTool := mcp.NewTool(
		"harvest_reset_form",
		mcp.WithDescription(descriptions.GetToolDescription("harvest_reset_form")),
	)
	s.mcpServer.AddTool(resetTool, s.handleResetForm)

	lastReportTool := mcp.NewTool(
		"harvest_last_report",
		mcp.WithDescription(descriptions.GetToolDescription("harvest_last_report")),
	)
	s.mcpServer.AddTool(lastReportTool, s.handleLastReport)

	listReportsTool := mcp.NewTool(
		"harvest_list_reports",
		mcp.WithDescription(descriptions.GetToolDescription("harvest_list_reports")),
	)
	s.mcpServer.AddTool(listReportsTool, s.handleListReports)

	serverInfoTool := mcp.NewTool(
		"harvest_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("harvest_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleFormStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatFormState(s.app.Form().State())), nil
}

func (s *Server) handleSetField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	field, ok := form.ParseField(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown field %q (must be one of: full_name, crop, tons)", name)), nil
	}

	manager := s.app.Form()
	if !manager.Change(field, value) {
		return mcp.NewToolResultError(fmt.Sprintf("rejected value %q for tons: use digits with at most one comma or dot", value)), nil
	}

	text := fmt.Sprintf("Field %s updated\n", field)
	if field == form.FieldCrop && value != "" {
		if _, known := harvest.ParseCrop(value); !known {
			text += fmt.Sprintf("⚠️  %q is not one of the available crops; the report will not validate until it is changed\n", value)
		}
	}
	text += "\n" + s.formatFormState(manager.State())
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleGenerateReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.app.Generate(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: No se pudo generar el PDF: %v", err)), nil
	}
	if !out.Saved() {
		return mcp.NewToolResultText(s.formatValidationErrors(out.Validation.Errors)), nil
	}
	return mcp.NewToolResultText(s.formatOutcome(out)), nil
}

func (s *Server) handleResetForm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.app.Form().Reset(ctx)
	return mcp.NewToolResultText("Form cleared and draft deleted"), nil
}

func (s *Server) handleLastReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	last, err := s.app.LastReport(ctx)
	if errors.Is(err, app.ErrNoReport) {
		return mcp.NewToolResultText("No report has been saved yet"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.formatLastReport(last)), nil
}

func (s *Server) handleListReports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := s.app.ListReports(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.formatReportList(files)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// Helper functions for formatting responses
func (s *Server) formatFormState(st form.State) string {
	text := "Harvest form:\n"
	text += fmt.Sprintf("  full_name: %s\n", orEmpty(st.Fields.FullName))
	text += fmt.Sprintf("  crop: %s\n", orEmpty(string(st.Fields.Crop)))
	text += fmt.Sprintf("  tons: %s\n", orEmpty(st.TonsInput))
	if !st.Loaded {
		text += "\nDraft not restored yet\n"
	}
	if !st.Errors.Empty() {
		text += "\n" + s.formatValidationErrors(st.Errors)
	}
	return text
}

func (s *Server) formatValidationErrors(errs harvest.FieldErrors) string {
	text := "The form has errors:\n"
	if errs.FullName != "" {
		text += fmt.Sprintf("  ✗ full_name: %s\n", errs.FullName)
	}
	if errs.Crop != "" {
		text += fmt.Sprintf("  ✗ crop: %s\n", errs.Crop)
	}
	if errs.Tons != "" {
		text += fmt.Sprintf("  ✗ tons: %s\n", errs.Tons)
	}
	return text
}

func (s *Server) formatOutcome(out *app.Outcome) string {
	r := out.Result
	text := "PDF generado exitosamente\n\n"
	text += fmt.Sprintf("El PDF se guardó en:\n%s\n\nArchivo: %s\n", r.Location, r.FileName)
	text += fmt.Sprintf("Path: %s\n", r.FullPath)
	if r.Fallback {
		text += "\n⚠️  The configured location could not be used; the report was saved through the fallback\n"
	}
	text += fmt.Sprintf("Report ID: %s\n", out.ReportID)
	return text
}

func (s *Server) formatLastReport(last *app.LastReport) string {
	text := fmt.Sprintf("Last report: %s\n", last.Path)
	if last.Inspection == nil {
		text += fmt.Sprintf("\n⚠️  The report cannot be read: %s\n", last.ReadError)
		return text
	}
	text += fmt.Sprintf("Pages: %d\n", last.Inspection.Pages)
	text += fmt.Sprintf("Size: %d bytes\n", last.Inspection.Size)
	text += "\nContent:\n"
	text += last.Inspection.Text()
	return text
}

func (s *Server) formatReportList(files []pdf.FileInfo) string {
	if len(files) == 0 {
		return "No reports found"
	}
	text := fmt.Sprintf("Found %d report(s):\n\n", len(files))
	for _, f := range files {
		text += fmt.Sprintf("📄 %s\n", f.Name)
		text += fmt.Sprintf("   Path: %s\n", f.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", f.Size)
		text += fmt.Sprintf("   Modified: %s\n\n", f.ModifiedTime)
	}
	return text
}

func (s *Server) formatServerInfo() string {
	cfg := s.config
	text := fmt.Sprintf("Server: %s v%s\n", cfg.AppName, cfg.Version)
	text += fmt.Sprintf("Save platform: %s\n", cfg.ResolvedPlatform())
	if cfg.ResolvedPlatform() == config.PlatformFolder {
		text += fmt.Sprintf("Public folder: %s\n", orEmpty(cfg.PublicDir))
	} else {
		text += fmt.Sprintf("Reports directory: %s\n", cfg.ReportsDir())
	}
	text += fmt.Sprintf("Fallback cache: %s\n", cfg.CacheDir)
	if cfg.ShareCommand != "" {
		text += fmt.Sprintf("Share command: %s\n", cfg.ShareCommand)
	}

	text += "\n🛠️  Available Tools:\n"
	names := descriptions.GetAllToolNames()
	sort.Strings(names)
	for _, name := range names {
		text += fmt.Sprintf("  • %s\n", name)
	}

	text += "\nCrops: "
	for i, c := range harvest.Crops() {
		if i > 0 {
			text += ", "
		}
		text += string(c)
	}
	text += "\n\nFill full_name, crop and tons with harvest_set_field, then call harvest_generate_report.\n"
	return text
}

func orEmpty(v string) string {
	if v == "" {
		return "(empty)"
	}
	return v
}

// Run serves the MCP protocol over stdin and stdout until the input closes
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting harvest MCP server in stdio mode")
		log.Printf("Save platform: %s", s.config.ResolvedPlatform())
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
