package descriptions

// Tool descriptions with practical examples for the harvest form tools

const (
	// Form tools
	HarvestFormStatusDescription = `Show the current state of the harvest form.

**When to use:** Before filling the form, to see what is already there, or after a failed generation to read the field errors.

**Returns:** the full name, the selected crop, the tonnage exactly as typed, whether the saved draft has been restored, and one error message per field from the last validation.

**Examples:**
• Resume a session: "What was left in the harvest form yesterday?"
• Check errors: "Why was the report not generated?"

**Best practices:** The form is restored from the saved draft when the server starts, so a fresh session may already contain values.`

	HarvestSetFieldDescription = `Set one field of the harvest form.

**When to use:** To fill or correct the form before generating a report.

**Fields:**
• full_name: the producer's full name, more than 3 letters once trimmed
• crop: one of Soja, Maiz, Trigo, Girasol, Cebada (case is ignored)
• tons: harvested tonnes, digits with an optional comma or dot as decimal separator, greater than 0

**Examples:**
• "Set full_name to Juan Perez"
• "Set crop to maiz"
• "Set tons to 12,5"

**Common workflows:**
1. Set full_name → set crop → set tons → harvest_generate_report
2. harvest_generate_report fails validation → harvest_form_status → fix the field → generate again

**Best practices:** Setting a field clears its previous error. Tonnage text that is not a number being typed (letters, two separators) is rejected and the form keeps its previous value. Accepted changes are saved as a draft shortly after the last edit.`

	HarvestGenerateReportDescription = `Validate the form and, when valid, render and save the two-page harvest PDF.

**When to use:** Once every field is filled in.

**Returns:** either the validation errors per field (nothing is written), or where the file was saved and its name. A successful save clears the form and its draft.

**Output:** harvest_<name>_<YYYY-MM-DD_HH-MM-SS>.pdf. Page 1 carries the name and crop, page 2 the tonnage.

**Best practices:** When the configured location cannot be written the report is stored in the application cache and, if a share command is configured, handed to it. The response says which location was used.`

	HarvestResetFormDescription = `Clear every field of the harvest form and delete the saved draft.

**When to use:** To start a new report from scratch.`

	// Report tools
	HarvestLastReportDescription = `Show the most recently saved report and read its text back.

**When to use:** To confirm what was written after harvest_generate_report, or to recover the location of the last report.

**Returns:** the saved location, the page count and the text of every page. If the file was moved or deleted, the location is still shown along with the read error.`

	HarvestListReportsDescription = `List the harvest reports found in the report directories.

**When to use:** To find earlier reports.

**Returns:** every PDF in the documents report folder, the application cache and the chosen public folder, newest first, with size and modification time.`

	HarvestServerInfoDescription = `Get server information, the configured save location and the available tools.

**When to use:** At the start of a session, to learn where reports will be saved and how to fill the form.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"harvest_form_status":     HarvestFormStatusDescription,
	"harvest_set_field":       HarvestSetFieldDescription,
	"harvest_generate_report": HarvestGenerateReportDescription,
	"harvest_reset_form":      HarvestResetFormDescription,
	"harvest_last_report":     HarvestLastReportDescription,
	"harvest_list_reports":    HarvestListReportsDescription,
	"harvest_server_info":     HarvestServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
