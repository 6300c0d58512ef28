package pdf

// FileInfo describes a saved report
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Inspection is what can be read back from a rendered report
type Inspection struct {
	Pages     int      `json:"pages"`
	Size      int64    `json:"size"`
	PageTexts []string `json:"page_texts"`
}

// Text joins the page texts with a page separator
func (i *Inspection) Text() string {
	return joinPages(i.PageTexts)
}
