package ui

const (
	SkipLinkText = "Skip to main content"
	SkipLinkHref = "#main"
	HelpTextBody = "Enter the first and last name of the player for this position. Only letters and spaces are allowed."
)

// AddSkipLink inserts the skip-navigation link once.
func AddSkipLink(v *View) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.SkipLink != nil {
		return
	}
	v.SkipLink = &SkipLink{Href: SkipLinkHref, Text: SkipLinkText}
}

// ImproveFormLabels links a hidden help node to every field without one.
func ImproveFormLabels(v *View) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, f := range v.Fields {
		if f.AriaDescribedBy != "" {
			continue
		}
		helpID := f.ID + "-help"
		f.AriaDescribedBy = helpID
		v.HelpTexts = append(v.HelpTexts, HelpText{ID: helpID, Text: HelpTextBody})
	}
}
