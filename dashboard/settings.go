package dashboard

import (
	"fmt"
	"io"
)

const ExportContentType = "application/json"

func (d *Dashboard) ToggleTheme() Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	if d.theme == ThemeDark {
		d.theme = ThemeLight
	} else {
		d.theme = ThemeDark
	}
	res.notify("Theme toggled")
	res.Data = d.theme
	d.refresh(res, PageSettings)
	return d.finish("toggle_theme", res)
}

// ExportFilename is the attachment name of Export.
func (d *Dashboard) ExportFilename() string { return d.opts.ExportFilename }

// Export writes the whole store as indented JSON.
func (d *Dashboard) Export(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.opts.Store.WriteJSON(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	d.opts.Logger.Debug("Store exported")
	return nil
}
