package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/gallery-tui/internal/format/table"
	"github.com/atomicstack/gallery-tui/internal/gallery"
	uistate "github.com/atomicstack/gallery-tui/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	emptyCatalogText = "No images yet"
	emptyResultsText = "No results found"
	loadingText      = "Loading images…"
	loadFailedText   = "Could not load images"
	headerSeparator  = " · "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	top := m.topLines()
	bottom := m.bottomLines()
	rows := m.gridRows()
	visible := m.visibleRowsFor(len(top), len(bottom))
	m.viewport.Clamp(len(rows), visible)
	start, end := m.viewport.Window(len(rows), visible)

	lines := make([]styledLine, 0, len(top)+len(bottom)+end-start)
	lines = append(lines, top...)
	lines = append(lines, rows[start:end]...)
	lines = append(lines, bottom...)
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) topLines() []styledLine {
	lines := make([]styledLine, 0, 3)
	mode := "browse"
	if _, searching := m.session.Active().(uistate.Searching); searching {
		mode = "search"
	}
	lines = append(lines, styledLine{text: m.title + headerSeparator + mode, style: styles.Header})
	queryLine := m.query.View() + "  " + styles.Footer.Render("limit "+strconv.Itoa(m.limit))
	lines = append(lines, styledLine{text: queryLine, raw: true})
	if status, ok := m.statusLine(); ok {
		lines = append(lines, status)
	}
	return lines
}

func (m *Model) statusLine() (styledLine, bool) {
	if sr, searching := m.session.Active().(uistate.Searching); searching {
		text := sr.StatusLine()
		if sr.Status == uistate.SearchPending {
			return styledLine{text: m.spinner.View() + " " + text, raw: true}, true
		}
		return styledLine{text: text, style: styles.Status}, true
	}
	if m.catalog.Loading() {
		return styledLine{text: m.spinner.View() + " " + loadingText, raw: true}, true
	}
	return styledLine{}, false
}

// activeItems projects whichever list is on screen. Browse mode yields the
// current page only; search results are shown in full.
func (m *Model) activeItems() (items []gallery.Displayable, offset int) {
	if sr, searching := m.session.Active().(uistate.Searching); searching {
		return gallery.FromResults(sr.Results), 0
	}
	all := m.catalog.Images()
	start, _ := m.pager.Bounds(len(all))
	return gallery.FromImages(uistate.PageOf(m.pager, all)), start
}

func (m *Model) gridRows() []styledLine {
	items, offset := m.activeItems()
	if len(items) == 0 {
		if empty, ok := m.emptyState(); ok {
			return []styledLine{empty}
		}
		return nil
	}
	cells := make([][]string, len(items))
	indexWidth := 0
	for i, item := range items {
		cells[i] = []string{strconv.Itoa(offset+i+1) + ".", item.Label, item.URI}
		if w := len(cells[i][0]); w > indexWidth {
			indexWidth = w
		}
	}
	formatted := table.Format(cells, []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft})
	rows := make([]styledLine, len(formatted))
	for i, text := range formatted {
		rows[i] = styledLine{
			text:          "  " + text,
			style:         styles.Item,
			prefixStyle:   styles.ItemIndex,
			highlightFrom: indexWidth + 2,
		}
	}
	return rows
}

func (m *Model) emptyState() (styledLine, bool) {
	if sr, searching := m.session.Active().(uistate.Searching); searching {
		if sr.Status == uistate.SearchPending {
			return styledLine{}, false
		}
		return styledLine{text: emptyResultsText, style: styles.Info}, true
	}
	if !m.catalog.Loaded() {
		if m.catalog.LastError() != nil && !m.catalog.Loading() {
			return styledLine{text: loadFailedText, style: styles.Error}, true
		}
		return styledLine{}, false
	}
	return styledLine{text: emptyCatalogText, style: styles.Info}, true
}

func (m *Model) bottomLines() []styledLine {
	lines := make([]styledLine, 0, 6)
	if _, browsing := m.session.Active().(uistate.Browsing); browsing {
		total := m.catalog.Len()
		if total > 0 {
			start, end := m.pager.Bounds(total)
			lines = append(lines, styledLine{text: showingText(start, end, total), style: styles.Footer})
		}
		if m.pager.TotalPages(total) > 1 {
			lines = append(lines, styledLine{text: pageStrip(m.pager, total), style: styles.Pager})
		}
	}
	if m.upload.InFlight() {
		lines = append(lines, styledLine{text: m.spinner.View() + " " + uploadStatusLine(m.upload.Names, m.upload.Bytes), raw: true})
	}
	if m.focus == focusUpload {
		lines = append(lines, styledLine{text: m.uploadInput.View(), raw: true})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter || m.showHelp {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.help.View(m.keys), raw: true})
	}
	return lines
}

func showingText(start, end, total int) string {
	return fmt.Sprintf("Showing %d–%d of %d images", start+1, end, total)
}

func pageStrip(p uistate.Pager, total int) string {
	markers := p.Markers(total)
	parts := make([]string, 0, len(markers)+2)
	parts = append(parts, "‹")
	for _, mk := range markers {
		switch {
		case mk.Ellipsis:
			parts = append(parts, "…")
		case mk.Current:
			parts = append(parts, "["+strconv.Itoa(mk.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(mk.Page))
		}
	}
	parts = append(parts, "›")
	return strings.Join(parts, " ")
}

func (m *Model) visibleRows() int {
	return m.visibleRowsFor(len(m.topLines()), len(m.bottomLines()))
}

func (m *Model) visibleRowsFor(top, bottom int) int {
	if m.height <= 0 {
		return -1
	}
	remain := m.height - top - bottom
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
