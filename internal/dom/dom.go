// Package dom abstracts the pieces of the host document the router and
// containers touch. The core depends only on these interfaces; real
// front-ends supply adapters, tests and the terminal demo use the in-memory
// implementations below.
package dom

import (
	"fmt"
	"io"
	"sync"
)

// Document is the visible page the router renders into.
type Document interface {
	// Render replaces the page content.
	Render(html string)
	// Content returns the current page content.
	Content() string
	// Alert surfaces a blocking notification to the user.
	Alert(message string)
	// SetField sets a form field value (an empty value clears the field).
	SetField(name, value string)
	// Field returns a form field value.
	Field(name string) string
}

// Modal is the receipt-preview overlay capability. Implementations must
// tolerate container ids that are absent from the document: Width reports 0
// and the other calls are no-ops.
type Modal interface {
	Show(containerID string)
	SetContent(containerID, html string)
	Width(containerID string) int
}

// MemoryDocument is an in-memory Document for tests.
type MemoryDocument struct {
	mu      sync.Mutex
	content string
	alerts  []string
	fields  map[string]string
}

var _ Document = (*MemoryDocument)(nil)

func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{fields: make(map[string]string)}
}

func (d *MemoryDocument) Render(html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = html
}

func (d *MemoryDocument) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

func (d *MemoryDocument) Alert(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, message)
}

// Alerts returns every notification surfaced so far.
func (d *MemoryDocument) Alerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.alerts))
	copy(out, d.alerts)
	return out
}

func (d *MemoryDocument) SetField(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[name] = value
}

func (d *MemoryDocument) Field(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields[name]
}

// MemoryModal is an in-memory Modal for tests. Only ids registered with
// AddContainer exist; everything else behaves as an absent host element.
type MemoryModal struct {
	mu      sync.Mutex
	widths  map[string]int
	content map[string]string
	visible map[string]bool
}

var _ Modal = (*MemoryModal)(nil)

func NewMemoryModal() *MemoryModal {
	return &MemoryModal{
		widths:  make(map[string]int),
		content: make(map[string]string),
		visible: make(map[string]bool),
	}
}

// AddContainer registers an overlay host with the given rendered width.
func (m *MemoryModal) AddContainer(id string, width int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widths[id] = width
}

func (m *MemoryModal) Show(containerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.widths[containerID]; ok {
		m.visible[containerID] = true
	}
}

func (m *MemoryModal) SetContent(containerID, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.widths[containerID]; ok {
		m.content[containerID] = html
	}
}

func (m *MemoryModal) Width(containerID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.widths[containerID]
}

// Visible reports whether the overlay is shown.
func (m *MemoryModal) Visible(containerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible[containerID]
}

// ContentOf returns the overlay body content.
func (m *MemoryModal) ContentOf(containerID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content[containerID]
}

// WriterDocument renders pages to an io.Writer. The terminal demo uses it as
// its "screen".
type WriterDocument struct {
	mu      sync.Mutex
	w       io.Writer
	content string
	fields  map[string]string
}

var _ Document = (*WriterDocument)(nil)

func NewWriterDocument(w io.Writer) *WriterDocument {
	return &WriterDocument{w: w, fields: make(map[string]string)}
}

func (d *WriterDocument) Render(html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = html
	fmt.Fprintln(d.w, html)
}

func (d *WriterDocument) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

func (d *WriterDocument) Alert(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "[!] %s\n", message)
}

func (d *WriterDocument) SetField(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[name] = value
}

func (d *WriterDocument) Field(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields[name]
}
