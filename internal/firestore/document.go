package firestore

import "strings"

// Document is a path-addressed document as returned by the store. A document
// with a nil Fields map exists but is empty, distinct from not found, which
// surfaces as an error from the gateway.
type Document struct {
	Name       string           `json:"name"`
	Fields     map[string]Value `json:"fields,omitempty"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

// ID returns the last segment of the document path.
func (d *Document) ID() string {
	if i := strings.LastIndexByte(d.Name, '/'); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}

// Decode returns the document's fields as a flat native object.
func (d *Document) Decode() map[string]any {
	if d.Fields == nil {
		return map[string]any{}
	}
	return DecodeFields(d.Fields)
}

// Parse returns the decoded fields annotated with the document identity
// under the reserved _id and _path keys.
func (d *Document) Parse() map[string]any {
	out := d.Decode()
	out["_id"] = d.ID()
	out["_path"] = d.Name
	return out
}
