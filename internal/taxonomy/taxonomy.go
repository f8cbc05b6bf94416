// Package taxonomy manages the hierarchical diagnosis taxonomy stored in the
// search index.
package taxonomy

// Node is a single entry in the diagnosis tree. Header marks heading nodes;
// leaf content nodes carry Header=false.
type Node struct {
	Text     string  `json:"text"`
	Header   bool    `json:"header"`
	Children []*Node `json:"children"`
}
