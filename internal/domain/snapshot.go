package domain

import "encoding/json"

// snapshotNode is the persisted wire shape of a node. ParentID is a
// pointer because the root is stored with an explicit null parent.
type snapshotNode struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
	Order    int     `json:"order"`
}

// EncodeSnapshot serializes a node collection to its JSON array form.
func EncodeSnapshot(nodes []Node) ([]byte, error) {
	records := make([]snapshotNode, 0, len(nodes))
	for _, n := range nodes {
		rec := snapshotNode{
			ID:      n.ID,
			Content: n.Content,
			Order:   n.Order,
		}
		if !n.IsRoot() {
			parent := n.ParentID
			rec.ParentID = &parent
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

// DecodeSnapshot parses a JSON array of node records. Records with an
// empty ID are skipped rather than failing the whole snapshot.
func DecodeSnapshot(data []byte) ([]Node, error) {
	var records []snapshotNode
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		n := Node{
			ID:      rec.ID,
			Content: rec.Content,
			Order:   rec.Order,
		}
		if rec.ParentID != nil {
			n.ParentID = *rec.ParentID
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
