package live

import (
	"fmt"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/protocol"
)

// replica applies ops the way the browser client does, onto a separate
// memory document.
type replica struct {
	doc     *dom.MemoryDocument
	nodes   map[uint64]dom.Node
	server  map[uint64]uint64 // replica node id -> server node id
	listens map[string]int
}

func newReplica(root uint64) *replica {
	r := &replica{
		doc:     dom.NewMemoryDocument(),
		nodes:   make(map[uint64]dom.Node),
		server:  make(map[uint64]uint64),
		listens: make(map[string]int),
	}
	r.register(root, r.doc.Root())
	return r
}

func (r *replica) register(id uint64, n dom.Node) {
	r.nodes[id] = n
	r.server[n.NodeID()] = id
}

func (r *replica) node(id uint64) dom.Node {
	n, ok := r.nodes[id]
	if !ok {
		panic(fmt.Sprintf("replica: unknown node %d", id))
	}
	return n
}

func (r *replica) apply(ops []protocol.Op) {
	for _, op := range ops {
		switch op.Kind {
		case protocol.OpCreateElement:
			r.register(op.ID, r.doc.CreateElement(op.Tag))
		case protocol.OpCreateText:
			r.register(op.ID, r.doc.CreateText(op.Value))
		case protocol.OpSetAttr:
			r.doc.SetAttribute(r.node(op.ID), op.Name, op.Value)
		case protocol.OpRemoveAttr:
			r.doc.RemoveAttribute(r.node(op.ID), op.Name)
		case protocol.OpSetText:
			r.doc.SetText(r.node(op.ID), op.Value)
		case protocol.OpListen:
			r.listens[op.Name]++
		case protocol.OpInsert:
			var ref dom.Node
			if op.Ref != 0 {
				ref = r.node(op.Ref)
			}
			r.doc.InsertBefore(r.node(op.Parent), r.node(op.ID), ref)
		case protocol.OpRemove:
			r.doc.RemoveChild(r.node(op.Parent), r.node(op.ID))
		case protocol.OpClear:
			r.doc.ClearChildren(r.node(op.Parent))
		default:
			panic(fmt.Sprintf("replica: unexpected op %v", op.Kind))
		}
	}
}

// serverID returns the server id of the replica element with the given id
// attribute.
func (r *replica) serverID(elementID string) uint64 {
	n := r.doc.GetElementByID(elementID)
	if n == nil {
		return 0
	}
	return r.server[n.NodeID()]
}
