package printer

import (
	"encoding/json"

	"github.com/joshuapare/heapkit/arena/alloc"
)

// jsonBlock represents a block in JSON format.
type jsonBlock struct {
	Offset    int    `json:"offset"`
	Size      int    `json:"size"`
	State     string `json:"state"`
	Requested int    `json:"requested,omitempty"`
}

// jsonHeap is the top-level JSON document.
type jsonHeap struct {
	Summary  Summary     `json:"summary"`
	Blocks   []jsonBlock `json:"blocks,omitempty"`
	FreeList []jsonBlock `json:"free_list,omitempty"`
}

func toJSONBlocks(in []alloc.Block) []jsonBlock {
	if len(in) == 0 {
		return nil
	}
	out := make([]jsonBlock, len(in))
	for i, b := range in {
		state := "free"
		if b.Allocated {
			state = "allocated"
		}
		out[i] = jsonBlock{Offset: b.Offset, Size: b.Size, State: state, Requested: b.Requested}
	}
	return out
}

func (p *Printer) printJSON(s Summary, blocks, free []alloc.Block) error {
	doc := jsonHeap{Summary: s}
	if p.opts.ShowBlocks {
		doc.Blocks = toJSONBlocks(blocks)
	}
	if p.opts.ShowFreeList {
		doc.FreeList = toJSONBlocks(free)
	}

	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
