package printer

import "github.com/joshuapare/heapkit/arena/alloc"

func (p *Printer) printText(s Summary, blocks, free []alloc.Block) error {
	pr := p.p
	w := p.w

	pr.Fprintf(w, "Heap: %d bytes (%d pages)\n", s.Boundary, s.Pages)
	pr.Fprintf(w, "Blocks: %d (%d allocated, %d free)\n", s.Blocks, s.AllocatedCount, s.FreeCount)
	pr.Fprintf(w, "Allocated: %d bytes (requested %d)\n", s.AllocatedBytes, s.RequestedBytes)
	pr.Fprintf(w, "Free: %d bytes, largest %d, fragmentation %.1f%%\n",
		s.FreeBytes, s.LargestFree, s.Fragmentation*100)
	pr.Fprintf(w, "Free list head: 0x%X, cursor: 0x%X\n", s.Head, s.Cursor)

	if p.opts.ShowBlocks {
		pr.Fprintf(w, "\n%-10s %10s  %-9s %10s\n", "OFFSET", "SIZE", "STATE", "REQUESTED")
		for _, b := range blocks {
			state := "free"
			if b.Allocated {
				state = "allocated"
			}
			pr.Fprintf(w, "0x%08X %10d  %-9s %10d\n", b.Offset, b.Size, state, b.Requested)
		}
	}

	if p.opts.ShowFreeList {
		pr.Fprintf(w, "\nFree list (%d):\n", len(free))
		for _, b := range free {
			marker := ""
			if b.Offset == s.Cursor {
				marker = "  <- cursor"
			}
			pr.Fprintf(w, "  0x%08X %10d%s\n", b.Offset, b.Size, marker)
		}
	}
	return nil
}
