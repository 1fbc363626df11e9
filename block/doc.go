// Package block measures elapsed time and throughput of nested code regions.
//
// A [Session] keeps a fixed-capacity table of [Block] entries indexed by a
// small caller-assigned [ID], and a stack of the blocks that are currently
// open. Opening a nested block pauses the exclusive time of its parent, so
// every block accumulates both exclusive time (its own code only) and
// inclusive time (its code plus everything nested inside it).
//
// IDs are assigned once per call site, typically with [NextID] in a
// package-level variable:
//
//	var (
//		idLoad  = block.NextID()
//		idParse = block.NextID()
//	)
//
//	func load(s *block.Session, path string) error {
//		defer s.Scope(idLoad, "load").End()
//
//		data, err := os.ReadFile(path)
//		if err != nil {
//			return err
//		}
//
//		s.AddBytes(uint64(len(data)))
//
//		s.Time(idParse, "parse", func() { parse(data) })
//
//		return nil
//	}
//
// The session is owned by the caller and reports once when closed:
//
//	s := block.New("import")
//	defer s.Close()
//
// A nil *Session is a disabled profiler; every method is a no-op.
//
// Capacity overflows, unknown IDs and unbalanced End calls are logged as
// warnings and otherwise ignored, so misplaced instrumentation never crashes
// or corrupts the accounting of other blocks.
//
// A Session is not safe for concurrent use. Drive it from one goroutine or
// synchronize externally.
package block
